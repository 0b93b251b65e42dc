package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vende6/ChatWithMe/internal/api"
	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/internal/port"
	"github.com/vende6/ChatWithMe/internal/session"
	"github.com/vende6/ChatWithMe/pkg/logger"
)

// Invitations drives the activity invitation lifecycle on both sides: the
// proposing flow (draft → one-shot request, fire and forget) and the
// receiving flow (offered → resolved). At most one offer is pending at a
// time; a newer one displaces the older.
type Invitations struct {
	store     *session.Store
	backend   port.Backend
	presenter Presenter
	log       logger.Logger
}

func NewInvitations(store *session.Store, backend port.Backend, presenter Presenter, log logger.Logger) *Invitations {
	return &Invitations{store: store, backend: backend, presenter: presenter, log: log}
}

// Propose sends the drafted invitation with the given accompanying text. A
// missing draft or unselected activity is a silent no-op. On success the
// draft is cleared; on failure it stays so the user can retry, and the
// server's explanation is surfaced.
func (i *Invitations) Propose(ctx context.Context, message string) {
	draft, ok := i.store.Draft()
	if !ok || draft.Activity == "" {
		return
	}
	current, ok := i.store.CurrentUser()
	if !ok {
		return
	}

	_, err := i.backend.ProposeInvitation(ctx, current.ID, draft.Target.ID, draft.Activity, message)
	if err != nil {
		i.log.Errorf("[INVITE] propose failed: %v", err)
		i.presenter.ShowNotice(failureNotice(err, "Could not send invitation"))
		return
	}

	i.store.ClearDraft()
	i.presenter.ShowNotice(fmt.Sprintf("%s invitation sent to %s", draft.Activity, draft.Target.Username))
}

// OfferReceived handles an inbound activity_invitation push. Last write
// wins: a second offer replaces the first without waiting for a decision.
func (i *Invitations) OfferReceived(inv domain.Invitation) {
	displaced := i.store.SetPendingInvitation(inv)
	if displaced != nil {
		i.log.Infof("[INVITE] offer %s displaced by %s", displaced.ID, inv.ID)
		i.presenter.ShowNotice(fmt.Sprintf("%s's %s invitation was replaced by a newer one",
			displaced.FromUser.Username, displaced.Activity))
	}
	i.presenter.ShowInvitation(inv)
}

// Respond accepts or declines the pending invitation. Without a pending
// offer it is a silent no-op. On transport failure the offer stays pending
// so the decision can be retried.
func (i *Invitations) Respond(ctx context.Context, accept bool) {
	pending, ok := i.store.PendingInvitation()
	if !ok {
		return
	}
	current, ok := i.store.CurrentUser()
	if !ok {
		return
	}

	if err := i.backend.RespondInvitation(ctx, pending.ID, current.ID, accept); err != nil {
		i.log.Errorf("[INVITE] respond failed: %v", err)
		i.presenter.ShowNotice(failureNotice(err, "Could not send your response"))
		return
	}

	i.store.ClearPendingInvitation()
	verb := "declined"
	if accept {
		verb = "accepted"
	}
	i.presenter.ShowNotice(fmt.Sprintf("You %s %s's %s invitation",
		verb, pending.FromUser.Username, pending.Activity))
}

// ResponseReceived handles the notification that the other party decided.
// Purely informational; the pending offer, if any, belongs to a different
// invitation flow and is left alone.
func (i *Invitations) ResponseReceived(resp domain.InvitationResponse) {
	verb := "declined"
	if resp.Accepted {
		verb = "accepted"
	}
	i.presenter.ShowNotice(fmt.Sprintf("%s %s your %s invitation",
		resp.Responder.Username, verb, resp.Activity))
}

// failureNotice prefers the server-provided detail over the generic text.
func failureNotice(err error, generic string) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		return reqErr.Detail
	}
	return generic
}
