package service

import (
	"context"
	"encoding/json"

	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/internal/port"
	"github.com/vende6/ChatWithMe/internal/session"
	"github.com/vende6/ChatWithMe/pkg/logger"
)

// Dispatcher is the single entry point for everything that happens in a
// session: inbound push events on one side, user actions on the other. It
// validates preconditions, mutates the session store, talks to the backend
// and tells the presenter what to draw. User actions with unmet
// preconditions are silent no-ops.
type Dispatcher struct {
	store       *session.Store
	backend     port.Backend
	router      *Router
	invitations *Invitations
	presenter   Presenter
	log         logger.Logger
	activities  []string
}

func NewDispatcher(store *session.Store, backend port.Backend, presenter Presenter, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		store:       store,
		backend:     backend,
		router:      NewRouter(store),
		invitations: NewInvitations(store, backend, presenter, log),
		presenter:   presenter,
		log:         log,
		activities:  domain.Activities,
	}
}

// SetActivities replaces the activity catalog, normally with the one fetched
// from the server at session start.
func (d *Dispatcher) SetActivities(activities []string) {
	if len(activities) > 0 {
		d.activities = activities
	}
}

// Activities returns the catalog the dispatcher validates selections against.
func (d *Dispatcher) Activities() []string {
	return d.activities
}

// Router exposes the conversation router, mainly for history replay.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// OnInboundEvent consumes one push envelope. Unrecognized kinds are no-ops;
// malformed payloads are logged and dropped, never fatal.
func (d *Dispatcher) OnInboundEvent(env domain.Envelope) {
	switch env.Type {
	case domain.EventNewMessage:
		var m domain.Message
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			d.log.Errorf("[DISPATCH] bad new_message payload: %v", err)
			return
		}
		d.deliver(m)

	case domain.EventActivityInvitation:
		var inv domain.Invitation
		if err := json.Unmarshal(env.Payload, &inv); err != nil {
			d.log.Errorf("[DISPATCH] bad activity_invitation payload: %v", err)
			return
		}
		d.invitations.OfferReceived(inv)

	case domain.EventInvitationResponse:
		var resp domain.InvitationResponse
		if err := json.Unmarshal(env.Payload, &resp); err != nil {
			d.log.Errorf("[DISPATCH] bad invitation_response payload: %v", err)
			return
		}
		d.invitations.ResponseReceived(resp)

	default:
		d.log.Debugf("[DISPATCH] ignoring event type %q", env.Type)
	}
}

func (d *Dispatcher) deliver(m domain.Message) {
	surfaces := d.router.Route(m)
	if len(surfaces) == 0 {
		// Private message for a thread that is not open. Not queued.
		d.log.Debugf("[DISPATCH] message %s has no open surface, dropped", m.ID)
		return
	}
	d.presenter.ShowMessage(m, d.router.IsOwn(m), surfaces)
}

// ShowHistory replays fetched history through the same routing as live
// messages.
func (d *Dispatcher) ShowHistory(msgs []domain.Message) {
	for _, m := range msgs {
		d.deliver(m)
	}
}

// SendMessage posts content to the open private thread, or publicly when no
// private chat is open. Empty content is a silent no-op. The session state is
// never advanced speculatively; the only optimistic effect is clearing the
// compose box.
func (d *Dispatcher) SendMessage(ctx context.Context, content string) {
	if content == "" {
		return
	}
	current, ok := d.store.CurrentUser()
	if !ok {
		return
	}

	recipientID := ""
	public := true
	if peer, open := d.store.ActivePrivatePeer(); open {
		recipientID = peer.ID
		public = false
	}

	if err := d.backend.SendMessage(ctx, current.ID, content, recipientID, public); err != nil {
		d.log.Errorf("[DISPATCH] send failed: %v", err)
		d.presenter.ShowNotice(failureNotice(err, "Message could not be sent"))
		return
	}
	d.presenter.ClearInput()
}

// OpenPrivateChat makes user the active private peer, replacing any
// previously open thread.
func (d *Dispatcher) OpenPrivateChat(user domain.User) {
	d.store.OpenPrivateChat(user)
}

// ClosePrivateChat closes the active private thread, if any.
func (d *Dispatcher) ClosePrivateChat() {
	d.store.ClosePrivateChat()
}

// BeginInvitation starts an invitation draft aimed at target.
func (d *Dispatcher) BeginInvitation(target domain.User) {
	d.store.BeginDraft(target)
}

// SelectActivity records the activity choice on the draft. Unknown
// activities and a missing draft are silent no-ops.
func (d *Dispatcher) SelectActivity(name string) {
	known := false
	for _, a := range d.activities {
		if a == name {
			known = true
			break
		}
	}
	if !known {
		return
	}
	d.store.SelectActivity(name)
}

// CancelInvitation abandons the draft, clearing the selected activity.
func (d *Dispatcher) CancelInvitation() {
	d.store.ClearDraft()
}

// ProposeInvitation sends the drafted invitation. See Invitations.Propose.
func (d *Dispatcher) ProposeInvitation(ctx context.Context, message string) {
	d.invitations.Propose(ctx, message)
}

// RespondToInvitation resolves the pending offer. See Invitations.Respond.
func (d *Dispatcher) RespondToInvitation(ctx context.Context, accept bool) {
	d.invitations.Respond(ctx, accept)
}

// RefreshContacts re-fetches the contact list and replaces the snapshot.
func (d *Dispatcher) RefreshContacts(ctx context.Context) error {
	current, ok := d.store.CurrentUser()
	if !ok {
		return nil
	}
	contacts, err := d.backend.Contacts(ctx, current.ID)
	if err != nil {
		return err
	}
	d.store.ReplaceContacts(contacts)
	d.presenter.ContactsUpdated(contacts)
	return nil
}
