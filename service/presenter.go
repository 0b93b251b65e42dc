package service

import "github.com/vende6/ChatWithMe/internal/domain"

// SurfaceKind identifies a rendering surface. Both public rooms receive the
// same public stream; the split exists only so the presentation layer can
// draw two windows.
type SurfaceKind int

const (
	SurfaceRoomA SurfaceKind = iota
	SurfaceRoomB
	SurfacePrivate
)

// Surface is one routing target for a message. Peer is set for private
// threads only.
type Surface struct {
	Kind SurfaceKind
	Peer domain.User
}

// Presenter is the render callback surface. The core decides what happened
// and where it belongs; the presenter decides how to draw it. Implementations
// must not call back into the dispatcher from these methods.
type Presenter interface {
	// ShowMessage renders m into every listed surface. own marks messages
	// sent by the current user.
	ShowMessage(m domain.Message, own bool, surfaces []Surface)
	// ShowInvitation presents an inbound offer with its decision affordance.
	ShowInvitation(inv domain.Invitation)
	// ShowNotice displays a transient informational line.
	ShowNotice(text string)
	// ContactsUpdated replaces the rendered contact list.
	ContactsUpdated(contacts []domain.Contact)
	// ClearInput empties the compose box after a successful send. This is
	// the only optimistic effect a send has; no message entry is fabricated.
	ClearInput()
}
