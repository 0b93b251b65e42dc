package service

import (
	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/internal/session"
)

// Router decides which surfaces a message belongs to. Public messages go to
// both rooms unconditionally; a sender's chat side never filters delivery.
// Private messages land in the open private thread or nowhere.
type Router struct {
	store *session.Store
}

func NewRouter(store *session.Store) *Router {
	return &Router{store: store}
}

// Route returns the surfaces m should render into. An empty result means the
// message was received but has no open surface; it is not queued for later.
func (r *Router) Route(m domain.Message) []Surface {
	if m.Public {
		return []Surface{{Kind: SurfaceRoomA}, {Kind: SurfaceRoomB}}
	}

	peer, open := r.store.ActivePrivatePeer()
	if !open {
		return nil
	}
	if m.Sender.ID == peer.ID || (m.Recipient != nil && m.Recipient.ID == peer.ID) {
		return []Surface{{Kind: SurfacePrivate, Peer: peer}}
	}
	return nil
}

// IsOwn classifies m as sent by the current user, for rendering.
func (r *Router) IsOwn(m domain.Message) bool {
	current, ok := r.store.CurrentUser()
	return ok && m.Sender.ID == current.ID
}
