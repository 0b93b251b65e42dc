package session

import (
	"sync"

	"github.com/samber/lo"

	"github.com/vende6/ChatWithMe/internal/domain"
)

// Store is the single source of truth for what this client is doing right
// now: who is logged in, the contact snapshot, which private thread is open
// and which invitation is awaiting a decision. All components read and
// mutate session state through it; nothing else holds session state.
type Store struct {
	mu       sync.RWMutex
	current  domain.User
	hasUser  bool
	contacts []domain.Contact
	peer     *domain.User
	pending  *domain.Invitation
	draft    *domain.InvitationDraft
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetCurrentUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = u
	s.hasUser = true
}

func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasUser
}

// ReplaceContacts swaps the whole contact snapshot. Contacts are never merged
// incrementally; each fetch replaces the previous list.
func (s *Store) ReplaceContacts(contacts []domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = contacts
}

func (s *Store) Contacts() []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// ContactByID finds a contact's user by id.
func (s *Store) ContactByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := lo.Find(s.contacts, func(c domain.Contact) bool { return c.User.ID == id })
	return c.User, ok
}

// OpenPrivateChat sets the active private peer. Opening a chat while another
// is open replaces it; there is never more than one private thread open.
func (s *Store) OpenPrivateChat(peer domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peer = &peer
}

func (s *Store) ClosePrivateChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peer = nil
}

func (s *Store) ActivePrivatePeer() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.peer == nil {
		return domain.User{}, false
	}
	return *s.peer, true
}

// SetPendingInvitation records an inbound offer. A second offer while one is
// pending overwrites it (last write wins, no queue); the displaced offer is
// returned so callers can tell the user it was superseded.
func (s *Store) SetPendingInvitation(inv domain.Invitation) (displaced *domain.Invitation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	displaced = s.pending
	s.pending = &inv
	return displaced
}

func (s *Store) PendingInvitation() (domain.Invitation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pending == nil {
		return domain.Invitation{}, false
	}
	return *s.pending, true
}

func (s *Store) ClearPendingInvitation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// BeginDraft starts an invitation draft aimed at target, replacing any
// previous draft.
func (s *Store) BeginDraft(target domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &domain.InvitationDraft{Target: target}
}

// SelectActivity records the chosen activity on the current draft. Without a
// draft there is nothing to select on.
func (s *Store) SelectActivity(activity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return false
	}
	s.draft.Activity = activity
	return true
}

func (s *Store) Draft() (domain.InvitationDraft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return domain.InvitationDraft{}, false
	}
	return *s.draft, true
}

// ClearDraft drops the draft, both when a proposal succeeds and when the
// user abandons it.
func (s *Store) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}
