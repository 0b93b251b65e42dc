package service_test

import (
	"context"
	"sync"

	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/internal/session"
	"github.com/vende6/ChatWithMe/pkg/logger"
	"github.com/vende6/ChatWithMe/service"
)

var (
	alice = domain.User{ID: "u-alice", Username: "alice", ChatSide: domain.SideChatWithMe}
	bob   = domain.User{ID: "u-bob", Username: "bob", ChatSide: domain.SideToWhomILoveTheMost}
	carol = domain.User{ID: "u-carol", Username: "carol", ChatSide: domain.SideChatWithMe}
)

// fakeBackend records calls and answers with configurable results.
type fakeBackend struct {
	sendErr    error
	proposeErr error
	respondErr error

	sentMessages []sentMessage
	proposals    []proposal
	responses    []response
	contacts     []domain.Contact
	contactsErr  error
}

type sentMessage struct {
	SenderID    string
	Content     string
	RecipientID string
	Public      bool
}

type proposal struct {
	FromID, ToID, Activity, Message string
}

type response struct {
	InvitationID, ResponderID string
	Accept                    bool
}

func (f *fakeBackend) CreateUser(ctx context.Context, username, avatarURL string) (domain.User, error) {
	return domain.User{ID: "u-" + username, Username: username}, nil
}

func (f *fakeBackend) User(ctx context.Context, id string) (domain.User, error) {
	return domain.User{ID: id}, nil
}

func (f *fakeBackend) Contacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	return f.contacts, f.contactsErr
}

func (f *fakeBackend) PublicHistory(ctx context.Context, limit int) ([]domain.Message, error) {
	return nil, nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, senderID, content, recipientID string, public bool) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentMessages = append(f.sentMessages, sentMessage{senderID, content, recipientID, public})
	return nil
}

func (f *fakeBackend) ProposeInvitation(ctx context.Context, fromID, toID, activity, message string) (string, error) {
	if f.proposeErr != nil {
		return "", f.proposeErr
	}
	f.proposals = append(f.proposals, proposal{fromID, toID, activity, message})
	return "i-new", nil
}

func (f *fakeBackend) RespondInvitation(ctx context.Context, invitationID, responderID string, accept bool) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, response{invitationID, responderID, accept})
	return nil
}

func (f *fakeBackend) Activities(ctx context.Context) ([]string, error) {
	return domain.Activities, nil
}

// fakePresenter records everything the core asks it to draw.
type fakePresenter struct {
	mu          sync.Mutex
	messages    []shownMessage
	invitations []domain.Invitation
	notices     []string
	contactSets [][]domain.Contact
	inputClears int
}

type shownMessage struct {
	Message  domain.Message
	Own      bool
	Surfaces []service.Surface
}

func (p *fakePresenter) ShowMessage(m domain.Message, own bool, surfaces []service.Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, shownMessage{m, own, surfaces})
}

func (p *fakePresenter) ShowInvitation(inv domain.Invitation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invitations = append(p.invitations, inv)
}

func (p *fakePresenter) ShowNotice(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, text)
}

func (p *fakePresenter) ContactsUpdated(contacts []domain.Contact) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contactSets = append(p.contactSets, contacts)
}

func (p *fakePresenter) ClearInput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputClears++
}

func newTestDispatcher(current domain.User) (*service.Dispatcher, *session.Store, *fakeBackend, *fakePresenter) {
	store := session.NewStore()
	store.SetCurrentUser(current)
	backend := &fakeBackend{}
	presenter := &fakePresenter{}
	d := service.NewDispatcher(store, backend, presenter, logger.NewLogger("error"))
	return d, store, backend, presenter
}

func publicMessage(id string, sender domain.User, content string) domain.Message {
	return domain.Message{ID: id, Sender: sender, Content: content, Public: true}
}

func privateMessage(id string, sender, recipient domain.User, content string) domain.Message {
	return domain.Message{ID: id, Sender: sender, Recipient: &recipient, Content: content, Public: false}
}
