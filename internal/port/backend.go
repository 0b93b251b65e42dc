package port

import (
	"context"

	"github.com/vende6/ChatWithMe/internal/domain"
)

// Backend is the one-shot request surface of the chat server as the client
// core consumes it. internal/api implements it over HTTP; tests substitute
// fakes.
type Backend interface {
	CreateUser(ctx context.Context, username, avatarURL string) (domain.User, error)
	User(ctx context.Context, id string) (domain.User, error)
	Contacts(ctx context.Context, userID string) ([]domain.Contact, error)
	PublicHistory(ctx context.Context, limit int) ([]domain.Message, error)
	SendMessage(ctx context.Context, senderID, content, recipientID string, public bool) error
	ProposeInvitation(ctx context.Context, fromID, toID, activity, message string) (string, error)
	RespondInvitation(ctx context.Context, invitationID, responderID string, accept bool) error
	Activities(ctx context.Context) ([]string, error)
}
