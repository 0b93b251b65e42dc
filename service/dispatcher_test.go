package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vende6/ChatWithMe/internal/api"
	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/service"
)

func inboundMessage(t *testing.T, m domain.Message) domain.Envelope {
	t.Helper()
	frame, err := domain.EncodeEnvelope(domain.EventNewMessage, m)
	require.NoError(t, err)
	env, err := domain.DecodeEnvelope(frame)
	require.NoError(t, err)
	return env
}

func TestInboundPublicMessageShownOnBothRooms(t *testing.T) {
	d, _, _, presenter := newTestDispatcher(alice)

	d.OnInboundEvent(inboundMessage(t, publicMessage("m1", bob, "hello world")))

	require.Len(t, presenter.messages, 1)
	shown := presenter.messages[0]
	assert.Equal(t, "m1", shown.Message.ID)
	assert.False(t, shown.Own)
	require.Len(t, shown.Surfaces, 2)
	assert.Equal(t, service.SurfaceRoomA, shown.Surfaces[0].Kind)
	assert.Equal(t, service.SurfaceRoomB, shown.Surfaces[1].Kind)
}

func TestInboundOwnMessageMarkedOwn(t *testing.T) {
	d, _, _, presenter := newTestDispatcher(alice)

	d.OnInboundEvent(inboundMessage(t, publicMessage("m1", alice, "echo of my send")))

	require.Len(t, presenter.messages, 1)
	assert.True(t, presenter.messages[0].Own)
}

func TestInboundUnrelatedPrivateMessageDropped(t *testing.T) {
	d, store, _, presenter := newTestDispatcher(alice)
	store.OpenPrivateChat(bob)

	d.OnInboundEvent(inboundMessage(t, privateMessage("m1", carol, alice, "psst")))

	assert.Empty(t, presenter.messages, "message for a closed thread is received but not rendered")
}

func TestUnknownEventTypeIsNoOp(t *testing.T) {
	d, _, _, presenter := newTestDispatcher(alice)

	env, err := domain.DecodeEnvelope([]byte(`{"type":"presence_update","payload":{}}`))
	require.NoError(t, err)
	d.OnInboundEvent(env)

	assert.Empty(t, presenter.messages)
	assert.Empty(t, presenter.notices)
	assert.Empty(t, presenter.invitations)
}

func TestMalformedPayloadDropped(t *testing.T) {
	d, _, _, presenter := newTestDispatcher(alice)

	d.OnInboundEvent(domain.Envelope{Type: domain.EventNewMessage, Payload: []byte(`"not an object"`)})

	assert.Empty(t, presenter.messages)
}

func TestSendMessageEmptyContentIsNoOp(t *testing.T) {
	d, _, backend, _ := newTestDispatcher(alice)

	d.SendMessage(context.Background(), "")

	assert.Empty(t, backend.sentMessages)
}

func TestSendMessagePublicByDefault(t *testing.T) {
	d, _, backend, presenter := newTestDispatcher(alice)

	d.SendMessage(context.Background(), "hi everyone")

	require.Len(t, backend.sentMessages, 1)
	sent := backend.sentMessages[0]
	assert.Equal(t, alice.ID, sent.SenderID)
	assert.True(t, sent.Public)
	assert.Empty(t, sent.RecipientID)
	assert.Equal(t, 1, presenter.inputClears, "success clears the compose box, nothing else")
	assert.Empty(t, presenter.messages, "no message entry is fabricated locally")
}

func TestSendMessageGoesPrivateWhenThreadOpen(t *testing.T) {
	d, _, backend, _ := newTestDispatcher(alice)
	d.OpenPrivateChat(bob)

	d.SendMessage(context.Background(), "just for you")

	require.Len(t, backend.sentMessages, 1)
	sent := backend.sentMessages[0]
	assert.False(t, sent.Public)
	assert.Equal(t, bob.ID, sent.RecipientID)
}

func TestSendMessageFailureSurfacesNoticeWithoutRollback(t *testing.T) {
	d, _, backend, presenter := newTestDispatcher(alice)
	backend.sendErr = &api.RequestError{Status: 404, Detail: "Recipient not found"}

	d.SendMessage(context.Background(), "hi")

	require.Len(t, presenter.notices, 1)
	assert.Equal(t, "Recipient not found", presenter.notices[0])
	assert.Zero(t, presenter.inputClears)
}

func TestSelectActivityRejectsUnknown(t *testing.T) {
	d, store, _, _ := newTestDispatcher(alice)

	d.BeginInvitation(bob)
	d.SelectActivity("Knitting")

	draft, ok := store.Draft()
	require.True(t, ok)
	assert.Empty(t, draft.Activity)

	d.SelectActivity("Programming")
	draft, _ = store.Draft()
	assert.Equal(t, "Programming", draft.Activity)
}

func TestCancelInvitationClearsDraft(t *testing.T) {
	d, store, _, _ := newTestDispatcher(alice)

	d.BeginInvitation(bob)
	d.SelectActivity("Chess")
	d.CancelInvitation()

	_, ok := store.Draft()
	assert.False(t, ok)
}

func TestRefreshContactsReplacesSnapshot(t *testing.T) {
	d, store, backend, presenter := newTestDispatcher(alice)
	backend.contacts = []domain.Contact{
		{User: bob, Summary: "No conversation yet"},
		{User: carol, Summary: "You made plans together"},
	}

	require.NoError(t, d.RefreshContacts(context.Background()))

	assert.Len(t, store.Contacts(), 2)
	require.Len(t, presenter.contactSets, 1)
	assert.Equal(t, bob.ID, presenter.contactSets[0][0].User.ID)
}

func TestShowHistoryRoutesLikeLiveMessages(t *testing.T) {
	d, _, _, presenter := newTestDispatcher(alice)

	d.ShowHistory([]domain.Message{
		publicMessage("m1", alice, "first"),
		publicMessage("m2", bob, "second"),
	})

	require.Len(t, presenter.messages, 2)
	assert.Equal(t, "m1", presenter.messages[0].Message.ID)
	assert.Equal(t, "m2", presenter.messages[1].Message.ID)
	assert.True(t, presenter.messages[0].Own)
	assert.False(t, presenter.messages[1].Own)
}
