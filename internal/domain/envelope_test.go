package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vende6/ChatWithMe/internal/domain"
)

func TestDecodeEnvelopeNewMessage(t *testing.T) {
	frame := []byte(`{
		"type": "new_message",
		"message": {
			"id": "m1",
			"sender": {"id": "u1", "username": "alice", "chat_side": "chatwithme"},
			"content": "hello",
			"timestamp": "2025-01-01T10:00:00Z",
			"is_public": true
		}
	}`)

	env, err := domain.DecodeEnvelope(frame)
	require.NoError(t, err)
	assert.Equal(t, domain.EventNewMessage, env.Type)

	var msg domain.Message
	require.NoError(t, json.Unmarshal(env.Payload, &msg))
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "alice", msg.Sender.Username)
	assert.True(t, msg.Public)
	assert.Nil(t, msg.Recipient)
}

func TestDecodeEnvelopePayloadKeyPerType(t *testing.T) {
	inv := []byte(`{"type":"activity_invitation","invitation":{"id":"i1","activity":"Chess"}}`)
	env, err := domain.DecodeEnvelope(inv)
	require.NoError(t, err)
	assert.Equal(t, domain.EventActivityInvitation, env.Type)
	assert.JSONEq(t, `{"id":"i1","activity":"Chess"}`, string(env.Payload))

	resp := []byte(`{"type":"invitation_response","response":{"invitation_id":"i1","accepted":true}}`)
	env, err = domain.DecodeEnvelope(resp)
	require.NoError(t, err)
	assert.Equal(t, domain.EventInvitationResponse, env.Type)
	assert.JSONEq(t, `{"invitation_id":"i1","accepted":true}`, string(env.Payload))
}

func TestDecodeEnvelopeUnknownTypeIsNotAnError(t *testing.T) {
	env, err := domain.DecodeEnvelope([]byte(`{"type":"typing_indicator","payload":{"user":"bob"}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.EventType("typing_indicator"), env.Type)
	assert.Empty(t, env.Payload)
}

func TestDecodeEnvelopeMalformed(t *testing.T) {
	_, err := domain.DecodeEnvelope([]byte(`{"type": "new_message", "message": `))
	assert.Error(t, err)
}

func TestEncodeEnvelopeRoundTrip(t *testing.T) {
	original := domain.Invitation{ID: "i9", Activity: "Math", Message: "join me"}
	frame, err := domain.EncodeEnvelope(domain.EventActivityInvitation, original)
	require.NoError(t, err)

	env, err := domain.DecodeEnvelope(frame)
	require.NoError(t, err)
	require.Equal(t, domain.EventActivityInvitation, env.Type)

	var decoded domain.Invitation
	require.NoError(t, json.Unmarshal(env.Payload, &decoded))
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Activity, decoded.Activity)
	assert.Equal(t, original.Message, decoded.Message)
}

func TestValidActivity(t *testing.T) {
	assert.True(t, domain.ValidActivity("Chess"))
	assert.False(t, domain.ValidActivity("Knitting"))
}

func TestOppositeSide(t *testing.T) {
	assert.Equal(t, domain.SideToWhomILoveTheMost, domain.OppositeSide(domain.SideChatWithMe))
	assert.Equal(t, domain.SideChatWithMe, domain.OppositeSide(domain.SideToWhomILoveTheMost))
}
