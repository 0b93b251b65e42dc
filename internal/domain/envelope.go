package domain

import "encoding/json"

// Push event types. Anything else on the wire is ignored so newer servers can
// add event kinds without breaking older clients.
type EventType string

const (
	EventNewMessage         EventType = "new_message"
	EventActivityInvitation EventType = "activity_invitation"
	EventInvitationResponse EventType = "invitation_response"
)

// Envelope is the tagged wrapper around every push frame. The payload key on
// the wire varies with the type ("message", "invitation", "response"); the
// decoder folds them into one raw payload so consumers only switch on Type.
type Envelope struct {
	Type    EventType
	Payload json.RawMessage
}

type wireEnvelope struct {
	Type       EventType       `json:"type"`
	Message    json.RawMessage `json:"message"`
	Invitation json.RawMessage `json:"invitation"`
	Response   json.RawMessage `json:"response"`
}

// DecodeEnvelope parses one inbound frame. An unknown type is not an error:
// the envelope comes back with an empty payload and the dispatcher drops it.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(data, &w); err != nil {
		return Envelope{}, err
	}
	env := Envelope{Type: w.Type}
	switch w.Type {
	case EventNewMessage:
		env.Payload = w.Message
	case EventActivityInvitation:
		env.Payload = w.Invitation
	case EventInvitationResponse:
		env.Payload = w.Response
	}
	return env, nil
}

// EncodeEnvelope builds the wire form for a payload, using the payload key
// matching the event type.
func EncodeEnvelope(t EventType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	w := wireEnvelope{Type: t}
	switch t {
	case EventNewMessage:
		w.Message = raw
	case EventActivityInvitation:
		w.Invitation = raw
	case EventInvitationResponse:
		w.Response = raw
	}
	return json.Marshal(struct {
		Type       EventType       `json:"type"`
		Message    json.RawMessage `json:"message,omitempty"`
		Invitation json.RawMessage `json:"invitation,omitempty"`
		Response   json.RawMessage `json:"response,omitempty"`
	}{w.Type, w.Message, w.Invitation, w.Response})
}
