package domain

// Invitation status values. Terminal states are final; a declined or accepted
// invitation id is never re-proposed.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

// Activities is the fixed catalog users can invite each other to.
var Activities = []string{"Chess", "Math", "Science", "Programming", "Skills"}

// ValidActivity reports whether name is part of the catalog.
func ValidActivity(name string) bool {
	for _, a := range Activities {
		if a == name {
			return true
		}
	}
	return false
}

// Invitation as delivered to the invited user over the push channel. ToUserID
// and Status are only populated server side; a pushed invitation is implicitly
// addressed to the receiving connection and pending.
type Invitation struct {
	ID        string `json:"id"`
	FromUser  User   `json:"from_user"`
	ToUserID  string `json:"to_user_id,omitempty"`
	Activity  string `json:"activity"`
	Message   string `json:"message"`
	Status    string `json:"status,omitempty"`
	Timestamp string `json:"timestamp"`
}

// InvitationResponse notifies the original proposer of the decision. It is
// informational only and mutates no client state.
type InvitationResponse struct {
	InvitationID string `json:"invitation_id"`
	Activity     string `json:"activity"`
	Accepted     bool   `json:"accepted"`
	Responder    User   `json:"responder"`
}

// InvitationDraft holds the in-progress proposal: who to invite and which
// activity is selected. It is cleared when the proposal succeeds or the user
// abandons it.
type InvitationDraft struct {
	Target   User
	Activity string
}
