package domain

// ChatSide names one of the two fixed public rooms. Every user is assigned a
// side at creation; the side only decides which room their UI treats as
// active, it never filters message delivery.
type ChatSide string

const (
	SideChatWithMe         ChatSide = "chatwithme"
	SideToWhomILoveTheMost ChatSide = "towhomilovethemost"
)

// OppositeSide returns the other public room.
func OppositeSide(s ChatSide) ChatSide {
	if s == SideChatWithMe {
		return SideToWhomILoveTheMost
	}
	return SideChatWithMe
}

type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	AvatarURL string   `json:"avatar_url"`
	ChatSide  ChatSide `json:"chat_side"`
	Active    bool     `json:"is_active"`
}

// Contact is a read-only snapshot from the contact list endpoint. The list is
// replaced wholesale on every fetch, never merged.
type Contact struct {
	User            User   `json:"user"`
	Summary         string `json:"summary"`
	LastInteraction string `json:"last_interaction,omitempty"`
}

// Message is a chat message as delivered by history and push. Public messages
// carry no recipient and belong to both public rooms at once. Timestamps stay
// in their wire form (ISO-8601 strings).
type Message struct {
	ID        string `json:"id"`
	Sender    User   `json:"sender"`
	Recipient *User  `json:"recipient,omitempty"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Public    bool   `json:"is_public"`
}
