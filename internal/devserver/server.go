package devserver

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/pkg/logger"
)

// Server is an in-memory chat server implementing the request surface and
// push channel the client core consumes. It exists for integration tests and
// local development; nothing is persisted.
type Server struct {
	mu          sync.Mutex
	users       map[string]domain.User
	userOrder   []string
	messages    []domain.Message
	invitations map[string]*domain.Invitation
	summaries   map[string]chatSummary
	conns       map[string]*websocket.Conn
	log         logger.Logger
}

type chatSummary struct {
	Summary     string
	LastUpdated time.Time
}

var summaryPhrases = []string{
	"You seem to be getting along well",
	"You had a friendly conversation",
	"You discussed shared interests",
	"You argued about something",
	"You made plans together",
	"You shared personal stories",
	"You helped each other out",
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Local development server; no origin policy.
	},
}

func New(log logger.Logger) *Server {
	return &Server{
		users:       make(map[string]domain.User),
		invitations: make(map[string]*domain.Invitation),
		summaries:   make(map[string]chatSummary),
		conns:       make(map[string]*websocket.Conn),
		log:         log,
	}
}

// Handler returns the HTTP handler covering every endpoint plus the push
// channel upgrade.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/create", s.handleCreateUser)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("GET /users/{id}/contacts", s.handleContacts)
	mux.HandleFunc("GET /messages/public", s.handlePublicMessages)
	mux.HandleFunc("POST /messages/send", s.handleSendMessage)
	mux.HandleFunc("POST /activities/invite", s.handleInvite)
	mux.HandleFunc("POST /activities/invitations/{id}/respond", s.handleRespond)
	mux.HandleFunc("GET /activities", s.handleActivities)
	mux.HandleFunc("GET /ws/{id}", s.handleWS)
	return mux
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	avatarURL := r.FormValue("avatar_url")
	if avatarURL == "" {
		avatarURL = "https://ui-avatars.com/api/?name=" + url.QueryEscape(username) + "&background=random"
	}

	s.mu.Lock()
	// Users alternate between the two chat sides.
	side := domain.SideChatWithMe
	if len(s.userOrder)%2 == 1 {
		side = domain.SideToWhomILoveTheMost
	}
	user := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		AvatarURL: avatarURL,
		ChatSide:  side,
		Active:    true,
	}
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"message": fmt.Sprintf("User created and assigned to %s", side),
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user, ok := s.users[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	others := lo.Filter(s.userOrder, func(uid string, _ int) bool { return uid != id })
	contacts := lo.Map(others, func(uid string, _ int) domain.Contact {
		contact := domain.Contact{User: s.users[uid], Summary: "No conversation yet"}
		if sum, ok := s.summaries[summaryKey(id, uid)]; ok {
			contact.Summary = sum.Summary
			contact.LastInteraction = sum.LastUpdated.Format(time.RFC3339)
		}
		return contact
	})
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handlePublicMessages(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	s.mu.Lock()
	public := lo.Filter(s.messages, func(m domain.Message, _ int) bool { return m.Public })
	if len(public) > limit {
		public = public[len(public)-limit:]
	}
	out := make([]domain.Message, len(public))
	copy(out, public)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	senderID := r.FormValue("sender_id")
	content := r.FormValue("content")
	recipientID := r.FormValue("recipient_id")
	public := r.FormValue("is_public") != "false"

	s.mu.Lock()
	sender, ok := s.users[senderID]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Sender not found")
		return
	}
	var recipient *domain.User
	if recipientID != "" {
		rec, ok := s.users[recipientID]
		if !ok {
			s.mu.Unlock()
			writeError(w, http.StatusNotFound, "Recipient not found")
			return
		}
		recipient = &rec
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339),
		Public:    public,
	}
	s.messages = append(s.messages, msg)

	if !public && recipient != nil {
		s.summaries[summaryKey(senderID, recipientID)] = chatSummary{
			Summary:     summaryPhrases[rand.Intn(len(summaryPhrases))],
			LastUpdated: time.Now(),
		}
	}
	s.mu.Unlock()

	frame, err := domain.EncodeEnvelope(domain.EventNewMessage, msg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode message")
		return
	}
	if public {
		s.broadcast(frame)
	} else {
		s.push(senderID, frame)
		if recipient != nil {
			s.push(recipient.ID, frame)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Message sent successfully",
		"message_id": msg.ID,
	})
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	fromID := r.FormValue("from_user_id")
	toID := r.FormValue("to_user_id")
	activity := r.FormValue("activity_name")
	message := r.FormValue("message")

	s.mu.Lock()
	from, ok := s.users[fromID]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Sender not found")
		return
	}
	to, ok := s.users[toID]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Recipient not found")
		return
	}
	if !domain.ValidActivity(activity) {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "Invalid activity")
		return
	}
	// Invitations only cross the room boundary.
	if from.ChatSide == to.ChatSide {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "Can only invite users from the opposite chat")
		return
	}

	inv := &domain.Invitation{
		ID:        uuid.NewString(),
		FromUser:  from,
		ToUserID:  toID,
		Activity:  activity,
		Message:   message,
		Status:    domain.InvitationPending,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	s.invitations[inv.ID] = inv
	s.mu.Unlock()

	frame, err := domain.EncodeEnvelope(domain.EventActivityInvitation, inv)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode invitation")
		return
	}
	s.push(toID, frame)

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Activity invitation sent",
		"invitation_id": inv.ID,
	})
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("id")
	userID := r.FormValue("user_id")
	accept := r.FormValue("accept") == "true"

	s.mu.Lock()
	inv, ok := s.invitations[invitationID]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Invitation not found")
		return
	}
	if inv.ToUserID != userID {
		s.mu.Unlock()
		writeError(w, http.StatusForbidden, "Not authorized to respond to this invitation")
		return
	}
	if accept {
		inv.Status = domain.InvitationAccepted
	} else {
		inv.Status = domain.InvitationDeclined
	}
	responder := s.users[userID]
	fromID := inv.FromUser.ID
	resp := domain.InvitationResponse{
		InvitationID: invitationID,
		Activity:     inv.Activity,
		Accepted:     accept,
		Responder:    responder,
	}
	s.mu.Unlock()

	frame, err := domain.EncodeEnvelope(domain.EventInvitationResponse, resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	s.push(fromID, frame)

	writeJSON(w, http.StatusOK, map[string]any{"message": "Invitation " + inv.Status})
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"activities": domain.Activities})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	s.mu.Lock()
	_, known := s.users[userID]
	s.mu.Unlock()
	if !known {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("[DEVSERVER] upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	if old, ok := s.conns[userID]; ok {
		old.Close()
	}
	s.conns[userID] = conn
	s.mu.Unlock()
	s.log.Infof("[DEVSERVER] push channel open for %s", userID)

	// Reads only keep the connection alive; the protocol is push-only.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		s.mu.Lock()
		if s.conns[userID] == conn {
			delete(s.conns, userID)
			if u, ok := s.users[userID]; ok {
				u.Active = false
				s.users[userID] = u
			}
		}
		s.mu.Unlock()
		conn.Close()
	}()
}

func (s *Server) broadcast(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := lo.Keys(s.conns)
	sort.Strings(ids)
	for _, id := range ids {
		if err := s.conns[id].WriteMessage(websocket.TextMessage, frame); err != nil {
			s.log.Errorf("[DEVSERVER] push to %s failed: %v", id, err)
			s.conns[id].Close()
			delete(s.conns, id)
		}
	}
}

func (s *Server) push(userID string, frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn, ok := s.conns[userID]
	if !ok {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		s.log.Errorf("[DEVSERVER] push to %s failed: %v", userID, err)
		conn.Close()
		delete(s.conns, userID)
	}
}

func summaryKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}
