package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vende6/ChatWithMe/internal/domain"
)

// Client talks the one-shot request surface of the chat server. Every user
// initiated write goes through here; pushes arrive separately over the
// persistent channel.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the server base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateUser registers a username and returns the user the server assigned,
// chat side included.
func (c *Client) CreateUser(ctx context.Context, username, avatarURL string) (domain.User, error) {
	form := url.Values{}
	form.Set("username", username)
	if avatarURL != "" {
		form.Set("avatar_url", avatarURL)
	}
	var out struct {
		User domain.User `json:"user"`
	}
	if err := c.postForm(ctx, "/users/create", form, &out); err != nil {
		return domain.User{}, err
	}
	return out.User, nil
}

// User re-fetches one user, used to refresh username/avatar.
func (c *Client) User(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Contacts fetches the ordered contact list with chat summaries.
func (c *Client) Contacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	var contacts []domain.Contact
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/contacts", &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// PublicHistory fetches recent public messages, oldest first.
func (c *Client) PublicHistory(ctx context.Context, limit int) ([]domain.Message, error) {
	path := "/messages/public"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var msgs []domain.Message
	if err := c.get(ctx, path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage posts a message. recipientID is empty for public messages.
func (c *Client) SendMessage(ctx context.Context, senderID, content, recipientID string, public bool) error {
	form := url.Values{}
	form.Set("sender_id", senderID)
	form.Set("content", content)
	form.Set("is_public", strconv.FormatBool(public))
	if recipientID != "" {
		form.Set("recipient_id", recipientID)
	}
	return c.postForm(ctx, "/messages/send", form, nil)
}

// ProposeInvitation sends an activity invitation. The message field is always
// present, even when empty.
func (c *Client) ProposeInvitation(ctx context.Context, fromID, toID, activity, message string) (string, error) {
	form := url.Values{}
	form.Set("from_user_id", fromID)
	form.Set("to_user_id", toID)
	form.Set("activity_name", activity)
	form.Set("message", message)
	var out struct {
		InvitationID string `json:"invitation_id"`
	}
	if err := c.postForm(ctx, "/activities/invite", form, &out); err != nil {
		return "", err
	}
	return out.InvitationID, nil
}

// RespondInvitation accepts or declines the invitation with the given id.
func (c *Client) RespondInvitation(ctx context.Context, invitationID, responderID string, accept bool) error {
	form := url.Values{}
	form.Set("user_id", responderID)
	form.Set("accept", strconv.FormatBool(accept))
	path := "/activities/invitations/" + url.PathEscape(invitationID) + "/respond"
	return c.postForm(ctx, path, form, nil)
}

// Activities fetches the fixed activity catalog.
func (c *Client) Activities(ctx context.Context) ([]string, error) {
	var out struct {
		Activities []string `json:"activities"`
	}
	if err := c.get(ctx, "/activities", &out); err != nil {
		return nil, err
	}
	return out.Activities, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", req.URL.Path, err)
	}
	return nil
}
