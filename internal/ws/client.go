package ws

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/pkg/logger"
)

// DefaultReconnectDelay is the fixed wait between connection attempts. There
// is no backoff growth, no jitter and no retry cap: the client redials every
// 3 seconds until the server answers.
const DefaultReconnectDelay = 3000 * time.Millisecond

// Handler receives every valid inbound envelope, in transport order. Frames
// are not deduplicated across reconnects; handlers must tolerate replays.
type Handler func(env domain.Envelope)

// Client owns the single persistent push channel for one user. It is the
// only component allowed to touch the websocket.
type Client struct {
	endpoint string
	delay    time.Duration
	handler  Handler
	log      logger.Logger
	done     chan struct{}
}

type Config struct {
	// ServerURL is the HTTP base URL; the push endpoint is derived from it
	// by scheme swap (http→ws, https→wss) plus /ws/{userID}.
	ServerURL      string
	UserID         string
	ReconnectDelay time.Duration // zero means DefaultReconnectDelay
}

// Dial prepares a client. No connection is opened until Run.
func Dial(cfg Config, handler Handler, log logger.Logger) (*Client, error) {
	endpoint, err := pushEndpoint(cfg.ServerURL, cfg.UserID)
	if err != nil {
		return nil, err
	}
	delay := cfg.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	return &Client{
		endpoint: endpoint,
		delay:    delay,
		handler:  handler,
		log:      log,
		done:     make(chan struct{}),
	}, nil
}

// Run connects and reads frames until ctx ends or Close is called. Any
// failure, connecting or mid-read, schedules the next attempt after the
// fixed delay. Connection loss is never surfaced as a terminal error.
func (c *Client) Run(ctx context.Context) {
	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.endpoint, nil)
		if err != nil {
			c.log.Errorf("[WS] connect to %s failed: %v", c.endpoint, err)
			if !c.wait(ctx) {
				return
			}
			continue
		}

		c.log.Infof("[WS] connected to %s", c.endpoint)
		c.readLoop(ctx, conn)
		conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		c.log.Infof("[WS] connection lost, retrying in %s", c.delay)
		if !c.wait(ctx) {
			return
		}
	}
}

// Close stops the run loop and any scheduled reconnect.
func (c *Client) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		// Unblock ReadMessage when the session ends.
		select {
		case <-ctx.Done():
		case <-c.done:
		case <-stopped:
		}
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		env, err := domain.DecodeEnvelope(data)
		if err != nil {
			// Malformed frames are dropped, never fatal.
			c.log.Errorf("[WS] dropping malformed frame: %v", err)
			continue
		}
		c.handler(env)
	}
}

// wait sleeps the reconnect delay; false means the client is shutting down.
func (c *Client) wait(ctx context.Context) bool {
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	case <-c.done:
		return false
	}
}

func pushEndpoint(serverURL, userID string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/" + url.PathEscape(userID)
	return u.String(), nil
}
