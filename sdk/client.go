// Package sdk is a Go client for the blackjack environment server.
package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// ObservationSize is the length of an observation vector
const ObservationSize = 4

// Observation is [true count, fraction of shoe remaining, dealer upcard, 0]
type Observation [ObservationSize]float64

// StepResult is the server's reply to a bet
type StepResult struct {
	Observation Observation    `json:"observation"`
	Reward      float64        `json:"reward"`
	Done        bool           `json:"done"`
	Info        map[string]any `json:"info"`
}

// Spec describes the session's environment
type Spec struct {
	SessionID       string `json:"sessionId"`
	BetLevels       int    `json:"betLevels"`
	Decks           int    `json:"decks"`
	ObservationSize int    `json:"observationSize"`
}

// Error is an error reply from the server
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type message struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

const defaultTimeout = 10 * time.Second

// Client drives one server session. Requests are serialized; each waits
// for the reply carrying its request id.
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger

	mu     sync.Mutex
	nextID int
}

// Dial connects to the server. http(s) URLs are mapped to ws(s) and an
// empty path becomes /ws.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	logger.Info("Connecting to server", "url", u.String())
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &Client{conn: conn, logger: logger}, nil
}

// Close sends a close frame and closes the connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

// Reset deals a new round and returns the observation to bet on
func (c *Client) Reset(ctx context.Context) (Observation, error) {
	var reply struct {
		Observation Observation `json:"observation"`
	}
	err := c.request(ctx, "reset", nil, "observation", &reply)
	return reply.Observation, err
}

// Step bets action+1 units on the dealt round and plays it out
func (c *Client) Step(ctx context.Context, action int) (StepResult, error) {
	var result StepResult
	err := c.request(ctx, "step", map[string]int{"action": action}, "step_result", &result)
	return result, err
}

// Render returns the server's text dump of the current hands
func (c *Client) Render(ctx context.Context) (string, error) {
	var reply struct {
		Text string `json:"text"`
	}
	err := c.request(ctx, "render", nil, "render", &reply)
	return reply.Text, err
}

// Spec returns the session's environment description
func (c *Client) Spec(ctx context.Context) (Spec, error) {
	var spec Spec
	err := c.request(ctx, "spec", nil, "spec", &spec)
	return spec, err
}

func (c *Client) request(ctx context.Context, typ string, data any, want string, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := strconv.Itoa(c.nextID)

	msg := message{Type: typ, RequestID: id}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = raw
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}
	_ = c.conn.SetWriteDeadline(deadline)
	_ = c.conn.SetReadDeadline(deadline)

	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", typ, err)
	}

	for {
		var reply message
		if err := c.conn.ReadJSON(&reply); err != nil {
			return fmt.Errorf("failed to read %s reply: %w", typ, err)
		}
		if reply.RequestID != id {
			c.logger.Debug("Skipping stale reply", "type", reply.Type, "requestId", reply.RequestID)
			continue
		}
		switch reply.Type {
		case "error":
			var e Error
			if err := json.Unmarshal(reply.Data, &e); err != nil {
				return fmt.Errorf("failed to decode error reply: %w", err)
			}
			return &e
		case want:
			return json.Unmarshal(reply.Data, out)
		default:
			return fmt.Errorf("unexpected reply type %q to %s", reply.Type, typ)
		}
	}
}
