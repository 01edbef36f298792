package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjackforbots/internal/blackjack"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ErrConnectionClosed is returned when sending on a closed session
var ErrConnectionClosed = websocket.ErrCloseSent

// Session is one client connection and the engine it drives. Messages
// are handled one at a time on the read goroutine, so the engine is never
// touched concurrently.
type Session struct {
	id     string
	conn   *websocket.Conn
	engine *blackjack.Engine
	send   chan *Message
	logger *log.Logger
	clock  quartz.Clock

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu         sync.Mutex
	lastActive time.Time
}

func newSession(id string, conn *websocket.Conn, engine *blackjack.Engine, clock quartz.Clock, logger *log.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:         id,
		conn:       conn,
		engine:     engine,
		send:       make(chan *Message, 64),
		logger:     logger.With("session", id),
		clock:      clock,
		ctx:        ctx,
		cancel:     cancel,
		lastActive: clock.Now(),
	}
}

// ID returns the session's uuid
func (s *Session) ID() string { return s.id }

// Done is closed once the session has shut down
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// IdleFor returns how long ago the session last received a message
func (s *Session) IdleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Since(s.lastActive)
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = s.clock.Now()
	s.mu.Unlock()
}

// Start begins handling the connection
func (s *Session) Start() {
	go s.writePump()
	go s.readPump()
}

// Close closes the connection, sending a close frame with reason first
func (s *Session) Close(code int, reason string) error {
	var err error
	s.closeOnce.Do(func() {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, reason),
			time.Now().Add(writeWait))
		s.cancel()
		err = s.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (s *Session) SendMessage(msg *Message) error {
	select {
	case s.send <- msg:
		return nil
	case <-s.ctx.Done():
		return ErrConnectionClosed
	default:
		s.logger.Warn("Session send buffer full, closing connection")
		_ = s.Close(websocket.CloseTryAgainLater, "send buffer full")
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (s *Session) readPump() {
	defer func() { _ = s.Close(websocket.CloseNormalClosure, "") }()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		s.touch()

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("", ErrCodeBadRequest, "Failed to parse message: "+err.Error())
			continue
		}
		s.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Error("Failed to write message", "error", err)
				_ = s.Close(websocket.CloseInternalServerErr, "write failed")
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// handleMessage processes one client request
func (s *Session) handleMessage(msg *Message) {
	s.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypeReset:
		obs := s.engine.Reset()
		s.reply(MessageTypeObservation, msg.RequestID, ObservationData{Observation: obs.Vector()})

	case MessageTypeStep:
		var data StepData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.Action == nil {
			s.sendError(msg.RequestID, ErrCodeBadRequest, "step requires an integer action")
			return
		}
		s.handleStep(msg.RequestID, *data.Action)

	case MessageTypeRender:
		s.reply(MessageTypeRender, msg.RequestID, RenderData{Text: s.engine.Render()})

	case MessageTypeSpec:
		s.reply(MessageTypeSpec, msg.RequestID, SpecData{
			SessionID:       s.id,
			BetLevels:       s.engine.BetLevels(),
			Decks:           s.engine.NumDecks(),
			ObservationSize: blackjack.ObservationSize,
		})

	default:
		s.sendError(msg.RequestID, ErrCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (s *Session) handleStep(requestID string, action int) {
	result, err := s.engine.Step(action)
	switch {
	case errors.Is(err, blackjack.ErrBetOutOfRange):
		s.sendError(requestID, ErrCodeBetOutOfRange, err.Error())
		return
	case errors.Is(err, blackjack.ErrRoundNotDealt):
		s.sendError(requestID, ErrCodeRoundNotDealt, err.Error())
		return
	case err != nil:
		s.sendError(requestID, ErrCodeBadRequest, err.Error())
		return
	}

	s.logger.Debug("Round played", "bet", result.Outcome.Bet, "reward", result.Reward)
	s.reply(MessageTypeStepResult, requestID, StepResultData{
		Observation: result.Observation.Vector(),
		Reward:      result.Reward,
		Done:        result.Done,
		Info:        result.Info,
	})
}

func (s *Session) reply(messageType MessageType, requestID string, data any) {
	msg, err := NewMessage(messageType, requestID, data)
	if err != nil {
		s.logger.Error("Failed to encode reply", "type", messageType, "error", err)
		return
	}
	_ = s.SendMessage(msg) // Ignore send errors
}

// sendError sends an error message to the client
func (s *Session) sendError(requestID, code, message string) {
	s.reply(MessageTypeError, requestID, ErrorData{Code: code, Message: message})
}
