// Package server exposes blackjack engines to remote agents over
// WebSocket, one engine per connection.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjackforbots/internal/blackjack"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/strategy"
)

const defaultIdleTimeout = 10 * time.Minute

// Config configures a Server
type Config struct {
	Addr         string
	Decks        int
	BetLevels    int
	Chart        *strategy.Chart
	Seed         int64         // base seed; session n uses Seed+n. Zero seeds from the clock.
	IdleTimeout  time.Duration // sessions idle longer than this are closed
	ReapInterval time.Duration // how often idle sessions are checked, defaults to IdleTimeout/2
	Logger       *log.Logger
	Clock        quartz.Clock
}

// Server represents the WebSocket server
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu       sync.RWMutex
	sessions map[string]*Session
	ordinal  atomic.Int64
}

// NewServer creates a new WebSocket server
func NewServer(cfg Config) (*Server, error) {
	if cfg.Chart == nil {
		chart, err := strategy.DefaultChart()
		if err != nil {
			return nil, err
		}
		cfg.Chart = chart
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = cfg.IdleTimeout / 2
	}
	if cfg.Seed == 0 {
		cfg.Seed = cfg.Clock.Now().UnixNano()
	}

	// Fail fast on a bad engine configuration rather than per connection
	if _, err := blackjack.New(blackjack.Config{NumDecks: cfg.Decks, BetLevels: cfg.BetLevels, Chart: cfg.Chart}); err != nil {
		return nil, err
	}

	return &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   cfg.Logger.WithPrefix("server"),
		clock:    cfg.Clock,
		sessions: make(map[string]*Session),
	}, nil
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then closes every session
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.StartReaper(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.config.Addr, "idleTimeout", s.config.IdleTimeout)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Stop()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	s.Stop()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// StartReaper closes idle sessions every ReapInterval until ctx is done
func (s *Server) StartReaper(ctx context.Context) {
	s.clock.TickerFunc(ctx, s.config.ReapInterval, func() error {
		if n := s.ReapIdle(); n > 0 {
			s.logger.Info("Closed idle sessions", "count", n, "remaining", s.Sessions())
		}
		return nil
	}, "server", "reaper")
}

// ReapIdle closes sessions idle for longer than the idle timeout and
// returns how many were closed
func (s *Server) ReapIdle() int {
	s.mu.Lock()
	var idle []*Session
	for id, sess := range s.sessions {
		if sess.IdleFor() > s.config.IdleTimeout {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		s.logger.Debug("Closing idle session", "session", sess.ID(), "idle", sess.IdleFor())
		_ = sess.Close(websocket.CloseGoingAway, "idle timeout")
	}
	return len(idle)
}

// Stop closes every session
func (s *Server) Stop() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		_ = sess.Close(websocket.CloseGoingAway, "server shutting down")
	}
}

// Sessions returns the number of open sessions
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	sess, err := s.newSession(conn)
	if err != nil {
		s.logger.Error("Failed to create session", "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session setup failed"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	total := len(s.sessions)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", sess.ID(), "total", total)

	sess.Start()

	go func() {
		<-sess.Done()
		s.mu.Lock()
		if s.sessions[sess.ID()] == sess {
			delete(s.sessions, sess.ID())
		}
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", sess.ID())
	}()
}

func (s *Server) newSession(conn *websocket.Conn) (*Session, error) {
	ordinal := s.ordinal.Add(1) - 1
	id := uuid.NewString()
	logger := s.logger.With("session", id)

	engine, err := blackjack.New(blackjack.Config{
		NumDecks:  s.config.Decks,
		BetLevels: s.config.BetLevels,
		Chart:     s.config.Chart,
		Shuffler:  randutil.New(s.config.Seed + ordinal),
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return newSession(id, conn, engine, s.clock, s.logger), nil
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "ok")
}
