package main

import (
	"time"

	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/server"
)

// ServeCmd runs the WebSocket environment server
type ServeCmd struct {
	Addr        string        `help:"Listen address host:port (overrides config)"`
	Seed        *int64        `help:"Base RNG seed; session n uses seed+n"`
	Decks       int           `help:"Decks in each session's shoe"`
	Levels      int           `help:"Number of bet levels"`
	IdleTimeout time.Duration `help:"Close sessions idle longer than this"`
}

func (c *ServeCmd) apply(cfg *config.Config) {
	if c.Decks != 0 {
		cfg.Shoe.Decks = c.Decks
	}
	if c.Levels != 0 {
		cfg.Betting.Levels = c.Levels
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = *c.Seed
	}
	if c.IdleTimeout != 0 {
		cfg.Server.IdleTimeout = c.IdleTimeout.String()
	}
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Server.LogLevel)

	chart, err := cfg.LoadChart()
	if err != nil {
		return err
	}
	idle, err := cfg.IdleTimeout()
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
	}

	srv, err := server.NewServer(server.Config{
		Addr:        addr,
		Decks:       cfg.Shoe.Decks,
		BetLevels:   cfg.Betting.Levels,
		Chart:       chart,
		Seed:        cfg.Simulation.Seed,
		IdleTimeout: idle,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()
	return srv.ListenAndServe(ctx)
}
