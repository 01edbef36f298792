package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/simulator"
)

// SimulateCmd runs a batch simulation. Unset flags fall back to the config file.
type SimulateCmd struct {
	Rounds       int      `short:"n" help:"Number of rounds to simulate"`
	Workers      int      `short:"w" help:"Parallel workers"`
	Seed         *int64   `help:"RNG seed (0 or unset in config for random)"`
	Decks        int      `help:"Decks in the shoe"`
	Levels       int      `help:"Number of bet levels"`
	Policy       string   `short:"p" help:"Betting policy: flat, ramp, random"`
	UnitPerCount *float64 `help:"Ramp policy units per true count"`
	Report       string   `type:"path" help:"Write a JSON summary to this file"`
}

func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Rounds != 0 {
		cfg.Simulation.Rounds = c.Rounds
	}
	if c.Workers != 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = *c.Seed
	}
	if c.Decks != 0 {
		cfg.Shoe.Decks = c.Decks
	}
	if c.Levels != 0 {
		cfg.Betting.Levels = c.Levels
	}
	if c.Policy != "" {
		cfg.Betting.Policy = c.Policy
	}
	if c.UnitPerCount != nil {
		cfg.Betting.UnitPerCount = *c.UnitPerCount
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
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
	progress, err := cfg.ProgressInterval()
	if err != nil {
		return err
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim, err := simulator.New(simulator.Config{
		Rounds:           cfg.Simulation.Rounds,
		Workers:          cfg.Simulation.Workers,
		Seed:             seed,
		Decks:            cfg.Shoe.Decks,
		BetLevels:        cfg.Betting.Levels,
		Policy:           cfg.Betting.Policy,
		UnitPerCount:     cfg.Betting.UnitPerCount,
		Chart:            chart,
		Logger:           logger,
		ProgressInterval: progress,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Starting simulation",
		"rounds", cfg.Simulation.Rounds,
		"workers", sim.Config().Workers,
		"policy", cfg.Betting.Policy,
		"decks", cfg.Shoe.Decks,
		"seed", seed)

	res, err := sim.Run(ctx)
	if err != nil {
		if simulator.IsCancelled(err) {
			return fmt.Errorf("simulation interrupted after %d rounds", sim.Played())
		}
		return err
	}

	simulator.PrintSummary(os.Stdout, res)

	if c.Report != "" {
		if err := simulator.WriteReport(c.Report, res); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}
