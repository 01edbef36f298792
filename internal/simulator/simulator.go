package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackforbots/internal/betting"
	"github.com/lox/blackjackforbots/internal/blackjack"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/statistics"
	"github.com/lox/blackjackforbots/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds           int
	Workers          int
	Seed             int64
	Decks            int
	BetLevels        int
	Policy           string
	UnitPerCount     float64
	Chart            *strategy.Chart
	Logger           *log.Logger
	Clock            quartz.Clock
	ProgressInterval time.Duration // zero disables progress logging
}

// Result is a finished simulation
type Result struct {
	Stats    *statistics.Statistics
	Policy   string
	Rounds   int
	Workers  int
	Seed     int64
	Decks    int
	Duration time.Duration
}

// Simulator runs blackjack rounds across a pool of workers, each owning its
// own engine and bet policy
type Simulator struct {
	config Config
	played atomic.Int64
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Workers > config.Rounds {
		config.Workers = config.Rounds
	}
	if config.Decks == 0 {
		config.Decks = blackjack.DefaultNumDecks
	}
	if config.BetLevels == 0 {
		config.BetLevels = blackjack.DefaultBetLevels
	}
	if config.Policy == "" {
		config.Policy = "flat"
	}
	if !betting.Valid(config.Policy) {
		return nil, fmt.Errorf("unknown betting policy %q", config.Policy)
	}
	if config.Chart == nil {
		chart, err := strategy.DefaultChart()
		if err != nil {
			return nil, err
		}
		config.Chart = chart
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}, nil
}

// Config returns the effective configuration after defaults are applied
func (s *Simulator) Config() Config {
	return s.config
}

// Played returns how many rounds have completed so far
func (s *Simulator) Played() int {
	return int(s.played.Load())
}

// Run plays every round and returns the merged statistics. Cancelling ctx
// stops workers between rounds.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	logger := s.config.Logger.WithPrefix("simulator")
	clock := s.config.Clock
	start := clock.Now()
	s.played.Store(0)

	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()
	if s.config.ProgressInterval > 0 {
		clock.TickerFunc(progressCtx, s.config.ProgressInterval, func() error {
			done := s.Played()
			logger.Info("Progress",
				"rounds", done,
				"total", s.config.Rounds,
				"pct", fmt.Sprintf("%.1f", float64(done)/float64(s.config.Rounds)*100),
				"elapsed", clock.Since(start).Round(time.Millisecond))
			return nil
		}, "simulator", "progress")
	}

	workers := s.config.Workers
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers
	results := make([]*statistics.Statistics, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		g.Go(func() error {
			stats, err := s.runWorker(gctx, w, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Merge(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	res := &Result{
		Stats:    stats,
		Policy:   s.config.Policy,
		Rounds:   stats.Rounds,
		Workers:  workers,
		Seed:     s.config.Seed,
		Decks:    s.config.Decks,
		Duration: clock.Since(start),
	}
	logger.Debug("Simulation complete", "rounds", res.Rounds, "duration", res.Duration)
	return res, nil
}

// runWorker plays rounds on a private engine. Worker w is seeded with
// Seed+w so runs are reproducible for a fixed worker count.
func (s *Simulator) runWorker(ctx context.Context, w, rounds int) (*statistics.Statistics, error) {
	seed := s.config.Seed + int64(w)
	engine, err := blackjack.New(blackjack.Config{
		NumDecks:  s.config.Decks,
		BetLevels: s.config.BetLevels,
		Chart:     s.config.Chart,
		Shuffler:  randutil.New(seed),
		Logger:    s.config.Logger.With("worker", w),
	})
	if err != nil {
		return nil, err
	}
	policy, err := betting.New(s.config.Policy, s.config.BetLevels, s.config.UnitPerCount, randutil.NewStream(seed, 1))
	if err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for range rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obs := engine.Reset()
		step, err := engine.Step(policy.Bet(obs))
		if err != nil {
			return nil, err
		}
		stats.Add(ResultFromOutcome(step.Reward, step.Outcome))
		s.played.Add(1)
	}
	return stats, nil
}

// ResultFromOutcome flattens a round outcome into a statistics record
func ResultFromOutcome(reward float64, o blackjack.RoundOutcome) statistics.RoundResult {
	r := statistics.RoundResult{
		Reward:        reward,
		Bet:           o.Bet,
		TrueCount:     o.TrueCount,
		Hands:         len(o.Hands),
		Splits:        o.Splits(),
		DealerNatural: o.Dealer.Natural,
		DealerBust:    o.Dealer.Busted,
		Reshuffled:    o.Reshuffled,
	}
	for _, h := range o.Hands {
		r.Wagered += h.Stake
		if h.Hand.Doubled {
			r.Doubles++
		}
		if h.Busted {
			r.PlayerBusts++
		}
		if h.Hand.IsSixCardCharlie() {
			r.Charlies++
		}
		if h.Natural {
			r.PlayerNatural = true
		}
	}
	return r
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, rounds int, policy string, seed int64, logger *log.Logger) (*Result, error) {
	sim, err := New(Config{
		Rounds:  rounds,
		Workers: 1,
		Seed:    seed,
		Policy:  policy,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}

// IsCancelled reports whether err came from a cancelled or expired context
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
