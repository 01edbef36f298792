package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/blackjackforbots/internal/blackjack"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/display"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// DealCmd deals rounds at a fixed bet and prints each one
type DealCmd struct {
	Rounds  int    `short:"n" default:"3" help:"Rounds to deal"`
	Bet     int    `default:"0" help:"Bet action index (bets action+1 units)"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Stack   string `help:"Cards to put on top of the shoe, e.g. 'As Kd 10h 6c'"`
	NoColor bool   `help:"Disable colored output"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := setupLogger(cfg.Server.LogLevel)

	chart, err := cfg.LoadChart()
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var shoe *deck.Shoe
	if c.Stack != "" {
		top, err := deck.ParseCards(c.Stack)
		if err != nil {
			return fmt.Errorf("invalid --stack: %w", err)
		}
		shoe = deck.NewStackedShoe(cfg.Shoe.Decks, top, randutil.New(seed))
	}

	engine, err := blackjack.New(blackjack.Config{
		NumDecks:  cfg.Shoe.Decks,
		BetLevels: cfg.Betting.Levels,
		Chart:     chart,
		Shuffler:  randutil.New(seed),
		Shoe:      shoe,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	return deal(os.Stdout, display.New(os.Stdout, !c.NoColor), engine, c.Rounds, c.Bet)
}

// deal plays rounds on engine at a fixed bet, printing each
func deal(w io.Writer, d *display.Display, engine *blackjack.Engine, rounds, bet int) error {
	var total float64
	for i := range rounds {
		obs := engine.Reset()
		fmt.Fprintf(w, "Upcard %v, TC %+.2f\n", obs.DealerUpcard, obs.TrueCount)

		result, err := engine.Step(bet)
		if err != nil {
			return err
		}
		total += result.Reward
		fmt.Fprintln(w, d.Round(i+1, result))
	}
	fmt.Fprintf(w, "Net after %d rounds: %s\n", rounds, d.Reward(total))
	return nil
}
