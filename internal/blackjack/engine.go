package blackjack

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/strategy"
)

// Defaults taken when a Config field is zero
const (
	DefaultNumDecks  = 8
	DefaultBetLevels = 10
)

// Config configures an Engine
type Config struct {
	NumDecks  int             // decks in the shoe
	BetLevels int             // number of bet actions; action a wagers a+1 units
	Chart     *strategy.Chart // basic strategy used for every player decision
	Shuffler  deck.Shuffler   // shuffle source for the shoe
	Shoe      *deck.Shoe      // optional pre-built shoe, overrides NumDecks and Shuffler
	Logger    *log.Logger
}

// HandOutcome is one terminal player hand and what it paid
type HandOutcome struct {
	Leaf
	Stake  int
	Payout float64
}

// RoundOutcome describes a finished round
type RoundOutcome struct {
	Bet        int
	Hands      []HandOutcome
	Dealer     DealerResult
	TrueCount  float64 // true count the bet was placed on
	Reshuffled bool    // the shoe was rebuilt before this round was dealt
}

// Splits returns how many splits the round took
func (o RoundOutcome) Splits() int {
	return len(o.Hands) - 1
}

// StepResult is returned by Step. Done is always true: a round is one step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
	Info        map[string]any
	Outcome     RoundOutcome
}

// Engine plays single-player blackjack rounds. The bet is the only input;
// every playing decision comes from the strategy table. An Engine owns its
// shoe and hands and must not be shared between goroutines.
type Engine struct {
	numDecks  int
	betLevels int
	shoe      *deck.Shoe
	table     *strategy.Table
	count     CountTracker
	logger    *log.Logger

	player     *Hand
	dealer     *Hand
	leaves     []Leaf
	dealt      bool
	reshuffled bool
}

// New creates an engine from cfg
func New(cfg Config) (*Engine, error) {
	if cfg.Chart == nil {
		return nil, ErrNoChart
	}
	if cfg.NumDecks == 0 {
		cfg.NumDecks = DefaultNumDecks
	}
	if cfg.BetLevels == 0 {
		cfg.BetLevels = DefaultBetLevels
	}
	if cfg.NumDecks < 0 {
		return nil, fmt.Errorf("invalid number of decks: %d", cfg.NumDecks)
	}
	if cfg.BetLevels < 0 {
		return nil, fmt.Errorf("invalid number of bet levels: %d", cfg.BetLevels)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	shoe := cfg.Shoe
	if shoe == nil {
		shoe = deck.NewShoe(cfg.NumDecks, cfg.Shuffler)
	}

	return &Engine{
		numDecks:  shoe.NumDecks(),
		betLevels: cfg.BetLevels,
		shoe:      shoe,
		table:     strategy.NewTable(cfg.Chart),
		logger:    cfg.Logger.WithPrefix("engine"),
	}, nil
}

// Reset starts a new round: rebuilds the shoe if it has fallen below the
// reshuffle threshold, deals two cards each to player and dealer and
// returns the observation the bet is placed on. The dealer's hole card is
// not counted until the player has finished.
func (e *Engine) Reset() Observation {
	e.reshuffled = false
	if e.shoe.NeedsReshuffle() {
		e.logger.Debug("Reshuffling shoe", "remaining", e.shoe.Remaining(), "threshold", e.shoe.ReshuffleThreshold())
		e.shoe.Rebuild()
		e.count.Reset()
		e.reshuffled = true
	}

	e.player = &Hand{}
	e.dealer = &Hand{}
	e.leaves = nil

	e.player.AddCard(e.draw())
	e.player.AddCard(e.draw())
	e.dealer.AddCard(e.draw())
	e.dealer.AddCard(e.shoe.Draw()) // hole card, counted after the player acts

	e.dealt = true
	e.logger.Debug("Dealt", "player", e.player, "upcard", e.dealer.Cards()[0])
	return e.observation()
}

// Step places a bet of action+1 units and plays the round out
func (e *Engine) Step(action int) (StepResult, error) {
	if !e.dealt {
		return StepResult{}, ErrRoundNotDealt
	}
	if action < 0 || action >= e.betLevels {
		return StepResult{}, fmt.Errorf("%w: %d not in [0, %d)", ErrBetOutOfRange, action, e.betLevels)
	}

	bet := action + 1
	trueCount := e.count.True()
	rebuilds := e.shoe.Rebuilds()

	r := resolver{
		shoe:        e.shoe,
		count:       &e.count,
		table:       e.table,
		dealerValue: e.dealer.Cards()[0].Value(),
		logger:      e.logger,
	}
	e.leaves = r.resolve(e.player)

	e.count.Observe(e.dealer.Cards()[1])

	dealer := DealerResult{Hand: e.dealer, Natural: e.dealer.IsNatural()}
	if !dealer.Natural {
		dealer.Busted = playDealer(e.dealer, e.shoe, &e.count)
	}

	outcome := RoundOutcome{
		Bet:        bet,
		Dealer:     dealer,
		TrueCount:  trueCount,
		Reshuffled: e.reshuffled,
		Hands:      make([]HandOutcome, len(e.leaves)),
	}
	var reward float64
	for i, leaf := range e.leaves {
		payout := Payout(leaf, dealer, bet)
		outcome.Hands[i] = HandOutcome{Leaf: leaf, Stake: Stake(leaf, bet), Payout: payout}
		reward += payout
	}

	e.count.Refresh(e.shoe.Remaining())
	e.dealt = false

	if n := e.shoe.Rebuilds() - rebuilds; n > 0 {
		e.logger.Warn("Shoe ran out mid-round and was rebuilt", "rebuilds", n)
	}
	e.logger.Debug("Round complete",
		"bet", bet,
		"hands", len(e.leaves),
		"dealer", dealer.Hand.Total(),
		"reward", reward,
		"running", e.count.Running(),
		"trueCount", e.count.True())

	return StepResult{
		Observation: e.observation(),
		Reward:      reward,
		Done:        true,
		Info:        map[string]any{},
		Outcome:     outcome,
	}, nil
}

// draw takes a card from the shoe and counts it
func (e *Engine) draw() deck.Card {
	card := e.shoe.Draw()
	e.count.Observe(card)
	return card
}

func (e *Engine) observation() Observation {
	return Observation{
		TrueCount:     e.count.True(),
		ShoeRemaining: e.shoe.FractionRemaining(),
		DealerUpcard:  float64(e.dealer.Cards()[0].Value()),
	}
}

// Render returns a text dump of the current hands, for debugging
func (e *Engine) Render() string {
	if e.player == nil {
		return "No round dealt\n"
	}

	var sb strings.Builder
	for i, h := range e.PlayerHands() {
		fmt.Fprintf(&sb, "Player's hand %d: %s (Value: %d)\n", i+1, h, h.Total())
	}
	fmt.Fprintf(&sb, "Dealer's hand: %s (Value: %d)\n", e.dealer, e.dealer.Total())
	return sb.String()
}

// PlayerHands returns the player's hands: the dealt hand while a round is
// pending, the resolved hands after Step.
func (e *Engine) PlayerHands() []*Hand {
	if e.leaves == nil {
		if e.player == nil {
			return nil
		}
		return []*Hand{e.player}
	}
	hands := make([]*Hand, len(e.leaves))
	for i, leaf := range e.leaves {
		hands[i] = leaf.Hand
	}
	return hands
}

// DealerHand returns the dealer's hand for the current or last round
func (e *Engine) DealerHand() *Hand {
	return e.dealer
}

// BetLevels returns the number of valid bet actions
func (e *Engine) BetLevels() int { return e.betLevels }

// NumDecks returns the number of decks in the shoe
func (e *Engine) NumDecks() int { return e.numDecks }

// RunningCount returns the current running count
func (e *Engine) RunningCount() int { return e.count.Running() }

// TrueCount returns the true count as of the last completed round
func (e *Engine) TrueCount() float64 { return e.count.True() }

// Remaining returns the cards left in the shoe
func (e *Engine) Remaining() int { return e.shoe.Remaining() }
