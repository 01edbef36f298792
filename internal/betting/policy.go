// Package betting provides simple bet-sizing policies that stand in for an
// external agent when driving the blackjack engine.
package betting

import (
	"fmt"
	"math"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/blackjackforbots/internal/blackjack"
)

// Policy chooses a bet action index in [0, levels) from an observation
type Policy interface {
	Bet(obs blackjack.Observation) int
	Name() string
}

// Names lists the policies New understands
var Names = []string{"flat", "ramp", "random"}

// New constructs the named policy. unitPerCount only affects ramp; rng only
// affects random and is required for it.
func New(name string, levels int, unitPerCount float64, rng *rand.Rand) (Policy, error) {
	if levels < 1 {
		return nil, fmt.Errorf("bet levels must be at least 1, got %d", levels)
	}
	switch name {
	case "flat":
		return Flat{}, nil
	case "ramp":
		if unitPerCount < 0 {
			return nil, fmt.Errorf("unit per count must not be negative, got %v", unitPerCount)
		}
		return &Ramp{Levels: levels, UnitPerCount: unitPerCount}, nil
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("random policy requires a random source")
		}
		return &Random{levels: levels, rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown betting policy %q (want one of %v)", name, Names)
	}
}

// Valid reports whether name is a known policy
func Valid(name string) bool {
	return slices.Contains(Names, name)
}

// Flat always bets the minimum
type Flat struct{}

func (Flat) Bet(blackjack.Observation) int { return 0 }
func (Flat) Name() string                  { return "flat" }

// Ramp spreads its bet with the true count: floor(tc * UnitPerCount),
// clamped to the available levels.
type Ramp struct {
	Levels       int
	UnitPerCount float64
}

func (r *Ramp) Bet(obs blackjack.Observation) int {
	action := int(math.Floor(obs.TrueCount * r.UnitPerCount))
	return max(0, min(r.Levels-1, action))
}

func (r *Ramp) Name() string { return "ramp" }

// Random bets uniformly across levels. Not safe for concurrent use.
type Random struct {
	levels int
	rng    *rand.Rand
}

func (r *Random) Bet(blackjack.Observation) int { return r.rng.IntN(r.levels) }
func (r *Random) Name() string                  { return "random" }
