package strategy

import "fmt"

// Decision is a basic-strategy play
type Decision uint8

const (
	Stand Decision = iota
	Hit
	Double
	Split
)

// String returns the chart code for the decision
func (d Decision) String() string {
	switch d {
	case Stand:
		return "S"
	case Hit:
		return "H"
	case Double:
		return "D"
	case Split:
		return "SP"
	default:
		return fmt.Sprintf("Decision(%d)", uint8(d))
	}
}

// ParseDecision parses a chart cell code (H, S, D or SP)
func ParseDecision(code string) (Decision, error) {
	switch code {
	case "S":
		return Stand, nil
	case "H":
		return Hit, nil
	case "D":
		return Double, nil
	case "SP":
		return Split, nil
	}
	return Stand, fmt.Errorf("unknown decision code %q", code)
}

// Kind selects which grid a Situation is looked up in
type Kind uint8

const (
	HardTotal Kind = iota
	SoftTotal
	PairRank
)

func (k Kind) String() string {
	switch k {
	case HardTotal:
		return "hard"
	case SoftTotal:
		return "soft"
	case PairRank:
		return "pair"
	default:
		return "unknown"
	}
}

// Situation is the player side of a chart lookup: a hard total, a soft
// total, or a pair identified by its card value (10 for any ten-valued
// card, 11 for aces).
type Situation struct {
	Kind Kind
	Key  int
}

// Hard returns the situation for a hard total
func Hard(total int) Situation { return Situation{Kind: HardTotal, Key: total} }

// Soft returns the situation for a soft total
func Soft(total int) Situation { return Situation{Kind: SoftTotal, Key: total} }

// Pair returns the situation for a pair of cards worth value each
func Pair(value int) Situation { return Situation{Kind: PairRank, Key: value} }

func (s Situation) String() string {
	return fmt.Sprintf("%s %d", s.Kind, s.Key)
}
