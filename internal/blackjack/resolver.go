package blackjack

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/strategy"
)

// maxDecisionsPerHand bounds the decision loop of a single hand. It is a
// guard against runaway play, not a table rule.
const maxDecisionsPerHand = 10

// Leaf is a terminal player hand produced by resolving a root hand
type Leaf struct {
	Hand    *Hand
	Busted  bool
	Natural bool
}

// resolver plays a root hand by basic strategy. Hands live in an arena and
// the worklist holds arena indices; a split replaces the current entry with
// its two children and the first child is played next.
type resolver struct {
	shoe        *deck.Shoe
	count       *CountTracker
	table       *strategy.Table
	dealerValue int
	logger      *log.Logger
}

func (r *resolver) resolve(root *Hand) []Leaf {
	natural := root.IsNatural()

	arena := []*Hand{root}
	work := []int{0}

	for i := 0; i < len(work); {
		h := arena[work[i]]
		if h.mustStand() {
			i++
			continue
		}

		children := r.play(h)
		if children == nil {
			i++
			continue
		}

		first := len(arena)
		arena = append(arena, children[0], children[1])
		work = slices.Replace(work, i, i+1, first, first+1)
	}

	leaves := make([]Leaf, len(work))
	for j, idx := range work {
		h := arena[idx]
		leaves[j] = Leaf{Hand: h, Busted: h.IsBusted(), Natural: natural}
	}
	return leaves
}

// play runs the decision loop for one hand. It returns the two child hands
// when the hand splits, nil otherwise.
func (r *resolver) play(h *Hand) []*Hand {
	for range maxDecisionsPerHand {
		if h.IsSixCardCharlie() {
			return nil
		}
		if h.mustStand() {
			return nil
		}

		d := r.table.Decide(h.Situation(), r.dealerValue)
		r.logger.Debug("Player decision", "hand", h, "total", h.Total(), "decision", d)

		switch d {
		case strategy.Hit:
			if r.hit(h) {
				return nil
			}
		case strategy.Double:
			if h.CanDouble() {
				h.Doubled = true
				r.hit(h)
				return nil
			}
			if r.hit(h) {
				return nil
			}
		case strategy.Split:
			if h.CanSplit() {
				return r.split(h)
			}
			if r.hit(h) {
				return nil
			}
		case strategy.Stand:
			return nil
		default:
			panic("blackjack: unhandled decision " + d.String())
		}
	}

	r.logger.Warn("Decision limit reached, standing", "hand", h, "total", h.Total())
	return nil
}

// hit draws one card to h and reports whether it busted
func (r *resolver) hit(h *Hand) bool {
	card := r.shoe.Draw()
	h.AddCard(card)
	r.count.Observe(card)
	return h.IsBusted()
}

func (r *resolver) split(h *Hand) []*Hand {
	children := make([]*Hand, 2)
	for i, seed := range h.Cards() {
		child := NewHand(seed)
		child.Split = true
		child.SplitAces = seed.IsAce()
		children[i] = child
	}
	for _, child := range children {
		r.hit(child)
	}
	r.logger.Debug("Split", "first", children[0], "second", children[1])
	return children
}
