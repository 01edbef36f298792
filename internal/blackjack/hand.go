package blackjack

import (
	"strings"

	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/strategy"
)

const (
	blackjackTotal   = 21
	charlieCardCount = 6
)

// Hand is a running blackjack total over the cards dealt to it. Aces enter
// at 11 and are demoted to 1 one at a time while the total is over 21.
type Hand struct {
	cards     []deck.Card
	total     int
	softAces  int // aces still counted as 11
	Doubled   bool
	Split     bool // hand was produced by a split
	SplitAces bool // hand was produced by splitting aces
}

// NewHand returns a hand holding cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

// AddCard deals c to the hand
func (h *Hand) AddCard(c deck.Card) {
	h.cards = append(h.cards, c)
	h.total += c.Value()
	if c.IsAce() {
		h.softAces++
	}
	h.adjustForAce()
}

func (h *Hand) adjustForAce() {
	for h.total > blackjackTotal && h.softAces > 0 {
		h.total -= 10
		h.softAces--
	}
}

// Total returns the best total of the hand
func (h *Hand) Total() int {
	return h.total
}

// Cards returns the cards in deal order
func (h *Hand) Cards() []deck.Card {
	return h.cards
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// IsSoft reports whether an ace is still counted as 11
func (h *Hand) IsSoft() bool {
	return h.softAces > 0 && h.total <= blackjackTotal
}

// IsBusted reports whether the total is over 21
func (h *Hand) IsBusted() bool {
	return h.total > blackjackTotal
}

// IsNatural reports a dealt two-card 21. Split hands never qualify.
func (h *Hand) IsNatural() bool {
	return h.total == blackjackTotal && len(h.cards) == 2 && !h.Split
}

// IsSixCardCharlie reports six cards without busting
func (h *Hand) IsSixCardCharlie() bool {
	return len(h.cards) == charlieCardCount && !h.IsBusted()
}

// CanDouble reports whether the hand may double down
func (h *Hand) CanDouble() bool {
	return len(h.cards) == 2 && !h.SplitAces
}

// CanSplit reports two cards of equal blackjack value (so 10 and K split)
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}

// mustStand reports a split-aces hand that has taken its one card
func (h *Hand) mustStand() bool {
	return h.SplitAces && len(h.cards) == 2
}

// Situation classifies the hand for a strategy lookup
func (h *Hand) Situation() strategy.Situation {
	switch {
	case h.CanSplit():
		return strategy.Pair(h.cards[0].Value())
	case h.IsSoft():
		return strategy.Soft(h.total)
	default:
		return strategy.Hard(h.total)
	}
}

// String returns the cards joined by commas
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
