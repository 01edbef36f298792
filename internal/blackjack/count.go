package blackjack

import "github.com/lox/blackjackforbots/internal/deck"

// CountTracker keeps the Hi-Lo running count of every card revealed since
// the last reshuffle, and the true count derived from it once per round.
type CountTracker struct {
	running int
	trueCnt float64
}

// Observe adds a revealed card to the running count
func (c *CountTracker) Observe(card deck.Card) {
	c.running += card.CountTag()
}

// Refresh recomputes the true count for a shoe with remaining cards left
func (c *CountTracker) Refresh(remaining int) {
	decksLeft := max(1, float64(remaining)/deck.CardsPerDeck)
	c.trueCnt = float64(c.running) / decksLeft
}

// Reset zeroes both counts
func (c *CountTracker) Reset() {
	c.running = 0
	c.trueCnt = 0
}

// Running returns the running count
func (c *CountTracker) Running() int {
	return c.running
}

// True returns the true count as of the last Refresh
func (c *CountTracker) True() float64 {
	return c.trueCnt
}
