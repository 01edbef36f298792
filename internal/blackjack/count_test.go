package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjackforbots/internal/deck"
)

func TestCountTracker(t *testing.T) {
	var c CountTracker
	for _, card := range deck.MustParseCards("2s 3h 6d 7c 9s") {
		c.Observe(card)
	}
	assert.Equal(t, 3, c.Running())
	assert.Zero(t, c.True(), "true count only moves on Refresh")

	c.Refresh(156)
	assert.InDelta(t, 1.0, c.True(), 1e-9)

	c.Refresh(20)
	assert.InDelta(t, 3.0, c.True(), 1e-9, "fewer than one deck left divides by one")

	c.Observe(deck.NewCard(deck.Clubs, deck.Ace))
	c.Observe(deck.NewCard(deck.Clubs, deck.King))
	assert.Equal(t, 1, c.Running())

	c.Reset()
	assert.Zero(t, c.Running())
	assert.Zero(t, c.True())
}
