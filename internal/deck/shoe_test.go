package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackforbots/internal/randutil"
)

func TestNewShoeComposition(t *testing.T) {
	shoe := NewShoe(2, randutil.New(1))
	require.Equal(t, 104, shoe.Remaining())
	assert.Equal(t, 104, shoe.Size())

	suits := map[Suit]int{}
	ranks := map[Rank]int{}
	for shoe.Remaining() > 0 {
		c := shoe.Draw()
		suits[c.Suit]++
		ranks[c.Rank]++
	}

	for _, suit := range Suits {
		assert.Equal(t, 26, suits[suit], "suit %s", suit)
	}
	for rank := Two; rank <= Ace; rank++ {
		assert.Equal(t, 8, ranks[rank], "rank %s", rank)
	}
	assert.Zero(t, shoe.Rebuilds())
}

func TestShoeShuffleIsSeeded(t *testing.T) {
	a := NewShoe(1, randutil.New(42))
	b := NewShoe(1, randutil.New(42))
	c := NewShoe(1, randutil.New(43))

	var seqA, seqB, seqC []Card
	for range 52 {
		seqA = append(seqA, a.Draw())
		seqB = append(seqB, b.Draw())
		seqC = append(seqC, c.Draw())
	}
	assert.Equal(t, seqA, seqB)
	assert.NotEqual(t, seqA, seqC)
}

func TestShoeDrawRebuildsWhenEmpty(t *testing.T) {
	shoe := NewShoe(1, randutil.New(7))
	first := shoe.Draw()
	assert.Equal(t, 51, shoe.Remaining())
	assert.NotEqual(t, Card{}, first)

	for shoe.Remaining() > 0 {
		shoe.Draw()
	}
	require.Equal(t, 0, shoe.Remaining())

	shoe.Draw()
	assert.Equal(t, 51, shoe.Remaining())
	assert.Equal(t, 1, shoe.Rebuilds())
}

func TestStackedShoe(t *testing.T) {
	cards := MustParseCards("As Kd 7h")
	shoe := NewShoeFromCards(1, cards, randutil.New(1))

	assert.Equal(t, 3, shoe.Remaining())
	for _, want := range cards {
		assert.Equal(t, want, shoe.Draw())
	}

	// Exhausted stack falls back to a full shoe
	shoe.Draw()
	assert.Equal(t, 51, shoe.Remaining())
	assert.Equal(t, 1, shoe.Rebuilds())
}

func TestReshuffleThreshold(t *testing.T) {
	tests := []struct {
		decks     int
		threshold int
	}{
		{1, 13},
		{2, 26},
		{6, 78},
		{8, 104},
	}
	for _, tt := range tests {
		shoe := NewShoe(tt.decks, randutil.New(1))
		assert.Equal(t, tt.threshold, shoe.ReshuffleThreshold(), "decks=%d", tt.decks)
	}

	shoe := NewShoe(1, randutil.New(1))
	for shoe.Remaining() > 13 {
		shoe.Draw()
	}
	assert.False(t, shoe.NeedsReshuffle())
	shoe.Draw()
	assert.True(t, shoe.NeedsReshuffle())
	assert.InDelta(t, 12.0/52.0, shoe.FractionRemaining(), 1e-9)
}

func TestStackedFullShoe(t *testing.T) {
	top := MustParseCards("As Ah 6d 10c")
	shoe := NewStackedShoe(1, top, randutil.New(3))

	require.Equal(t, 52, shoe.Remaining())
	for _, want := range top {
		assert.Equal(t, want, shoe.Draw())
	}

	aces := 0
	for shoe.Remaining() > 0 {
		if shoe.Draw().IsAce() {
			aces++
		}
	}
	assert.Equal(t, 2, aces, "stacked aces come out of the shoe's composition")
}
