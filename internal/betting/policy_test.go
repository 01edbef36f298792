package betting

import (
	"testing"

	"github.com/lox/blackjackforbots/internal/blackjack"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range Names {
		p, err := New(name, 10, 1, randutil.New(1))
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
		assert.True(t, Valid(name))
	}

	_, err := New("martingale", 10, 1, nil)
	assert.Error(t, err)
	assert.False(t, Valid("martingale"))

	_, err = New("flat", 0, 1, nil)
	assert.Error(t, err)

	_, err = New("random", 10, 1, nil)
	assert.Error(t, err)

	_, err = New("ramp", 10, -1, nil)
	assert.Error(t, err)
}

func TestFlat(t *testing.T) {
	p := Flat{}
	assert.Equal(t, 0, p.Bet(blackjack.Observation{TrueCount: 8}))
	assert.Equal(t, 0, p.Bet(blackjack.Observation{TrueCount: -8}))
}

func TestRamp(t *testing.T) {
	p := &Ramp{Levels: 5, UnitPerCount: 1}

	tests := []struct {
		trueCount float64
		want      int
	}{
		{-3, 0},
		{0, 0},
		{0.9, 0},
		{1, 1},
		{2.5, 2},
		{4, 4},
		{12, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Bet(blackjack.Observation{TrueCount: tt.trueCount}), "tc=%v", tt.trueCount)
	}

	half := &Ramp{Levels: 10, UnitPerCount: 0.5}
	assert.Equal(t, 1, half.Bet(blackjack.Observation{TrueCount: 3}))
}

func TestRandomWithinLevels(t *testing.T) {
	p, err := New("random", 3, 0, randutil.New(9))
	require.NoError(t, err)

	seen := map[int]bool{}
	for range 200 {
		a := p.Bet(blackjack.Observation{})
		require.GreaterOrEqual(t, a, 0)
		require.Less(t, a, 3)
		seen[a] = true
	}
	assert.Len(t, seen, 3)
}

func TestRandomReproducible(t *testing.T) {
	a, _ := New("random", 10, 0, randutil.New(5))
	b, _ := New("random", 10, 0, randutil.New(5))
	for range 20 {
		assert.Equal(t, a.Bet(blackjack.Observation{}), b.Bet(blackjack.Observation{}))
	}
}
