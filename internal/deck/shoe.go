package deck

import (
	"slices"
	"time"

	"github.com/lox/blackjackforbots/internal/randutil"
)

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

// reshufflePenetration is the fraction of the shoe below which a new round
// starts from a freshly built shoe.
const reshufflePenetration = 0.25

// Shuffler permutes n elements through swap. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Shoe holds the remaining cards of one or more decks. Cards are drawn from
// the front without replacement.
type Shoe struct {
	numDecks int
	cards    []Card
	shuffler Shuffler
	rebuilds int
}

// NewShoe builds and shuffles a shoe of numDecks decks. A nil shuffler is
// replaced with a time-seeded one.
func NewShoe(numDecks int, shuffler Shuffler) *Shoe {
	if shuffler == nil {
		shuffler = randutil.New(time.Now().UnixNano())
	}
	s := &Shoe{numDecks: numDecks, shuffler: shuffler}
	s.Rebuild()
	return s
}

// NewShoeFromCards creates a shoe whose draw order is exactly cards. Once the
// stacked cards run out the shoe rebuilds numDecks shuffled decks as usual.
func NewShoeFromCards(numDecks int, cards []Card, shuffler Shuffler) *Shoe {
	if shuffler == nil {
		shuffler = randutil.New(time.Now().UnixNano())
	}
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{numDecks: numDecks, cards: stacked, shuffler: shuffler}
}

// NewStackedShoe returns a full shuffled shoe with top moved to the front
// in the given order. Cards in top are taken out of the shoe's own
// composition where a copy is available.
func NewStackedShoe(numDecks int, top []Card, shuffler Shuffler) *Shoe {
	s := NewShoe(numDecks, shuffler)
	rest := s.cards
	for _, c := range top {
		if i := slices.Index(rest, c); i >= 0 {
			rest = slices.Delete(rest, i, i+1)
		}
	}
	s.cards = append(slices.Clone(top), rest...)
	return s
}

// Rebuild restores the shoe to numDecks full decks and shuffles it
func (s *Shoe) Rebuild() {
	s.cards = make([]Card, 0, s.Size())
	for range s.numDecks {
		for _, suit := range Suits {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.Shuffle()
}

// Shuffle randomizes the order of the remaining cards
func (s *Shoe) Shuffle() {
	s.shuffler.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns the top card. Drawing from an empty shoe
// rebuilds and reshuffles it first; the rebuild is counted in Rebuilds.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.Rebuild()
		s.rebuilds++
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// NumDecks returns the number of decks the shoe is built from
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// Size returns the number of cards in a full shoe
func (s *Shoe) Size() int {
	return CardsPerDeck * s.numDecks
}

// FractionRemaining returns the remaining cards as a fraction of a full shoe
func (s *Shoe) FractionRemaining() float64 {
	return float64(len(s.cards)) / float64(s.Size())
}

// ReshuffleThreshold returns floor(0.25 * 52 * numDecks)
func (s *Shoe) ReshuffleThreshold() int {
	return int(reshufflePenetration * float64(s.Size()))
}

// NeedsReshuffle reports whether fewer cards than the threshold remain
func (s *Shoe) NeedsReshuffle() bool {
	return len(s.cards) < s.ReshuffleThreshold()
}

// Rebuilds returns how many times Draw found the shoe empty
func (s *Shoe) Rebuilds() int {
	return s.rebuilds
}
