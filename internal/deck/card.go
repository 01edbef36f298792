package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. Suits carry no weight in blackjack scoring.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists the suits in shoe build order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Value returns the blackjack value of the rank: face value for 2-10,
// 10 for court cards and 11 for an ace.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// CountTag returns the Hi-Lo tag for the rank
func (r Rank) CountTag() int {
	switch {
	case r <= Six:
		return 1
	case r <= Nine:
		return 0
	default:
		return -1
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "10♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the blackjack value of the card
func (c Card) Value() int {
	return c.Rank.Value()
}

// CountTag returns the card's contribution to the running count
func (c Card) CountTag() int {
	return c.Rank.CountTag()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a single card such as "As", "10h", "Td" or "K♦"
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("expected one card, got %d in %q", len(cards), s)
	}
	return cards[0], nil
}

// ParseCards parses a sequence of cards. Cards may be run together ("AsKd")
// or separated by spaces or commas ("10♠, 7♥"). Ranks: A K Q J T/10 9-2.
// Suits: s h d c or the suit symbols.
func ParseCards(s string) ([]Card, error) {
	runes := []rune(strings.NewReplacer(" ", "", ",", "").Replace(s))
	cards := []Card{}

	for i := 0; i < len(runes); {
		var rank Rank
		if runes[i] == '1' && i+1 < len(runes) && runes[i+1] == '0' {
			rank = Ten
			i += 2
		} else {
			r, err := parseRank(runes[i])
			if err != nil {
				return nil, fmt.Errorf("invalid rank %q at position %d: %w", runes[i], i, err)
			}
			rank = r
			i++
		}

		if i >= len(runes) {
			return nil, fmt.Errorf("missing suit for rank %s", rank)
		}
		suit, err := parseSuit(runes[i])
		if err != nil {
			return nil, fmt.Errorf("invalid suit %q at position %d: %w", runes[i], i, err)
		}
		i++

		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(c rune) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank")
}

func parseSuit(c rune) (Suit, error) {
	switch c {
	case 's', 'S', '♠':
		return Spades, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'c', 'C', '♣':
		return Clubs, nil
	}
	return 0, fmt.Errorf("unknown suit")
}
