package blackjack

import "github.com/lox/blackjackforbots/internal/deck"

// dealerStandTotal is the total the dealer stands on, soft or hard
const dealerStandTotal = 17

// playDealer draws to the dealer hand until it reaches 17, counting every
// drawn card. It returns whether the dealer busted.
func playDealer(h *Hand, shoe *deck.Shoe, count *CountTracker) bool {
	for h.Total() < dealerStandTotal {
		card := shoe.Draw()
		h.AddCard(card)
		count.Observe(card)
		if h.IsBusted() {
			return true
		}
	}
	return false
}
