package blackjack

const naturalPayout = 1.5

// DealerResult is the dealer's terminal state for a round
type DealerResult struct {
	Hand    *Hand
	Natural bool
	Busted  bool
}

// Payout returns the signed result of leaf against the dealer for a bet of
// bet units. Doubled hands stake twice the bet; a natural pays 3:2 on the
// undoubled bet.
func Payout(leaf Leaf, dealer DealerResult, bet int) float64 {
	stake := float64(bet)
	if leaf.Hand.Doubled {
		stake *= 2
	}

	switch {
	case leaf.Hand.IsSixCardCharlie():
		return stake
	case leaf.Natural && !dealer.Natural:
		return naturalPayout * float64(bet)
	case dealer.Natural && !leaf.Natural:
		return -stake
	case leaf.Natural && dealer.Natural:
		return 0
	case leaf.Busted:
		return -stake
	case dealer.Busted:
		return stake
	}

	player, house := leaf.Hand.Total(), dealer.Hand.Total()
	switch {
	case player > house:
		return stake
	case player < house:
		return -stake
	default:
		return 0
	}
}

// Stake returns the units wagered on leaf for a bet of bet units
func Stake(leaf Leaf, bet int) int {
	if leaf.Hand.Doubled {
		return 2 * bet
	}
	return bet
}
