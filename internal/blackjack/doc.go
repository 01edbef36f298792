// Package blackjack implements the single-player blackjack round engine.
//
// An Engine deals from a multi-deck shoe, plays every player decision from a
// basic-strategy chart (including doubles, splits, split aces and the
// six-card Charlie), runs the dealer to 17, and pays each resulting hand.
// The only choice left to the caller is the bet size, which makes the engine
// a one-step environment for a betting policy:
//
//	chart, _ := strategy.DefaultChart()
//	e, _ := blackjack.New(blackjack.Config{NumDecks: 8, BetLevels: 10, Chart: chart})
//	obs := e.Reset()
//	res, err := e.Step(policy.Bet(obs))
//
// # Counting
//
// Every revealed card feeds a Hi-Lo running count. The dealer's hole card
// is counted only after all player hands have finished. The true count is
// refreshed once at the end of each round and is what the next
// observation reports.
//
// # Shoe
//
// At the start of each round a shoe with fewer than a quarter of its cards
// left is rebuilt and the count zeroed. A draw from an empty shoe mid-round
// also rebuilds it, but leaves the count alone.
//
// # Determinism
//
// Pass a seeded Shuffler (see randutil) or a pre-stacked deck.Shoe for
// reproducible rounds.
package blackjack
