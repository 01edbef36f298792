package blackjack

import "errors"

var (
	// ErrBetOutOfRange is returned when a bet action index is outside
	// [0, BetLevels). It is a caller contract violation, never clamped.
	ErrBetOutOfRange = errors.New("bet action out of range")

	// ErrRoundNotDealt is returned by Step when no round is in progress
	ErrRoundNotDealt = errors.New("no round dealt, call Reset first")

	// ErrNoChart is returned when an engine is built without a strategy chart
	ErrNoChart = errors.New("strategy chart is required")
)
