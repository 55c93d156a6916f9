// Package casino holds the four wagering mini-games. Each game is an
// independent state machine with its own RNG; the only shared state it
// touches is player cash, via the Bank primitives. Cash leaves the bank
// exactly once when a valid bet is accepted and returns exactly once at
// settlement.
//
// Invalid input (non-positive bet, unaffordable bet, wrong phase) never
// errors: the operation leaves the machine where it was.
package casino

import (
	mathrand "math/rand"
	"time"

	"aurora/internal/game"
)

// Bank is the slice of the economy engine the games settle through.
// Debit is affordability-gated, so the games never see the balance.
type Bank interface {
	Debit(amount float64) bool
	Credit(amount float64)
	LogActivity(text string, kind game.ActivityKind)
}

func newRand(rnd *mathrand.Rand) *mathrand.Rand {
	if rnd != nil {
		return rnd
	}
	return mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
}
