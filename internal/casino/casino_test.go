package casino

import (
	mathrand "math/rand"

	"aurora/internal/game"
)

// fakeBank is a minimal in-memory Bank for exercising settlement.
type fakeBank struct {
	cash       float64
	activities []game.Activity
}

func (b *fakeBank) Debit(amount float64) bool {
	if amount <= 0 || b.cash < amount {
		return false
	}
	b.cash -= amount
	return true
}

func (b *fakeBank) Credit(amount float64) {
	if amount > 0 {
		b.cash += amount
	}
}

func (b *fakeBank) LogActivity(text string, kind game.ActivityKind) {
	b.activities = append(b.activities, game.Activity{Text: text, Kind: kind})
}

func (b *fakeBank) countKind(kind game.ActivityKind) int {
	n := 0
	for _, a := range b.activities {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

func testRand() *mathrand.Rand {
	return mathrand.New(mathrand.NewSource(42))
}
