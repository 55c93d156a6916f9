package casino

import (
	"math"
	"testing"

	"aurora/internal/game"
)

func TestMinesStartValidation(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	m := NewMines(bank, testRand())

	if m.Start(-5, 5) {
		t.Fatalf("accepted negative bet")
	}
	if m.Start(100, 2) || m.Start(100, 21) {
		t.Fatalf("accepted out-of-range mine count")
	}
	if m.Start(5_000, 5) {
		t.Fatalf("accepted unaffordable bet")
	}
	if bank.cash != 1_000 {
		t.Fatalf("cash moved on rejected starts: %v", bank.cash)
	}

	if !m.Start(100, 5) {
		t.Fatalf("valid start rejected")
	}
	if bank.cash != 900 {
		t.Fatalf("bet not debited: %v", bank.cash)
	}
	mines := 0
	for _, isMine := range m.grid {
		if isMine {
			mines++
		}
	}
	if mines != 5 {
		t.Fatalf("placed %d mines, want 5", mines)
	}
}

func TestMinesRevealAndCashOut(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	m := NewMines(bank, testRand())
	if !m.Start(100, 5) {
		t.Fatalf("start failed")
	}
	// Fix the board: a single known mine at cell 0.
	m.grid = [MinesGridSize]bool{}
	m.grid[0] = true
	m.mineCount = 5

	if m.CashOut() {
		t.Fatalf("cashed out with no gems revealed")
	}

	if !m.Reveal(1) {
		t.Fatalf("gem reveal rejected")
	}
	wantMult := 1 + 5.0/25.0
	if math.Abs(m.multiplier-wantMult) > 1e-12 {
		t.Fatalf("multiplier = %v, want %v", m.multiplier, wantMult)
	}
	if m.Reveal(1) {
		t.Fatalf("re-revealed the same cell")
	}
	if !m.Reveal(2) {
		t.Fatalf("second gem reveal rejected")
	}

	if !m.CashOut() {
		t.Fatalf("cash out rejected")
	}
	want := 900 + 100*wantMult*wantMult
	if math.Abs(bank.cash-want) > 1e-9 {
		t.Fatalf("cash after cashout = %v, want %v", bank.cash, want)
	}
	if m.CashOut() {
		t.Fatalf("double cash out accepted")
	}
	if got := bank.countKind(game.KindGain); got != 1 {
		t.Fatalf("gain activities = %d, want 1", got)
	}
}

func TestMinesHitLosesStake(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	m := NewMines(bank, testRand())
	if !m.Start(100, 5) {
		t.Fatalf("start failed")
	}
	m.grid = [MinesGridSize]bool{}
	m.grid[3] = true

	if !m.Reveal(3) {
		t.Fatalf("mine reveal rejected")
	}
	if m.phase != MinesLost {
		t.Fatalf("phase = %q, want lost", m.phase)
	}
	if bank.cash != 900 {
		t.Fatalf("cash = %v, want bet kept by the house", bank.cash)
	}
	if m.Reveal(4) {
		t.Fatalf("reveal accepted after loss")
	}
	if got := bank.countKind(game.KindLoss); got != 1 {
		t.Fatalf("loss activities = %d, want 1", got)
	}

	view := m.State()
	if view.Cells[3] != "mine" {
		t.Fatalf("lost round does not show the mine: %q", view.Cells[3])
	}
}

func TestMinesStartRejectedMidRound(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	m := NewMines(bank, testRand())
	if !m.Start(100, 5) {
		t.Fatalf("start failed")
	}
	m.grid = [MinesGridSize]bool{}
	m.grid[0] = true
	if !m.Reveal(1) {
		t.Fatalf("reveal failed")
	}

	if m.Start(100, 5) {
		t.Fatalf("restart accepted over a live round")
	}
	if bank.cash != 900 {
		t.Fatalf("cash = %v, rejected restart moved money", bank.cash)
	}
	if m.phase != MinesPlaying || m.gems != 1 {
		t.Fatalf("live round disturbed: phase=%q gems=%d", m.phase, m.gems)
	}

	if !m.CashOut() {
		t.Fatalf("cash out failed")
	}
	if !m.Start(100, 5) {
		t.Fatalf("start after a settled round rejected")
	}
	// Two rounds so far: two bet entries, one outcome for the settled one.
	if got := bank.countKind(game.KindNeutral); got != 2 {
		t.Fatalf("bet activities = %d, want 2", got)
	}
	if got := bank.countKind(game.KindGain); got != 1 {
		t.Fatalf("outcome activities = %d, want 1", got)
	}
}

func TestMinesStateHidesBoardMidRound(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	m := NewMines(bank, testRand())
	if !m.Start(100, 10) {
		t.Fatalf("start failed")
	}
	view := m.State()
	for i, cell := range view.Cells {
		if cell != "hidden" {
			t.Fatalf("cell %d leaked as %q before any reveal", i, cell)
		}
	}
}
