package casino

import (
	"math"
	"testing"
	"time"

	"aurora/internal/game"
)

func TestCrashStartValidation(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	c := NewCrash(bank, testRand())
	t0 := time.Now()

	if c.Start(CrashMinBet-1, t0) {
		t.Fatalf("accepted bet below table minimum")
	}
	if c.Start(5_000, t0) {
		t.Fatalf("accepted unaffordable bet")
	}
	if !c.Start(100, t0) {
		t.Fatalf("valid start rejected")
	}
	if bank.cash != 900 {
		t.Fatalf("bet not debited: %v", bank.cash)
	}
	if c.crashPoint < 1.01 {
		t.Fatalf("crash point %v below minimum", c.crashPoint)
	}
	if c.Start(100, t0) {
		t.Fatalf("started over a running round")
	}
}

func TestCrashCashOutBeforeBust(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	c := NewCrash(bank, testRand())
	t0 := time.Now()
	if !c.Start(100, t0) {
		t.Fatalf("start failed")
	}
	c.crashPoint = 2.0

	at := t0.Add(10 * time.Second)
	wantMult := math.Pow(crashGrowth, 10) // ~1.48, still under the bust
	if !c.CashOut(at) {
		t.Fatalf("cash out rejected before bust")
	}
	want := 900 + 100*wantMult
	if math.Abs(bank.cash-want) > 1e-9 {
		t.Fatalf("cash = %v, want %v", bank.cash, want)
	}
	if c.CashOut(at.Add(time.Second)) {
		t.Fatalf("second cash out accepted")
	}

	// The curve still busts; a cashed-out round logs no loss.
	view := c.State(t0.Add(time.Minute))
	if view.Phase != CrashCrashed {
		t.Fatalf("phase = %q, want crashed", view.Phase)
	}
	if got := bank.countKind(game.KindLoss); got != 0 {
		t.Fatalf("loss logged for a cashed-out round")
	}
	if got := bank.countKind(game.KindGain); got != 1 {
		t.Fatalf("gain activities = %d, want 1", got)
	}
}

func TestCrashLateCashOutLoses(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	c := NewCrash(bank, testRand())
	t0 := time.Now()
	if !c.Start(100, t0) {
		t.Fatalf("start failed")
	}
	c.crashPoint = 1.5

	if c.CashOut(t0.Add(time.Minute)) {
		t.Fatalf("cash out accepted after the bust point")
	}
	if bank.cash != 900 {
		t.Fatalf("cash = %v, want stake lost", bank.cash)
	}
	if got := bank.countKind(game.KindLoss); got != 1 {
		t.Fatalf("loss activities = %d, want 1", got)
	}

	view := c.State(t0.Add(time.Minute))
	if view.CrashPoint != 1.5 {
		t.Fatalf("crash point not revealed after bust: %v", view.CrashPoint)
	}
}

func TestCrashStartResolvesBustedRound(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	c := NewCrash(bank, testRand())
	t0 := time.Now()
	if !c.Start(100, t0) {
		t.Fatalf("start failed")
	}
	c.crashPoint = 1.5

	// Nobody observed the bust; a fresh start resolves it first.
	if !c.Start(100, t0.Add(time.Minute)) {
		t.Fatalf("start rejected after the curve already busted")
	}
	if bank.cash != 800 {
		t.Fatalf("cash = %v, want both stakes debited", bank.cash)
	}
	if got := bank.countKind(game.KindLoss); got != 1 {
		t.Fatalf("loss activities = %d, want 1 for the busted round", got)
	}
	if c.phase != CrashRunning {
		t.Fatalf("phase = %q, want a fresh running round", c.phase)
	}
}

func TestCrashStateHidesCrashPointWhileRunning(t *testing.T) {
	bank := &fakeBank{cash: 1_000}
	c := NewCrash(bank, testRand())
	t0 := time.Now()
	if !c.Start(100, t0) {
		t.Fatalf("start failed")
	}
	c.crashPoint = 1000 // keep the round running

	view := c.State(t0.Add(time.Second))
	if view.Phase != CrashRunning {
		t.Fatalf("phase = %q, want running", view.Phase)
	}
	if view.CrashPoint != 0 {
		t.Fatalf("crash point leaked mid-round: %v", view.CrashPoint)
	}
	if view.Multiplier <= 1 {
		t.Fatalf("multiplier = %v, want growth after a second", view.Multiplier)
	}
}
