package game

import (
	"testing"
	"time"
)

func TestApplyOfflineProgress(t *testing.T) {
	e := newTestEngine()
	e.state.Cash = 2_000
	if !e.BuyProperty("apt") {
		t.Fatalf("apt purchase failed")
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.state.LastUpdated = now.Add(-time.Hour)
	setClock(e, now)

	start := e.Cash()
	earned := e.ApplyOfflineProgress()

	want := e.IncomePerSecond() * 3600
	if !almostEqual(earned, want) {
		t.Fatalf("offline earnings = %v, want %v", earned, want)
	}
	if !almostEqual(e.Cash()-start, earned) {
		t.Fatalf("cash delta %v does not match earnings %v", e.Cash()-start, earned)
	}
	if !almostEqual(e.OfflineGains(), earned) {
		t.Fatalf("offline gains = %v, want %v", e.OfflineGains(), earned)
	}
	if !e.state.LastUpdated.Equal(now) {
		t.Fatalf("lastUpdated not refreshed: %v", e.state.LastUpdated)
	}

	// One hour of ticks credits the same amount as the closed form.
	tickSum := 0.0
	perTick := e.IncomePerSecond() / TicksPerSecond
	for i := 0; i < 3600*TicksPerSecond; i++ {
		tickSum += perTick
	}
	if !almostEqual(tickSum, earned) {
		t.Fatalf("tick sum %v does not match closed form %v", tickSum, earned)
	}
}

func TestApplyOfflineProgressSkipsShortGaps(t *testing.T) {
	e := newTestEngine()
	e.state.Cash = 2_000
	e.BuyProperty("apt")

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.state.LastUpdated = now.Add(-5 * time.Second)
	setClock(e, now)

	if earned := e.ApplyOfflineProgress(); earned != 0 {
		t.Fatalf("short gap earned %v, want 0", earned)
	}
	if e.OfflineGains() != 0 {
		t.Fatalf("offline gains set for short gap")
	}
	if !e.state.LastUpdated.Equal(now) {
		t.Fatalf("lastUpdated not refreshed on skip")
	}
}

func TestApplyOfflineProgressNoIncome(t *testing.T) {
	e := newTestEngine()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.state.LastUpdated = now.Add(-time.Hour)
	setClock(e, now)

	if earned := e.ApplyOfflineProgress(); earned != 0 {
		t.Fatalf("earned %v with no income sources", earned)
	}
}

func TestAckOfflineGains(t *testing.T) {
	e := newTestEngine()
	e.offlineGains = 123
	e.AckOfflineGains()
	if e.OfflineGains() != 0 {
		t.Fatalf("offline gains not cleared")
	}
}
