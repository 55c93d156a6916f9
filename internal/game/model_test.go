package game

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9*math.Max(1, math.Abs(b))
}

func TestPropertyCost(t *testing.T) {
	tests := []struct {
		base  float64
		level int
		want  float64
	}{
		{base: 1_000, level: 0, want: 1_000},
		{base: 1_000, level: 1, want: 1_150},
		{base: 1_000, level: 2, want: 1_322.5},
		{base: 25_000, level: 0, want: 25_000},
	}
	for _, tc := range tests {
		got := PropertyCost(tc.base, tc.level)
		if !almostEqual(got, tc.want) {
			t.Fatalf("PropertyCost(%v, %d) = %v, want %v", tc.base, tc.level, got, tc.want)
		}
	}
}

func TestPropertyIncome(t *testing.T) {
	if got := PropertyIncome(20, 0); got != 0 {
		t.Fatalf("level 0 income = %v, want 0", got)
	}
	if got := PropertyIncome(20, 1); !almostEqual(got, 20) {
		t.Fatalf("level 1 income = %v, want 20", got)
	}
	want := 20 * 3 * math.Pow(1.05, 2)
	if got := PropertyIncome(20, 3); !almostEqual(got, want) {
		t.Fatalf("level 3 income = %v, want %v", got, want)
	}
}

func TestPropertyValue(t *testing.T) {
	if got := PropertyValue(1_000, 0); got != 0 {
		t.Fatalf("unowned value = %v, want 0", got)
	}
	if got := PropertyValue(1_000, 1); !almostEqual(got, 1_000) {
		t.Fatalf("level 1 value = %v, want 1000", got)
	}
	if got := PropertyValue(1_000, 4); !almostEqual(got, 1_000*math.Pow(1.15, 3)) {
		t.Fatalf("level 4 value = %v", got)
	}
}

func TestPrestigeBonus(t *testing.T) {
	if got := PrestigeBonus(0); got != 1 {
		t.Fatalf("bonus at level 0 = %v, want 1", got)
	}
	if got := PrestigeBonus(3); got != 4 {
		t.Fatalf("bonus at level 3 = %v, want 4", got)
	}
}

func TestGlobalMultiplier(t *testing.T) {
	got := GlobalMultiplier(1, 0.15)
	want := 2 * 1.15
	if !almostEqual(got, want) {
		t.Fatalf("GlobalMultiplier = %v, want %v", got, want)
	}
}

func TestDailyReward(t *testing.T) {
	if got := DailyReward(1, 0); got != 500 {
		t.Fatalf("day 1 reward = %v, want 500", got)
	}
	if got := DailyReward(3, 2); got != 4_500 {
		t.Fatalf("day 3 tycoon 2 reward = %v, want 4500", got)
	}
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, 6, 1, 0, 5, 0, 0, time.Local)
	night := time.Date(2025, 6, 1, 23, 55, 0, 0, time.Local)
	nextDay := time.Date(2025, 6, 2, 0, 5, 0, 0, time.Local)

	if !sameCalendarDay(morning, night) {
		t.Fatalf("expected same calendar day for %v and %v", morning, night)
	}
	if sameCalendarDay(night, nextDay) {
		t.Fatalf("expected different calendar days for %v and %v", night, nextDay)
	}
}
