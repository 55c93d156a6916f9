package market

import (
	"context"
	"errors"
	"io"
	"log/slog"
	mathrand "math/rand"
	"testing"
	"time"

	"aurora/internal/game"
)

type stubFeed struct {
	prices map[string]float64
	err    error
}

func (f *stubFeed) SimplePrices(context.Context, []string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}

func newTestSimulator(feed PriceFeed) (*Simulator, *game.Engine) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := game.NewEngine(logger)
	sim := NewSimulator(engine, feed, logger, time.Minute, 30*time.Second, 5*time.Minute)
	return sim, engine
}

func TestCryptoStepFloor(t *testing.T) {
	rnd := mathrand.New(mathrand.NewSource(1))
	price := 0.011
	for i := 0; i < 1_000; i++ {
		price = CryptoStep(rnd, price, cryptoVolatility, TrendBear)
		if price < cryptoFloor {
			t.Fatalf("price %v fell below floor %v", price, cryptoFloor)
		}
	}
}

func TestCryptoStepTrendBias(t *testing.T) {
	rnd := mathrand.New(mathrand.NewSource(2))
	// With bias 0.75v and walk width v/2, a bull step always gains and a
	// bear step always loses.
	for i := 0; i < 1_000; i++ {
		if got := CryptoStep(rnd, 100, cryptoVolatility, TrendBull); got <= 100 {
			t.Fatalf("bull step lost value: %v", got)
		}
		if got := CryptoStep(rnd, 100, cryptoVolatility, TrendBear); got >= 100 {
			t.Fatalf("bear step gained value: %v", got)
		}
	}
}

func TestStockStepFloor(t *testing.T) {
	rnd := mathrand.New(mathrand.NewSource(3))
	price := 1.01
	for i := 0; i < 1_000; i++ {
		price = StockStep(rnd, price)
		if price < stockFloor {
			t.Fatalf("price %v fell below floor %v", price, stockFloor)
		}
	}
}

func TestTickCryptoFeedWins(t *testing.T) {
	sim, engine := newTestSimulator(&stubFeed{prices: map[string]float64{
		"bitcoin":  65_000,
		"ethereum": 3_200,
	}})

	sim.TickCrypto(context.Background())
	quotes := engine.CryptoQuotes()

	if quotes["bitcoin"] != 65_000 {
		t.Fatalf("bitcoin = %v, want feed price", quotes["bitcoin"])
	}
	if quotes["ethereum"] != 3_200 {
		t.Fatalf("ethereum = %v, want feed price", quotes["ethereum"])
	}
	// Missing from the feed, not synthetic: unchanged at its unpriced zero.
	if quotes["dogecoin"] != 0 {
		t.Fatalf("dogecoin = %v, want 0", quotes["dogecoin"])
	}
	// Synthetic coin walks from its seed price.
	if quotes["tycooncoin"] <= 0 {
		t.Fatalf("tycooncoin = %v, want walked price > 0", quotes["tycooncoin"])
	}
}

func TestTickCryptoFeedFailureKeepsRealPrices(t *testing.T) {
	sim, engine := newTestSimulator(&stubFeed{prices: map[string]float64{"bitcoin": 65_000}})
	sim.TickCrypto(context.Background())

	sim.feed = &stubFeed{err: errors.New("rate limited")}
	before := engine.CryptoQuotes()
	sim.TickCrypto(context.Background())
	after := engine.CryptoQuotes()

	if after["bitcoin"] != before["bitcoin"] {
		t.Fatalf("bitcoin moved on feed failure: %v -> %v", before["bitcoin"], after["bitcoin"])
	}
	if after["tycooncoin"] == before["tycooncoin"] {
		t.Fatalf("synthetic coin did not walk on feed failure")
	}
}

func TestTickStocks(t *testing.T) {
	sim, engine := newTestSimulator(&stubFeed{})
	before := engine.StockQuotes()
	sim.TickStocks()
	after := engine.StockQuotes()

	moved := false
	for id, price := range after {
		if price < stockFloor {
			t.Fatalf("%s = %v, below floor", id, price)
		}
		if price != before[id] {
			moved = true
		}
	}
	if !moved {
		t.Fatalf("no stock moved after a tick")
	}

	for _, v := range engine.StockViews(true) {
		if len(v.PriceHistory) != game.PriceHistoryLen {
			t.Fatalf("%s history length = %d, want %d", v.ID, len(v.PriceHistory), game.PriceHistoryLen)
		}
	}
}

func TestResampleTrend(t *testing.T) {
	sim, _ := newTestSimulator(&stubFeed{})
	seen := map[Trend]bool{}
	for i := 0; i < 100; i++ {
		trend := sim.ResampleTrend()
		switch trend {
		case TrendBull, TrendBear, TrendStable:
			seen[trend] = true
		default:
			t.Fatalf("unexpected trend %q", trend)
		}
		if sim.Trend() != trend {
			t.Fatalf("Trend() = %q, want %q", sim.Trend(), trend)
		}
	}
	if len(seen) < 2 {
		t.Fatalf("trend never varied across 100 resamples")
	}
}

func TestRunPricesImmediatelyOnStart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := game.NewEngine(logger)
	// Intervals far beyond the test horizon: only the initial ticks can fire.
	sim := NewSimulator(engine, &stubFeed{prices: map[string]float64{"bitcoin": 65_000}},
		logger, time.Hour, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for engine.CryptoQuotes()["bitcoin"] != 65_000 {
		select {
		case <-deadline:
			t.Fatalf("bitcoin unpriced after start: %v", engine.CryptoQuotes()["bitcoin"])
		case <-time.After(10 * time.Millisecond):
		}
	}
	if sim.Trend() != TrendStable {
		t.Fatalf("trend resampled at start: %q", sim.Trend())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sim, _ := newTestSimulator(&stubFeed{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
