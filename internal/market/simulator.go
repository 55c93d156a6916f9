// Package market drives crypto and stock prices. Real-world coins
// follow an external price feed; synthetic assets follow biased random
// walks steered by a slowly resampled market trend.
package market

import (
	"context"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"aurora/internal/game"
)

// Trend is the prevailing market direction for synthetic assets.
type Trend string

const (
	TrendBull   Trend = "bull"
	TrendBear   Trend = "bear"
	TrendStable Trend = "stable"
)

const (
	// cryptoVolatility is the synthetic coin walk width.
	cryptoVolatility = 0.05
	// trendBias shifts the walk by this fraction of volatility.
	trendBias = 0.75
	// cryptoFloor and stockFloor keep prices tradable.
	cryptoFloor = 0.01
	stockFloor  = 1.0
	// stockStepScale bounds per-tick stock movement.
	stockStepScale = 0.03
)

// Exchange is the slice of the economy engine the simulator prices
// against.
type Exchange interface {
	CryptoQuotes() map[string]float64
	StockQuotes() map[string]float64
	SetCryptoQuote(id string, price float64)
	SetStockQuote(id string, price float64)
}

// PriceFeed fetches spot prices for real-world coins. Implementations
// return an empty map rather than partial garbage when the upstream
// misbehaves.
type PriceFeed interface {
	SimplePrices(ctx context.Context, ids []string) (map[string]float64, error)
}

// CryptoStep walks a synthetic coin price one tick under the given
// trend. The result never drops below the crypto floor.
func CryptoStep(rnd *mathrand.Rand, price, volatility float64, trend Trend) float64 {
	delta := (rnd.Float64() - 0.5) * volatility
	switch trend {
	case TrendBull:
		delta += trendBias * volatility
	case TrendBear:
		delta -= trendBias * volatility
	}
	next := price * (1 + delta)
	if next < cryptoFloor {
		next = cryptoFloor
	}
	return next
}

// StockStep walks a stock price one tick with a slight upward drift.
// The result never drops below the stock floor.
func StockStep(rnd *mathrand.Rand, price float64) float64 {
	delta := (rnd.Float64() - 0.49) * stockStepScale
	next := price * (1 + delta)
	if next < stockFloor {
		next = stockFloor
	}
	return next
}

// Simulator owns the three market cadences: crypto repricing, stock
// repricing and trend resampling.
type Simulator struct {
	exchange Exchange
	feed     PriceFeed
	log      *slog.Logger
	rand     *mathrand.Rand

	cryptoEvery time.Duration
	stockEvery  time.Duration
	trendEvery  time.Duration

	mu    sync.Mutex
	trend Trend
}

// NewSimulator builds a simulator starting in a stable trend. A nil
// logger falls back to the default.
func NewSimulator(exchange Exchange, feed PriceFeed, logger *slog.Logger, cryptoEvery, stockEvery, trendEvery time.Duration) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		exchange:    exchange,
		feed:        feed,
		log:         logger,
		rand:        mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		cryptoEvery: cryptoEvery,
		stockEvery:  stockEvery,
		trendEvery:  trendEvery,
		trend:       TrendStable,
	}
}

// Trend reports the current market direction.
func (s *Simulator) Trend() Trend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trend
}

// Run drives the cadences until ctx is canceled. Blocks. Price ticks
// fire once immediately so real-world coins are priced right after
// boot instead of waiting out the first interval; the trend keeps its
// stable start until its first resample.
func (s *Simulator) Run(ctx context.Context) {
	var wg sync.WaitGroup
	loops := []struct {
		every     time.Duration
		immediate bool
		tick      func(context.Context)
	}{
		{s.cryptoEvery, true, s.TickCrypto},
		{s.stockEvery, true, func(context.Context) { s.TickStocks() }},
		{s.trendEvery, false, func(context.Context) { s.ResampleTrend() }},
	}
	for _, l := range loops {
		wg.Add(1)
		go func(every time.Duration, immediate bool, tick func(context.Context)) {
			defer wg.Done()
			if immediate {
				tick(ctx)
			}
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					tick(ctx)
				}
			}
		}(l.every, l.immediate, l.tick)
	}
	s.log.Info("market simulator started",
		"crypto_every", s.cryptoEvery.String(),
		"stock_every", s.stockEvery.String(),
		"trend_every", s.trendEvery.String())
	<-ctx.Done()
	wg.Wait()
	s.log.Info("market simulator stopped")
}

// TickCrypto reprices every catalog coin once: feed prices win for
// real-world coins, synthetic coins walk, and coins with no feed quote
// this round keep their price.
func (s *Simulator) TickCrypto(ctx context.Context) {
	quoted, err := s.feed.SimplePrices(ctx, game.FeedCryptoIDs())
	if err != nil {
		s.log.Warn("price feed fetch failed", "err", err)
		quoted = map[string]float64{}
	}
	trend := s.Trend()
	current := s.exchange.CryptoQuotes()
	for _, c := range game.Cryptos {
		if price, ok := quoted[c.ID]; ok && price > 0 {
			s.exchange.SetCryptoQuote(c.ID, price)
			continue
		}
		if !c.Synthetic {
			continue
		}
		price := current[c.ID]
		if price <= 0 {
			price = c.SeedPrice
		}
		s.exchange.SetCryptoQuote(c.ID, CryptoStep(s.rand, price, cryptoVolatility, trend))
	}
}

// TickStocks walks every listed stock one step.
func (s *Simulator) TickStocks() {
	current := s.exchange.StockQuotes()
	for _, st := range game.Stocks {
		price := current[st.ID]
		if price <= 0 {
			price = st.BasePrice
		}
		s.exchange.SetStockQuote(st.ID, StockStep(s.rand, price))
	}
}

// ResampleTrend redraws the market direction uniformly.
func (s *Simulator) ResampleTrend() Trend {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.rand.Intn(3) {
	case 0:
		s.trend = TrendBull
	case 1:
		s.trend = TrendBear
	default:
		s.trend = TrendStable
	}
	s.log.Debug("market trend resampled", "trend", string(s.trend))
	return s.trend
}
