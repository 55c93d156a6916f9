package game

import "time"

type ActivityKind string

const (
	KindGain     ActivityKind = "gain"
	KindLoss     ActivityKind = "loss"
	KindNeutral  ActivityKind = "neutral"
	KindPrestige ActivityKind = "prestige"
)

type Activity struct {
	ID   string       `json:"id"`
	Text string       `json:"text"`
	Kind ActivityKind `json:"kind"`
}

type OwnedProperty struct {
	Level  int     `json:"level"`
	Income float64 `json:"income"`
	Value  float64 `json:"value"`
}

// Holding tracks a position in one tradable asset. Amount is coins for
// crypto and shares for stocks; Value is always Amount times Price.
type Holding struct {
	Amount       float64   `json:"amount"`
	Price        float64   `json:"price"`
	Value        float64   `json:"value"`
	PriceHistory []float64 `json:"price_history"`
}

type OwnedAsset struct {
	ID             string  `json:"id"`
	Value          float64 `json:"value"`
	FlexMultiplier float64 `json:"flex_multiplier"`
}

// PlayerState is the whole persisted game state. It is owned by the
// Engine and only ever mutated through its operations.
type PlayerState struct {
	Cash              float64                  `json:"cash"`
	ClickLevel        int                      `json:"click_level"`
	TycoonLevel       int                      `json:"tycoon_level"`
	Properties        map[string]OwnedProperty `json:"properties"`
	CryptoHoldings    map[string]Holding       `json:"crypto_holdings"`
	StockHoldings     map[string]Holding       `json:"stock_holdings"`
	Assets            map[string]OwnedAsset    `json:"assets"`
	ActivityFeed      []Activity               `json:"activity_feed"`
	DailyRewardStreak int                      `json:"daily_reward_streak"`
	LastDailyReward   time.Time                `json:"last_daily_reward"`
	LastUpdated       time.Time                `json:"last_updated"`
}

// Snapshot is what the persistence adapter stores: the full player state
// plus the wall-clock moment it was taken.
type Snapshot struct {
	PlayerState
	SavedAt time.Time `json:"saved_at"`
}

func seedHistory(price float64) []float64 {
	h := make([]float64, PriceHistoryLen)
	for i := range h {
		h[i] = price
	}
	return h
}

func initialCryptoHoldings() map[string]Holding {
	out := make(map[string]Holding, len(Cryptos))
	for _, c := range Cryptos {
		out[c.ID] = Holding{
			Amount:       0,
			Price:        c.SeedPrice,
			Value:        0,
			PriceHistory: seedHistory(c.SeedPrice),
		}
	}
	return out
}

func initialStockHoldings() map[string]Holding {
	out := make(map[string]Holding, len(Stocks))
	for _, s := range Stocks {
		out[s.ID] = Holding{
			Amount:       0,
			Price:        s.BasePrice,
			Value:        0,
			PriceHistory: seedHistory(s.BasePrice),
		}
	}
	return out
}

func initialState(now time.Time) PlayerState {
	return PlayerState{
		Cash:           StartingCash,
		ClickLevel:     1,
		TycoonLevel:    0,
		Properties:     map[string]OwnedProperty{},
		CryptoHoldings: initialCryptoHoldings(),
		StockHoldings:  initialStockHoldings(),
		Assets:         map[string]OwnedAsset{},
		ActivityFeed:   nil,
		LastUpdated:    now,
	}
}

func copyHoldings(in map[string]Holding) map[string]Holding {
	out := make(map[string]Holding, len(in))
	for id, h := range in {
		h.PriceHistory = append([]float64(nil), h.PriceHistory...)
		out[id] = h
	}
	return out
}

func (s PlayerState) clone() PlayerState {
	out := s
	out.Properties = make(map[string]OwnedProperty, len(s.Properties))
	for id, p := range s.Properties {
		out.Properties[id] = p
	}
	out.CryptoHoldings = copyHoldings(s.CryptoHoldings)
	out.StockHoldings = copyHoldings(s.StockHoldings)
	out.Assets = make(map[string]OwnedAsset, len(s.Assets))
	for id, a := range s.Assets {
		out.Assets[id] = a
	}
	out.ActivityFeed = append([]Activity(nil), s.ActivityFeed...)
	return out
}
