package game

import "time"

const (
	TickRate       = 100 * time.Millisecond
	TicksPerSecond = 10

	PriceHistoryLen = 30
	ActivityFeedCap = 50

	StartingCash = 10.0

	PrestigeRequirement = 10e9 // $10 Billion
	PrestigeRate        = 1.0  // +100% income per tycoon level

	DailyRewardBase = 500.0

	// Reloads faster than this are not treated as an offline session.
	OfflineMinElapsed = 10 * time.Second
)

type ClickTier struct {
	Level      int     `json:"level"`
	Cost       float64 `json:"cost"`
	ClickValue float64 `json:"click_value"`
}

type Property struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	BaseCost   float64 `json:"base_cost"`
	BaseIncome float64 `json:"base_income"`
}

type Crypto struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	// Synthetic coins never appear in the external feed and evolve by
	// random walk instead.
	Synthetic bool    `json:"synthetic"`
	Volatile  bool    `json:"volatile"`
	SeedPrice float64 `json:"seed_price"`
}

type Stock struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Ticker    string  `json:"ticker"`
	BasePrice float64 `json:"base_price"`
}

type LuxuryAsset struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Cost           float64 `json:"cost"`
	FlexMultiplier float64 `json:"flex_multiplier"`
}

var ClickTiers = []ClickTier{
	{Level: 1, Cost: 0, ClickValue: 1},
	{Level: 2, Cost: 50, ClickValue: 2},
	{Level: 3, Cost: 250, ClickValue: 5},
	{Level: 4, Cost: 1_000, ClickValue: 10},
	{Level: 5, Cost: 5_000, ClickValue: 25},
	{Level: 6, Cost: 20_000, ClickValue: 75},
	{Level: 7, Cost: 100_000, ClickValue: 250},
	{Level: 8, Cost: 500_000, ClickValue: 1_000},
	{Level: 9, Cost: 2.5e6, ClickValue: 5_000},
	{Level: 10, Cost: 10e6, ClickValue: 25_000},
}

var Properties = []Property{
	{ID: "apt", Name: "Studio Apartment", Location: "City Center", BaseCost: 1_000, BaseIncome: 1},
	{ID: "house", Name: "Suburban House", Location: "Maple Street", BaseCost: 25_000, BaseIncome: 20},
	{ID: "office", Name: "Office Building", Location: "Financial District", BaseCost: 500_000, BaseIncome: 350},
	{ID: "skyscraper", Name: "Skyscraper", Location: "Downtown", BaseCost: 10e6, BaseIncome: 5_000},
	{ID: "island", Name: "Private Island", Location: "The Tropics", BaseCost: 500e6, BaseIncome: 150_000},
}

var Cryptos = []Crypto{
	{ID: "bitcoin", Name: "Bitcoin", Ticker: "BTC", Volatile: true},
	{ID: "ethereum", Name: "Ethereum", Ticker: "ETH", Volatile: true},
	{ID: "dogecoin", Name: "Dogecoin", Ticker: "DOGE", Volatile: true},
	{ID: "tycooncoin", Name: "TycoonCoin", Ticker: "TYC", Synthetic: true, Volatile: true, SeedPrice: 1},
}

var Stocks = []Stock{
	{ID: "aurare", Name: "Aurora Real Estate", Ticker: "AURARE", BasePrice: 85},
	{ID: "nimbus", Name: "Nimbus Labs", Ticker: "NIMBUS", BasePrice: 95},
	{ID: "cobolt", Name: "Cobalt Dynamics", Ticker: "COBOLT", BasePrice: 130},
	{ID: "vectra", Name: "Vectra AI", Ticker: "VECTRA", BasePrice: 165},
	{ID: "zenith", Name: "Zenith Retail", Ticker: "ZENITH", BasePrice: 75},
	{ID: "fusion", Name: "Fusion Grid", Ticker: "FUSION", BasePrice: 110},
}

var LuxuryAssets = []LuxuryAsset{
	{ID: "supercar", Name: "Supercar", Cost: 1e6, FlexMultiplier: 0.05},
	{ID: "yacht", Name: "Mega Yacht", Cost: 25e6, FlexMultiplier: 0.10},
	{ID: "jet", Name: "Private Jet", Cost: 100e6, FlexMultiplier: 0.15},
	{ID: "masterpiece", Name: "Art Masterpiece", Cost: 1e9, FlexMultiplier: 0.20},
	{ID: "space", Name: "Space Mission", Cost: 10e9, FlexMultiplier: 0.50},
}

func PropertyByID(id string) (Property, bool) {
	for _, p := range Properties {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

func CryptoByID(id string) (Crypto, bool) {
	for _, c := range Cryptos {
		if c.ID == id {
			return c, true
		}
	}
	return Crypto{}, false
}

func StockByID(id string) (Stock, bool) {
	for _, s := range Stocks {
		if s.ID == id {
			return s, true
		}
	}
	return Stock{}, false
}

func LuxuryAssetByID(id string) (LuxuryAsset, bool) {
	for _, a := range LuxuryAssets {
		if a.ID == id {
			return a, true
		}
	}
	return LuxuryAsset{}, false
}

// FeedCryptoIDs returns the catalog ids the external price feed is asked
// for, i.e. every non-synthetic coin.
func FeedCryptoIDs() []string {
	ids := make([]string, 0, len(Cryptos))
	for _, c := range Cryptos {
		if !c.Synthetic {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
