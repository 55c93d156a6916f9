package game

// Dashboard bundles the player state with the derived figures the HTTP
// surface and CLI render.
type Dashboard struct {
	State           PlayerState `json:"state"`
	NetWorth        float64     `json:"net_worth"`
	IncomePerSecond float64     `json:"income_per_second"`
	ClickValue      float64     `json:"click_value"`
	OfflineGains    float64     `json:"offline_gains"`
}

// PriceView is one tradable asset as listed by the API.
type PriceView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Ticker       string    `json:"ticker"`
	Price        float64   `json:"price"`
	Amount       float64   `json:"amount"`
	Value        float64   `json:"value"`
	PriceHistory []float64 `json:"price_history,omitempty"`
}

// CryptoViews lists every catalog coin with the holding's current figures.
func (e *Engine) CryptoViews(withHistory bool) []PriceView {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]PriceView, 0, len(Cryptos))
	for _, c := range Cryptos {
		h := e.state.CryptoHoldings[c.ID]
		v := PriceView{ID: c.ID, Name: c.Name, Ticker: c.Ticker, Price: h.Price, Amount: h.Amount, Value: h.Value}
		if withHistory {
			v.PriceHistory = append([]float64(nil), h.PriceHistory...)
		}
		out = append(out, v)
	}
	return out
}

func (e *Engine) StockViews(withHistory bool) []PriceView {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]PriceView, 0, len(Stocks))
	for _, s := range Stocks {
		h := e.state.StockHoldings[s.ID]
		v := PriceView{ID: s.ID, Name: s.Name, Ticker: s.Ticker, Price: h.Price, Amount: h.Amount, Value: h.Value}
		if withHistory {
			v.PriceHistory = append([]float64(nil), h.PriceHistory...)
		}
		out = append(out, v)
	}
	return out
}
