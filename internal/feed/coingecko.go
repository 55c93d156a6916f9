// Package feed fetches real-world crypto spot prices.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// CoinGecko fetches USD spot prices from the CoinGecko simple-price
// endpoint.
type CoinGecko struct {
	BaseURL string
	HTTP    *http.Client
}

// NewCoinGecko builds a client against baseURL, or the public API when
// empty.
func NewCoinGecko(baseURL string) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CoinGecko{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SimplePrices fetches USD prices for the given coin ids in one call.
// Coins missing from the response are simply absent from the map.
func (c *CoinGecko) SimplePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("coingecko status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var decoded map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(decoded))
	for id, entry := range decoded {
		if entry.USD > 0 {
			out[id] = entry.USD
		}
	}
	return out, nil
}
