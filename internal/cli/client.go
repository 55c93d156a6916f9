package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) State(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", nil, &out)
	return out, err
}

func (c *Client) Click(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/click", nil, &out)
	return out, err
}

func (c *Client) UpgradeClick(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/click/upgrade", nil, &out)
	return out, err
}

func (c *Client) ListProperties(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/properties", nil, &out)
	return out, err
}

func (c *Client) BuyProperty(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/properties/"+url.PathEscape(id)+"/buy", nil, &out)
	return out, err
}

func (c *Client) ListAssets(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/assets", nil, &out)
	return out, err
}

func (c *Client) BuyAsset(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/assets/"+url.PathEscape(id)+"/buy", nil, &out)
	return out, err
}

func (c *Client) ListCrypto(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/crypto", nil, &out)
	return out, err
}

func (c *Client) CryptoDetail(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/crypto/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) TradeCrypto(ctx context.Context, id, side string, amount float64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/crypto/"+url.PathEscape(id)+"/"+side, map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) ListStocks(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/stocks", nil, &out)
	return out, err
}

func (c *Client) StockDetail(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/stocks/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) TradeStock(ctx context.Context, id, side string, amount float64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/stocks/"+url.PathEscape(id)+"/"+side, map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) Prestige(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/prestige", nil, &out)
	return out, err
}

func (c *Client) ClaimDailyReward(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/daily-reward/claim", nil, &out)
	return out, err
}

func (c *Client) Advice(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/advice", nil, &out)
	return out, err
}

func (c *Client) AckOffline(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/offline/ack", nil, &out)
	return out, err
}

func (c *Client) MinesState(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/casino/mines", nil, &out)
	return out, err
}

func (c *Client) MinesStart(ctx context.Context, bet float64, mines int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/mines/start", map[string]any{
		"bet":   bet,
		"mines": mines,
	}, &out)
	return out, err
}

func (c *Client) MinesReveal(ctx context.Context, index int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/mines/reveal", map[string]any{
		"index": index,
	}, &out)
	return out, err
}

func (c *Client) MinesCashOut(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/mines/cashout", nil, &out)
	return out, err
}

func (c *Client) CrashState(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/casino/crash", nil, &out)
	return out, err
}

func (c *Client) CrashStart(ctx context.Context, bet float64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/crash/start", map[string]any{
		"bet": bet,
	}, &out)
	return out, err
}

func (c *Client) CrashCashOut(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/crash/cashout", nil, &out)
	return out, err
}

func (c *Client) BlackjackState(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/casino/blackjack", nil, &out)
	return out, err
}

func (c *Client) BlackjackDeal(ctx context.Context, bet float64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/blackjack/deal", map[string]any{
		"bet": bet,
	}, &out)
	return out, err
}

func (c *Client) BlackjackHit(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/blackjack/hit", nil, &out)
	return out, err
}

func (c *Client) BlackjackStand(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/blackjack/stand", nil, &out)
	return out, err
}

func (c *Client) CoinFlipState(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/casino/coinflip", nil, &out)
	return out, err
}

func (c *Client) CoinFlip(ctx context.Context, bet float64, choice string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/casino/coinflip/flip", map[string]any{
		"bet":    bet,
		"choice": choice,
	}, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
