package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aurora/internal/advice"
	"aurora/internal/game"
	"aurora/internal/market"
)

type stubFeed struct{}

func (stubFeed) SimplePrices(context.Context, []string) (map[string]float64, error) {
	return map[string]float64{}, nil
}

func newTestServer() (*Server, *game.Engine) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := game.NewEngine(logger)
	sim := market.NewSimulator(engine, stubFeed{}, logger, time.Minute, 30*time.Second, 5*time.Minute)
	advisor := advice.NewAdvisor("", "", logger)
	return New(logger, engine, sim, advisor), engine
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestClickEarnsCash(t *testing.T) {
	s, engine := newTestServer()
	before := engine.Cash()
	rec := do(t, s, http.MethodPost, "/v1/click", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	out := decode(t, rec)
	if out["earned"].(float64) <= 0 {
		t.Fatalf("earned = %v, want positive", out["earned"])
	}
	if engine.Cash() <= before {
		t.Fatalf("cash did not grow: %v -> %v", before, engine.Cash())
	}
}

func TestTradeMalformedBody(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, http.MethodPost, "/v1/crypto/bitcoin/buy", `{"amount": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	rec = do(t, s, http.MethodPost, "/v1/crypto/bitcoin/buy", `{"amount": 1, "bogus": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field accepted: status = %d", rec.Code)
	}
}

func TestTradeNoOpReturnsState(t *testing.T) {
	s, _ := newTestServer()
	// Bitcoin starts unpriced, so the buy is a silent no-op.
	rec := do(t, s, http.MethodPost, "/v1/crypto/bitcoin/buy", `{"amount": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	out := decode(t, rec)
	if out["done"].(bool) {
		t.Fatalf("unpriced buy reported done")
	}
	if _, ok := out["dashboard"]; !ok {
		t.Fatalf("no dashboard in trade response")
	}
}

func TestDetailUnknownID(t *testing.T) {
	s, _ := newTestServer()
	if rec := do(t, s, http.MethodGet, "/v1/crypto/atlantis", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown crypto: status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/v1/stocks/atlantis", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown stock: status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/v1/stocks/nimbus", ""); rec.Code != http.StatusOK {
		t.Fatalf("known stock: status = %d, want 200", rec.Code)
	}
}

func TestAdviceOfflineWithoutKey(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/v1/advice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	out := decode(t, rec)
	line, _ := out["advice"].(string)
	if !strings.Contains(line, "offline") {
		t.Fatalf("advice = %q, want the offline fallback", line)
	}
}

func TestCoinFlipRoundOverHTTP(t *testing.T) {
	s, engine := newTestServer()
	engine.Credit(1_000)
	before := engine.Cash()

	rec := do(t, s, http.MethodPost, "/v1/casino/coinflip/flip", `{"bet": 100, "choice": "HEADS"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	out := decode(t, rec)
	gv := out["game"].(map[string]any)
	if gv["phase"].(string) != "flipping" {
		t.Fatalf("phase = %v, want flipping right after the bet", gv["phase"])
	}
	if engine.Cash() != before-100 {
		t.Fatalf("cash = %v, want bet debited", engine.Cash())
	}
	if _, leaked := gv["result"]; leaked {
		t.Fatalf("result leaked before the reveal")
	}
}

func TestMinesStartOverHTTP(t *testing.T) {
	s, engine := newTestServer()
	engine.Credit(1_000)

	rec := do(t, s, http.MethodPost, "/v1/casino/mines/start", `{"bet": 100, "mines": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	out := decode(t, rec)
	gv := out["game"].(map[string]any)
	if gv["phase"].(string) != "playing" {
		t.Fatalf("phase = %v, want playing", gv["phase"])
	}
	cells := gv["cells"].([]any)
	for i, c := range cells {
		if c.(string) != "hidden" {
			t.Fatalf("cell %d leaked as %v", i, c)
		}
	}
}
