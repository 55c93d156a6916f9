package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"aurora/internal/advice"
	"aurora/internal/casino"
	"aurora/internal/game"
	"aurora/internal/market"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the single-player game over HTTP. Mutating handlers
// return the resulting state; invalid but well-formed actions are
// silent no-ops and come back 200 with the state unchanged.
type Server struct {
	log     *slog.Logger
	engine  *game.Engine
	sim     *market.Simulator
	advisor *advice.Advisor

	mines     *casino.Mines
	crash     *casino.Crash
	blackjack *casino.Blackjack
	coinflip  *casino.CoinFlip

	mux *chi.Mux
}

func New(logger *slog.Logger, engine *game.Engine, sim *market.Simulator, advisor *advice.Advisor) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:       logger,
		engine:    engine,
		sim:       sim,
		advisor:   advisor,
		mines:     casino.NewMines(engine, nil),
		crash:     casino.NewCrash(engine, nil),
		blackjack: casino.NewBlackjack(engine, nil),
		coinflip:  casino.NewCoinFlip(engine, nil),
		mux:       chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/click", s.handleClick)
		r.Post("/click/upgrade", s.handleUpgradeClick)

		r.Get("/properties", s.handleProperties)
		r.Post("/properties/{id}/buy", s.handleBuyProperty)
		r.Get("/assets", s.handleAssets)
		r.Post("/assets/{id}/buy", s.handleBuyAsset)

		r.Get("/crypto", s.handleCryptoList)
		r.Get("/crypto/{id}", s.handleCryptoDetail)
		r.Post("/crypto/{id}/buy", s.handleCryptoBuy)
		r.Post("/crypto/{id}/sell", s.handleCryptoSell)

		r.Get("/stocks", s.handleStockList)
		r.Get("/stocks/{id}", s.handleStockDetail)
		r.Post("/stocks/{id}/buy", s.handleStockBuy)
		r.Post("/stocks/{id}/sell", s.handleStockSell)

		r.Post("/prestige", s.handlePrestige)
		r.Post("/daily-reward/claim", s.handleDailyReward)
		r.Get("/advice", s.handleAdvice)
		r.Post("/offline/ack", s.handleOfflineAck)

		r.Route("/casino", func(r chi.Router) {
			r.Get("/mines", s.handleMinesState)
			r.Post("/mines/start", s.handleMinesStart)
			r.Post("/mines/reveal", s.handleMinesReveal)
			r.Post("/mines/cashout", s.handleMinesCashOut)

			r.Get("/crash", s.handleCrashState)
			r.Post("/crash/start", s.handleCrashStart)
			r.Post("/crash/cashout", s.handleCrashCashOut)

			r.Get("/blackjack", s.handleBlackjackState)
			r.Post("/blackjack/deal", s.handleBlackjackDeal)
			r.Post("/blackjack/hit", s.handleBlackjackHit)
			r.Post("/blackjack/stand", s.handleBlackjackStand)

			r.Get("/coinflip", s.handleCoinFlipState)
			r.Post("/coinflip/flip", s.handleCoinFlipFlip)
		})
	})
}

func (s *Server) dashboard() game.Dashboard {
	return s.engine.Dashboard()
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"dashboard": s.dashboard(),
		"trend":     s.sim.Trend(),
	})
}

func (s *Server) handleClick(w http.ResponseWriter, _ *http.Request) {
	earned := s.engine.Click()
	writeJSON(w, http.StatusOK, map[string]any{
		"earned":    earned,
		"dashboard": s.dashboard(),
	})
}

func (s *Server) handleUpgradeClick(w http.ResponseWriter, _ *http.Request) {
	upgraded := s.engine.UpgradeClick()
	writeJSON(w, http.StatusOK, map[string]any{
		"upgraded":  upgraded,
		"dashboard": s.dashboard(),
	})
}

type propertyView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	Income   float64 `json:"income"`
	Value    float64 `json:"value"`
	NextCost float64 `json:"next_cost"`
}

func (s *Server) handleProperties(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard().State
	out := make([]propertyView, 0, len(game.Properties))
	for _, p := range game.Properties {
		owned := state.Properties[p.ID]
		out = append(out, propertyView{
			ID:       p.ID,
			Name:     p.Name,
			Level:    owned.Level,
			Income:   owned.Income,
			Value:    owned.Value,
			NextCost: game.PropertyCost(p.BaseCost, owned.Level),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": out})
}

func (s *Server) handleBuyProperty(w http.ResponseWriter, r *http.Request) {
	bought := s.engine.BuyProperty(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{
		"bought":    bought,
		"dashboard": s.dashboard(),
	})
}

type assetView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Cost           float64 `json:"cost"`
	FlexMultiplier float64 `json:"flex_multiplier"`
	Owned          bool    `json:"owned"`
}

func (s *Server) handleAssets(w http.ResponseWriter, _ *http.Request) {
	state := s.dashboard().State
	out := make([]assetView, 0, len(game.LuxuryAssets))
	for _, a := range game.LuxuryAssets {
		_, owned := state.Assets[a.ID]
		out = append(out, assetView{ID: a.ID, Name: a.Name, Cost: a.Cost, FlexMultiplier: a.FlexMultiplier, Owned: owned})
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": out})
}

func (s *Server) handleBuyAsset(w http.ResponseWriter, r *http.Request) {
	bought := s.engine.BuyAsset(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{
		"bought":    bought,
		"dashboard": s.dashboard(),
	})
}

func (s *Server) handleCryptoList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"crypto": s.engine.CryptoViews(false),
		"trend":  s.sim.Trend(),
	})
}

func (s *Server) handleCryptoDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, v := range s.engine.CryptoViews(true) {
		if v.ID == id {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown crypto id")
}

func (s *Server) handleCryptoBuy(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, s.engine.BuyCrypto)
}

func (s *Server) handleCryptoSell(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, s.engine.SellCrypto)
}

func (s *Server) handleStockList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"stocks": s.engine.StockViews(false)})
}

func (s *Server) handleStockDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, v := range s.engine.StockViews(true) {
		if v.ID == id {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown stock id")
}

func (s *Server) handleStockBuy(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, s.engine.BuyStock)
}

func (s *Server) handleStockSell(w http.ResponseWriter, r *http.Request) {
	s.handleTrade(w, r, s.engine.SellStock)
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request, trade func(string, float64) bool) {
	var in struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	done := trade(chi.URLParam(r, "id"), in.Amount)
	writeJSON(w, http.StatusOK, map[string]any{
		"done":      done,
		"dashboard": s.dashboard(),
	})
}

func (s *Server) handlePrestige(w http.ResponseWriter, _ *http.Request) {
	prestiged := s.engine.Prestige()
	writeJSON(w, http.StatusOK, map[string]any{
		"prestiged": prestiged,
		"dashboard": s.dashboard(),
	})
}

func (s *Server) handleDailyReward(w http.ResponseWriter, _ *http.Request) {
	amount, claimed := s.engine.ClaimDailyReward()
	writeJSON(w, http.StatusOK, map[string]any{
		"claimed":   claimed,
		"amount":    amount,
		"dashboard": s.dashboard(),
	})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	line := s.advisor.TradingAdvice(r.Context(), s.engine.Cash(), s.engine.NetWorth())
	writeJSON(w, http.StatusOK, map[string]any{"advice": line})
}

func (s *Server) handleOfflineAck(w http.ResponseWriter, _ *http.Request) {
	s.engine.AckOfflineGains()
	writeJSON(w, http.StatusOK, map[string]any{"dashboard": s.dashboard()})
}

func (s *Server) writeCasino(w http.ResponseWriter, view any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"game": view,
		"cash": s.engine.Cash(),
	})
}

func (s *Server) handleMinesState(w http.ResponseWriter, _ *http.Request) {
	s.writeCasino(w, s.mines.State())
}

func (s *Server) handleMinesStart(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Bet   float64 `json:"bet"`
		Mines int     `json:"mines"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mines.Start(in.Bet, in.Mines)
	s.writeCasino(w, s.mines.State())
}

func (s *Server) handleMinesReveal(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Index int `json:"index"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mines.Reveal(in.Index)
	s.writeCasino(w, s.mines.State())
}

func (s *Server) handleMinesCashOut(w http.ResponseWriter, _ *http.Request) {
	s.mines.CashOut()
	s.writeCasino(w, s.mines.State())
}

func (s *Server) handleCrashState(w http.ResponseWriter, _ *http.Request) {
	s.writeCasino(w, s.crash.State(time.Now()))
}

func (s *Server) handleCrashStart(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Bet float64 `json:"bet"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	s.crash.Start(in.Bet, now)
	s.writeCasino(w, s.crash.State(now))
}

func (s *Server) handleCrashCashOut(w http.ResponseWriter, _ *http.Request) {
	now := time.Now()
	s.crash.CashOut(now)
	s.writeCasino(w, s.crash.State(now))
}

func (s *Server) handleBlackjackState(w http.ResponseWriter, _ *http.Request) {
	s.writeCasino(w, s.blackjack.State())
}

func (s *Server) handleBlackjackDeal(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Bet float64 `json:"bet"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.blackjack.Deal(in.Bet)
	s.writeCasino(w, s.blackjack.State())
}

func (s *Server) handleBlackjackHit(w http.ResponseWriter, _ *http.Request) {
	s.blackjack.Hit()
	s.writeCasino(w, s.blackjack.State())
}

func (s *Server) handleBlackjackStand(w http.ResponseWriter, _ *http.Request) {
	s.blackjack.Stand()
	s.writeCasino(w, s.blackjack.State())
}

func (s *Server) handleCoinFlipState(w http.ResponseWriter, _ *http.Request) {
	s.writeCasino(w, s.coinflip.State(time.Now()))
}

func (s *Server) handleCoinFlipFlip(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Bet    float64 `json:"bet"`
		Choice string  `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	s.coinflip.Flip(in.Bet, strings.ToLower(strings.TrimSpace(in.Choice)), now)
	s.writeCasino(w, s.coinflip.State(now))
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
