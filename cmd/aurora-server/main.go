package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aurora/internal/advice"
	"aurora/internal/api"
	"aurora/internal/config"
	"aurora/internal/feed"
	"aurora/internal/game"
	"aurora/internal/idle"
	"aurora/internal/market"
	"aurora/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadServerFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store open failed", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	engine := game.NewEngine(logger)
	snap, found, err := st.Load(ctx)
	if err != nil {
		logger.Error("save load failed", "err", err)
		os.Exit(1)
	}
	if found {
		engine.Restore(snap)
		engine.ApplyOfflineProgress()
		logger.Info("save restored", "saved_at", snap.SavedAt)
	} else {
		logger.Info("starting fresh game")
	}

	sim := market.NewSimulator(engine, feed.NewCoinGecko(cfg.FeedBaseURL), logger,
		cfg.CryptoUpdateEvery, cfg.StockUpdateEvery, cfg.TrendUpdateEvery)
	advisor := advice.NewAdvisor(cfg.AdviceAPIKey, cfg.AdviceModel, logger)

	go idle.NewTicker(engine, logger).Run(ctx)
	go sim.Run(ctx)
	go autosave(ctx, logger, engine, st, cfg.AutosaveEvery)

	server := api.New(logger, engine, sim, advisor)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("aurora server listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}

	// Final save so a clean shutdown loses nothing.
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Save(saveCtx, engine.Snapshot()); err != nil {
		logger.Error("final save failed", "err", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func openStore(ctx context.Context, cfg config.ServerConfig) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		return store.OpenPG(ctx, cfg.DatabaseURL, cfg.SaveSlot)
	}
	return store.OpenFile(cfg.SaveFile)
}

func autosave(ctx context.Context, logger *slog.Logger, engine *game.Engine, st store.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			saveCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := st.Save(saveCtx, engine.Snapshot())
			cancel()
			if err != nil {
				logger.Error("autosave failed", "err", err)
				continue
			}
			logger.Debug("autosave complete")
		}
	}
}
