package config

import (
	"os"
	"strings"
	"time"
)

type ServerConfig struct {
	Addr              string
	DatabaseURL       string
	SaveSlot          string
	SaveFile          string
	AutosaveEvery     time.Duration
	CryptoUpdateEvery time.Duration
	StockUpdateEvery  time.Duration
	TrendUpdateEvery  time.Duration
	FeedBaseURL       string
	AdviceAPIKey      string
	AdviceModel       string
}

type CLIConfig struct {
	APIBaseURL string
}

// LoadServerFromEnv reads the server configuration. Nothing is
// required: without AURORA_DATABASE_URL the server persists to the
// local save file.
func LoadServerFromEnv() ServerConfig {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("AURORA_ADDR", ":8080")
	}

	return ServerConfig{
		Addr:              addr,
		DatabaseURL:       strings.TrimSpace(os.Getenv("AURORA_DATABASE_URL")),
		SaveSlot:          envDefault("AURORA_SAVE_SLOT", "default"),
		SaveFile:          strings.TrimSpace(os.Getenv("AURORA_SAVE_FILE")),
		AutosaveEvery:     envDurationDefault("AURORA_AUTOSAVE_EVERY", 30*time.Second),
		CryptoUpdateEvery: envDurationDefault("AURORA_CRYPTO_UPDATE_EVERY", time.Minute),
		StockUpdateEvery:  envDurationDefault("AURORA_STOCK_UPDATE_EVERY", 30*time.Second),
		TrendUpdateEvery:  envDurationDefault("AURORA_TREND_UPDATE_EVERY", 5*time.Minute),
		FeedBaseURL:       strings.TrimSpace(os.Getenv("AURORA_FEED_BASE_URL")),
		AdviceAPIKey:      envAdviceAPIKey(),
		AdviceModel:       envDefault("AURORA_ADVICE_MODEL", ""),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("AUR_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envAdviceAPIKey() string {
	if v := strings.TrimSpace(os.Getenv("AURORA_ADVICE_API_KEY")); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}
