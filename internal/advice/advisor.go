// Package advice wraps the AI trading advisor. It never fails the
// caller: missing configuration and upstream errors degrade to fixed
// in-character lines.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Gemini generateContent API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	offlineLine     = "The AI Advisor is offline. The crystal ball is cloudy because someone forgot to pay the API bill."
	coffeeBreakLine = "The AI is currently on a coffee break, contemplating the futility of digital currency. Try again later."
)

// Advisor generates one-liner trading advice from the player's
// finances.
type Advisor struct {
	BaseURL string
	Model   string
	HTTP    *http.Client

	apiKey string
	log    *slog.Logger
}

// NewAdvisor builds an advisor. An empty apiKey leaves it permanently
// offline; a nil logger falls back to the default.
func NewAdvisor(apiKey, model string, logger *slog.Logger) *Advisor {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Advisor{
		BaseURL: DefaultBaseURL,
		Model:   model,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey: apiKey,
		log:    logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// TradingAdvice returns one short piece of in-character advice for the
// given finances. Always returns a usable line.
func (a *Advisor) TradingAdvice(ctx context.Context, cash, netWorth float64) string {
	if a.apiKey == "" {
		return offlineLine
	}
	prompt := fmt.Sprintf(
		"You are a cynical, witty, and slightly unhinged financial advisor in a high-stakes financial simulation game. "+
			"The player has $%.2f in cash and a total net worth of $%.2f. "+
			"Give them one short, memorable, and darkly humorous piece of trading advice. Be creative and a little dramatic. "+
			"Do not give actual financial advice. Keep it under 280 characters.",
		cash, netWorth)
	line, err := a.generate(ctx, prompt)
	if err != nil {
		a.log.Warn("advice fetch failed", "err", err)
		return coffeeBreakLine
	}
	return line
}

func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	raw, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Config:   genConfig{Temperature: 0.9},
	})
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(a.BaseURL, "/"), a.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)
	resp, err := a.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("advisor status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advisor returned no candidates")
	}
	line := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if line == "" {
		return "", fmt.Errorf("advisor returned empty text")
	}
	return line, nil
}
