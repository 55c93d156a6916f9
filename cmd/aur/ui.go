package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"aurora/internal/casino"
	"aurora/internal/format"
	"aurora/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

type statePayload struct {
	Dashboard game.Dashboard `json:"dashboard"`
	Trend     string         `json:"trend"`
}

type actionPayload struct {
	Earned    float64        `json:"earned"`
	Upgraded  bool           `json:"upgraded"`
	Bought    bool           `json:"bought"`
	Done      bool           `json:"done"`
	Prestiged bool           `json:"prestiged"`
	Claimed   bool           `json:"claimed"`
	Amount    float64        `json:"amount"`
	Dashboard game.Dashboard `json:"dashboard"`
}

type propertiesPayload struct {
	Properties []propertyRow `json:"properties"`
}

type propertyRow struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	Income   float64 `json:"income"`
	Value    float64 `json:"value"`
	NextCost float64 `json:"next_cost"`
}

type assetsPayload struct {
	Assets []assetRow `json:"assets"`
}

type assetRow struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Cost           float64 `json:"cost"`
	FlexMultiplier float64 `json:"flex_multiplier"`
	Owned          bool    `json:"owned"`
}

type cryptoPayload struct {
	Crypto []game.PriceView `json:"crypto"`
	Trend  string           `json:"trend"`
}

type stocksPayload struct {
	Stocks []game.PriceView `json:"stocks"`
}

type advicePayload struct {
	Advice string `json:"advice"`
}

type minesPayload struct {
	Game casino.MinesView `json:"game"`
	Cash float64          `json:"cash"`
}

type crashPayload struct {
	Game casino.CrashView `json:"game"`
	Cash float64          `json:"cash"`
}

type blackjackPayload struct {
	Game casino.BlackjackView `json:"game"`
	Cash float64              `json:"cash"`
}

type coinFlipPayload struct {
	Game casino.CoinFlipView `json:"game"`
	Cash float64             `json:"cash"`
}

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v <= min {
			printWarn(fmt.Sprintf("Value must be > %.4f", min))
			continue
		}
		return v, nil
	}
}

func promptInt(label string, min, max int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min || v > max {
			printWarn(fmt.Sprintf("Value must be between %d and %d.", min, max))
			continue
		}
		return v, nil
	}
}

func renderState(raw map[string]any) error {
	payload, err := decodeInto[statePayload](raw)
	if err != nil {
		return err
	}
	d := payload.Dashboard

	accent.Println("\n== TYCOON AURORA ==")
	fmt.Printf("Cash:         %s\n", format.Currency(d.State.Cash))
	fmt.Printf("Net Worth:    %s\n", format.Currency(d.NetWorth))
	fmt.Printf("Income:       %s/s\n", format.Currency(d.IncomePerSecond))
	fmt.Printf("Click Value:  %s\n", format.Currency(d.ClickValue))
	fmt.Printf("Tycoon Level: %d\n", d.State.TycoonLevel)
	fmt.Printf("Streak:       %d days\n", d.State.DailyRewardStreak)
	fmt.Printf("Trend:        %s\n", colorizeTrend(payload.Trend))
	if d.OfflineGains > 0 {
		printSuccess(fmt.Sprintf("Offline gains: %s (ack with `aur offline ack`)", format.Currency(d.OfflineGains)))
	}

	fmt.Println()
	accent.Println("Recent Activity")
	if len(d.State.ActivityFeed) == 0 {
		printInfo("Nothing happened yet.")
	}
	limit := len(d.State.ActivityFeed)
	if limit > 8 {
		limit = 8
	}
	for _, a := range d.State.ActivityFeed[:limit] {
		fmt.Printf("  %s\n", colorizeActivity(a))
	}
	fmt.Println()
	return nil
}

func renderAction(raw map[string]any, successMsg, noopMsg string, happened func(actionPayload) bool) error {
	payload, err := decodeInto[actionPayload](raw)
	if err != nil {
		return err
	}
	if happened(payload) {
		printSuccess(successMsg)
	} else if noopMsg != "" {
		printWarn(noopMsg)
	}
	fmt.Printf("Cash: %s\n", format.Currency(payload.Dashboard.State.Cash))
	return nil
}

func renderProperties(raw map[string]any) error {
	payload, err := decodeInto[propertiesPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== PROPERTIES ==")
	fmt.Printf("%-12s %-22s %6s %14s %14s %14s\n", "ID", "NAME", "LEVEL", "INCOME", "VALUE", "NEXT COST")
	for _, p := range payload.Properties {
		fmt.Printf("%-12s %-22s %6d %14s %14s %14s\n",
			p.ID,
			truncate(p.Name, 22),
			p.Level,
			format.Currency(p.Income),
			format.Currency(p.Value),
			format.Currency(p.NextCost),
		)
	}
	fmt.Println()
	return nil
}

func renderAssets(raw map[string]any) error {
	payload, err := decodeInto[assetsPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== LUXURY ASSETS ==")
	fmt.Printf("%-14s %-20s %14s %8s %-6s\n", "ID", "NAME", "COST", "FLEX", "OWNED")
	for _, a := range payload.Assets {
		owned := "no"
		if a.Owned {
			owned = "yes"
		}
		fmt.Printf("%-14s %-20s %14s %7.0f%% %-6s\n",
			a.ID,
			truncate(a.Name, 20),
			format.Currency(a.Cost),
			a.FlexMultiplier*100,
			owned,
		)
	}
	fmt.Println()
	return nil
}

func renderPriceList(title string, views []game.PriceView) {
	accent.Printf("\n== %s ==\n", title)
	fmt.Printf("%-12s %-16s %-8s %14s %14s %14s\n", "ID", "NAME", "TICKER", "PRICE", "HELD", "VALUE")
	for _, v := range views {
		fmt.Printf("%-12s %-16s %-8s %14s %14s %14s\n",
			v.ID,
			truncate(v.Name, 16),
			v.Ticker,
			format.Currency(v.Price),
			format.CryptoAmount(v.Amount),
			format.Currency(v.Value),
		)
	}
	fmt.Println()
}

func renderCryptoList(raw map[string]any) error {
	payload, err := decodeInto[cryptoPayload](raw)
	if err != nil {
		return err
	}
	renderPriceList("CRYPTO MARKET", payload.Crypto)
	fmt.Printf("Market trend: %s\n\n", colorizeTrend(payload.Trend))
	return nil
}

func renderStockList(raw map[string]any) error {
	payload, err := decodeInto[stocksPayload](raw)
	if err != nil {
		return err
	}
	renderPriceList("STOCK MARKET", payload.Stocks)
	return nil
}

func renderPriceDetail(raw map[string]any) error {
	v, err := decodeInto[game.PriceView](raw)
	if err != nil {
		return err
	}
	accent.Printf("\n== %s (%s) ==\n", v.Name, v.Ticker)
	fmt.Printf("Price:   %s\n", format.Currency(v.Price))
	fmt.Printf("Held:    %s\n", format.CryptoAmount(v.Amount))
	fmt.Printf("Value:   %s\n", format.Currency(v.Value))
	if n := len(v.PriceHistory); n > 1 {
		delta := v.PriceHistory[n-1] - v.PriceHistory[0]
		fmt.Printf("Recent:  %s\n", colorizeDelta(delta))
	}
	fmt.Println()
	return nil
}

func renderMines(raw map[string]any) error {
	payload, err := decodeInto[minesPayload](raw)
	if err != nil {
		return err
	}
	g := payload.Game
	accent.Println("\n== MINES ==")
	fmt.Printf("Phase: %s  Bet: %s  Multiplier: %.2fx  Gems: %d\n",
		g.Phase, format.Currency(g.Bet), g.Multiplier, g.Gems)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			idx := row*5 + col
			switch g.Cells[idx] {
			case "gem":
				success.Printf(" %2d♦", idx)
			case "mine":
				danger.Printf(" %2d✖", idx)
			default:
				neutral.Printf(" %2d■", idx)
			}
		}
		fmt.Println()
	}
	switch g.Phase {
	case casino.MinesWon:
		printSuccess(fmt.Sprintf("Cashed out %s", format.Currency(g.Payout)))
	case casino.MinesLost:
		printWarn("Boom. Better luck next round.")
	}
	fmt.Printf("Cash: %s\n\n", format.Currency(payload.Cash))
	return nil
}

func renderCrash(raw map[string]any) error {
	payload, err := decodeInto[crashPayload](raw)
	if err != nil {
		return err
	}
	g := payload.Game
	accent.Println("\n== CRASH ==")
	fmt.Printf("Phase: %s  Bet: %s  Multiplier: %.2fx\n", g.Phase, format.Currency(g.Bet), g.Multiplier)
	if g.CashedOut {
		printSuccess(fmt.Sprintf("Cashed out at %.2fx", g.CashoutAt))
	}
	if g.Phase == casino.CrashCrashed {
		printWarn(fmt.Sprintf("Crashed at %.2fx", g.CrashPoint))
	}
	fmt.Printf("Cash: %s\n\n", format.Currency(payload.Cash))
	return nil
}

func renderBlackjack(raw map[string]any) error {
	payload, err := decodeInto[blackjackPayload](raw)
	if err != nil {
		return err
	}
	g := payload.Game
	accent.Println("\n== BLACKJACK ==")
	fmt.Printf("Dealer: %s (%d)\n", handString(g.Dealer, g.Phase == casino.BlackjackPlayerTurn), g.DealerTotal)
	fmt.Printf("You:    %s (%d)\n", handString(g.Player, false), g.PlayerTotal)
	if g.Phase == casino.BlackjackSettled {
		switch g.Outcome {
		case casino.OutcomeWin, casino.OutcomeBlackjack:
			printSuccess("You won!")
		case casino.OutcomePush:
			printInfo("Push. Bet returned.")
		default:
			printWarn("Dealer takes it.")
		}
	}
	fmt.Printf("Cash: %s\n\n", format.Currency(payload.Cash))
	return nil
}

func renderCoinFlip(raw map[string]any) error {
	payload, err := decodeInto[coinFlipPayload](raw)
	if err != nil {
		return err
	}
	g := payload.Game
	accent.Println("\n== COIN FLIP ==")
	switch g.Phase {
	case casino.CoinFlipping:
		printInfo(fmt.Sprintf("Coin is in the air... you called %s.", g.Choice))
	case casino.CoinSettled:
		if g.Won {
			printSuccess(fmt.Sprintf("Landed %s. You won %s!", g.Result, format.Currency(g.Payout)))
		} else {
			printWarn(fmt.Sprintf("Landed %s. You lost %s.", g.Result, format.Currency(g.Bet)))
		}
	default:
		printInfo("No flip in progress.")
	}
	fmt.Printf("Cash: %s\n\n", format.Currency(payload.Cash))
	return nil
}

func handString(cards []casino.Card, hideHole bool) string {
	parts := make([]string, 0, len(cards)+1)
	for _, c := range cards {
		parts = append(parts, c.Rank+c.Suit)
	}
	if hideHole {
		parts = append(parts, "??")
	}
	return strings.Join(parts, " ")
}

func colorizeActivity(a game.Activity) string {
	switch a.Kind {
	case game.KindGain:
		return success.Sprint(a.Text)
	case game.KindLoss:
		return danger.Sprint(a.Text)
	case game.KindPrestige:
		return accent.Sprint(a.Text)
	default:
		return neutral.Sprint(a.Text)
	}
}

func colorizeTrend(trend string) string {
	switch trend {
	case "bull":
		return success.Sprint("bull")
	case "bear":
		return danger.Sprint("bear")
	default:
		return neutral.Sprint("stable")
	}
}

func colorizeDelta(v float64) string {
	text := fmt.Sprintf("%+.2f", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
