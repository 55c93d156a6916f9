package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cl "aurora/internal/cli"
	"aurora/internal/config"
	"aurora/internal/format"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL
	if settings, err := cl.LoadSettings(); err == nil && settings.APIBaseURL != "" {
		apiBase = settings.APIBaseURL
	}

	root := &cobra.Command{
		Use:          "aur",
		Short:        "Tycoon Aurora CLI game client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "server", apiBase, "API server base URL")

	root.AddCommand(
		newStateCmd(&apiBase),
		newClickCmd(&apiBase),
		newPropertiesCmd(&apiBase),
		newAssetsCmd(&apiBase),
		newCryptoCmd(&apiBase),
		newStocksCmd(&apiBase),
		newPrestigeCmd(&apiBase),
		newDailyCmd(&apiBase),
		newAdviceCmd(&apiBase),
		newOfflineCmd(&apiBase),
		newCasinoCmd(&apiBase),
		newServerCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show your empire",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			return renderState(out)
		},
	}
}

func newClickCmd(apiBase *string) *cobra.Command {
	click := &cobra.Command{
		Use:   "click",
		Short: "Earn cash by clicking",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Click(ctx)
			if err != nil {
				return err
			}
			payload, err := decodeInto[actionPayload](out)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Earned %s", format.Currency(payload.Earned)))
			fmt.Printf("Cash: %s\n", format.Currency(payload.Dashboard.State.Cash))
			return nil
		},
	}
	click.AddCommand(&cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade your click tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).UpgradeClick(ctx)
			if err != nil {
				return err
			}
			return renderAction(out, "Click upgraded.", "Cannot upgrade: maxed out or not enough cash.",
				func(p actionPayload) bool { return p.Upgraded })
		},
	})
	return click
}

func newPropertiesCmd(apiBase *string) *cobra.Command {
	properties := &cobra.Command{
		Use:     "properties",
		Short:   "Real estate commands",
		Aliases: []string{"property"},
	}
	properties.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).ListProperties(ctx)
			if err != nil {
				return err
			}
			return renderProperties(out)
		},
	})
	properties.AddCommand(&cobra.Command{
		Use:   "buy [id]",
		Short: "Buy or level up a property",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idFromArgsOrPrompt(args, "Property id")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BuyProperty(ctx, id)
			if err != nil {
				return err
			}
			return renderAction(out, "Property purchased.", "Cannot buy: check the id and your cash.",
				func(p actionPayload) bool { return p.Bought })
		},
	})
	return properties
}

func newAssetsCmd(apiBase *string) *cobra.Command {
	assets := &cobra.Command{
		Use:     "assets",
		Short:   "Luxury asset commands",
		Aliases: []string{"asset"},
	}
	assets.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List luxury assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).ListAssets(ctx)
			if err != nil {
				return err
			}
			return renderAssets(out)
		},
	})
	assets.AddCommand(&cobra.Command{
		Use:   "buy [id]",
		Short: "Buy a luxury asset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idFromArgsOrPrompt(args, "Asset id")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BuyAsset(ctx, id)
			if err != nil {
				return err
			}
			return renderAction(out, "Asset acquired. Flex on.", "Cannot buy: already owned or not enough cash.",
				func(p actionPayload) bool { return p.Bought })
		},
	})
	return assets
}

func newCryptoCmd(apiBase *string) *cobra.Command {
	crypto := &cobra.Command{
		Use:   "crypto",
		Short: "Crypto market commands",
	}
	crypto.AddCommand(&cobra.Command{
		Use:   "list [id]",
		Short: "List coins or inspect one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			if len(args) == 1 {
				out, err := client.CryptoDetail(ctx, strings.ToLower(strings.TrimSpace(args[0])))
				if err != nil {
					return err
				}
				return renderPriceDetail(out)
			}
			out, err := client.ListCrypto(ctx)
			if err != nil {
				return err
			}
			return renderCryptoList(out)
		},
	})
	crypto.AddCommand(newTradeCmd(apiBase, "buy", "Buy coins", tradeCrypto))
	crypto.AddCommand(newTradeCmd(apiBase, "sell", "Sell coins", tradeCrypto))
	return crypto
}

func newStocksCmd(apiBase *string) *cobra.Command {
	stocks := &cobra.Command{
		Use:     "stocks",
		Short:   "Stock market commands",
		Aliases: []string{"stock"},
	}
	stocks.AddCommand(&cobra.Command{
		Use:   "list [id]",
		Short: "List stocks or inspect one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			if len(args) == 1 {
				out, err := client.StockDetail(ctx, strings.ToLower(strings.TrimSpace(args[0])))
				if err != nil {
					return err
				}
				return renderPriceDetail(out)
			}
			out, err := client.ListStocks(ctx)
			if err != nil {
				return err
			}
			return renderStockList(out)
		},
	})
	stocks.AddCommand(newTradeCmd(apiBase, "buy", "Buy shares", tradeStock))
	stocks.AddCommand(newTradeCmd(apiBase, "sell", "Sell shares", tradeStock))
	return stocks
}

type tradeFunc func(ctx context.Context, client *cl.Client, id, side string, amount float64) (map[string]any, error)

func tradeCrypto(ctx context.Context, client *cl.Client, id, side string, amount float64) (map[string]any, error) {
	return client.TradeCrypto(ctx, id, side, amount)
}

func tradeStock(ctx context.Context, client *cl.Client, id, side string, amount float64) (map[string]any, error) {
	return client.TradeStock(ctx, id, side, amount)
}

func newTradeCmd(apiBase *string, side, short string, trade tradeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   side + " [id]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idFromArgsOrPrompt(args, "Asset id")
			if err != nil {
				return err
			}
			amount, err := promptFloat("Amount to "+side, 0)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := trade(ctx, newClient(apiBase), id, side, amount)
			if err != nil {
				return err
			}
			return renderAction(out, "Trade executed.", "Trade rejected: check the id, amount and your balance.",
				func(p actionPayload) bool { return p.Done })
		},
	}
}

func newPrestigeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "prestige",
		Short: "Reset your empire for a permanent income bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := promptChoice("Prestige resets everything except your tycoon level. Continue?", []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if choice != "yes" {
				printInfo("Prestige cancelled.")
				return nil
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Prestige(ctx)
			if err != nil {
				return err
			}
			return renderAction(out, "PRESTIGE! Welcome to the next life.", "Net worth too low to prestige.",
				func(p actionPayload) bool { return p.Prestiged })
		},
	}
}

func newDailyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Claim your daily reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).ClaimDailyReward(ctx)
			if err != nil {
				return err
			}
			payload, err := decodeInto[actionPayload](out)
			if err != nil {
				return err
			}
			if payload.Claimed {
				printSuccess(fmt.Sprintf("Claimed %s (streak: %d days)",
					format.Currency(payload.Amount), payload.Dashboard.State.DailyRewardStreak))
			} else {
				printWarn("Already claimed today. Come back tomorrow.")
			}
			return nil
		},
	}
}

func newAdviceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Ask the AI advisor for wisdom",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Advice(ctx)
			if err != nil {
				return err
			}
			payload, err := decodeInto[advicePayload](out)
			if err != nil {
				return err
			}
			accent.Println("\nThe Advisor says:")
			fmt.Printf("  %s\n\n", payload.Advice)
			return nil
		},
	}
}

func newOfflineCmd(apiBase *string) *cobra.Command {
	offline := &cobra.Command{
		Use:   "offline",
		Short: "Offline earnings commands",
	}
	offline.AddCommand(&cobra.Command{
		Use:   "ack",
		Short: "Dismiss the offline earnings notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if _, err := newClient(apiBase).AckOffline(ctx); err != nil {
				return err
			}
			printSuccess("Offline earnings acknowledged.")
			return nil
		},
	})
	return offline
}

func newServerCmd() *cobra.Command {
	server := &cobra.Command{
		Use:   "server",
		Short: "Manage the saved server URL",
	}
	server.AddCommand(&cobra.Command{
		Use:   "set [url]",
		Short: "Persist a server base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := strings.TrimRight(strings.TrimSpace(args[0]), "/")
			if err := cl.SaveSettings(cl.Settings{APIBaseURL: url}); err != nil {
				return err
			}
			printSuccess("Server saved: " + url)
			return nil
		},
	})
	server.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the saved server URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSettings(); err != nil {
				return err
			}
			printSuccess("Server setting cleared.")
			return nil
		},
	})
	return server
}

func idFromArgsOrPrompt(args []string, label string) (string, error) {
	if len(args) == 1 {
		return strings.ToLower(strings.TrimSpace(args[0])), nil
	}
	id, err := promptRequired(label)
	if err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}
