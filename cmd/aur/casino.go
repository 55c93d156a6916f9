package main

import (
	"github.com/spf13/cobra"
)

func newCasinoCmd(apiBase *string) *cobra.Command {
	casino := &cobra.Command{
		Use:   "casino",
		Short: "Casino mini-games",
	}
	casino.AddCommand(
		newMinesCmd(apiBase),
		newCrashCmd(apiBase),
		newBlackjackCmd(apiBase),
		newCoinFlipCmd(apiBase),
	)
	return casino
}

func newMinesCmd(apiBase *string) *cobra.Command {
	mines := &cobra.Command{
		Use:   "mines",
		Short: "Reveal gems, dodge mines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).MinesState(ctx)
			if err != nil {
				return err
			}
			return renderMines(out)
		},
	}
	mines.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a round",
		RunE: func(cmd *cobra.Command, args []string) error {
			bet, err := promptFloat("Bet", 0)
			if err != nil {
				return err
			}
			count, err := promptInt("Mines (3-20)", 3, 20)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).MinesStart(ctx, bet, count)
			if err != nil {
				return err
			}
			return renderMines(out)
		},
	})
	mines.AddCommand(&cobra.Command{
		Use:   "reveal",
		Short: "Reveal a cell",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := promptInt("Cell (0-24)", 0, 24)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).MinesReveal(ctx, index)
			if err != nil {
				return err
			}
			return renderMines(out)
		},
	})
	mines.AddCommand(&cobra.Command{
		Use:   "cashout",
		Short: "Take the winnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).MinesCashOut(ctx)
			if err != nil {
				return err
			}
			return renderMines(out)
		},
	})
	return mines
}

func newCrashCmd(apiBase *string) *cobra.Command {
	crash := &cobra.Command{
		Use:   "crash",
		Short: "Ride the multiplier, bail before it busts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CrashState(ctx)
			if err != nil {
				return err
			}
			return renderCrash(out)
		},
	}
	crash.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a round (min bet 100)",
		RunE: func(cmd *cobra.Command, args []string) error {
			bet, err := promptFloat("Bet", 0)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CrashStart(ctx, bet)
			if err != nil {
				return err
			}
			return renderCrash(out)
		},
	})
	crash.AddCommand(&cobra.Command{
		Use:   "cashout",
		Short: "Lock in the current multiplier",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CrashCashOut(ctx)
			if err != nil {
				return err
			}
			return renderCrash(out)
		},
	})
	return crash
}

func newBlackjackCmd(apiBase *string) *cobra.Command {
	blackjack := &cobra.Command{
		Use:     "blackjack",
		Short:   "Single-hand blackjack (min bet 500)",
		Aliases: []string{"bj"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BlackjackState(ctx)
			if err != nil {
				return err
			}
			return renderBlackjack(out)
		},
	}
	blackjack.AddCommand(&cobra.Command{
		Use:   "deal",
		Short: "Place a bet and deal",
		RunE: func(cmd *cobra.Command, args []string) error {
			bet, err := promptFloat("Bet", 0)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BlackjackDeal(ctx, bet)
			if err != nil {
				return err
			}
			return renderBlackjack(out)
		},
	})
	blackjack.AddCommand(&cobra.Command{
		Use:   "hit",
		Short: "Take another card",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BlackjackHit(ctx)
			if err != nil {
				return err
			}
			return renderBlackjack(out)
		},
	})
	blackjack.AddCommand(&cobra.Command{
		Use:   "stand",
		Short: "Stand and let the dealer play",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).BlackjackStand(ctx)
			if err != nil {
				return err
			}
			return renderBlackjack(out)
		},
	})
	return blackjack
}

func newCoinFlipCmd(apiBase *string) *cobra.Command {
	coinflip := &cobra.Command{
		Use:   "coinflip",
		Short: "Double or nothing at 1.95x",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CoinFlipState(ctx)
			if err != nil {
				return err
			}
			return renderCoinFlip(out)
		},
	}
	coinflip.AddCommand(&cobra.Command{
		Use:   "flip",
		Short: "Call heads or tails",
		RunE: func(cmd *cobra.Command, args []string) error {
			bet, err := promptFloat("Bet", 0)
			if err != nil {
				return err
			}
			choice, err := promptChoice("Call it", []string{"heads", "tails"}, "heads")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CoinFlip(ctx, bet, choice)
			if err != nil {
				return err
			}
			return renderCoinFlip(out)
		},
	})
	return coinflip
}
