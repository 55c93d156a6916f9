package casino

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"aurora/internal/format"
	"aurora/internal/game"
)

const (
	coinFlipPayout      = 1.95
	coinFlipRevealDelay = 3 * time.Second
)

// CoinPhase is the round lifecycle state.
type CoinPhase string

const (
	CoinBetting  CoinPhase = "betting"
	CoinFlipping CoinPhase = "flipping"
	CoinSettled  CoinPhase = "settled"
)

// CoinFlip is double-or-nothing on heads or tails at 1.95x. The outcome
// is drawn when the bet is placed but stays hidden behind a short
// reveal delay.
type CoinFlip struct {
	mu   sync.Mutex
	bank Bank
	rand *mathrand.Rand

	phase    CoinPhase
	bet      float64
	choice   string
	result   string
	revealAt time.Time
	won      bool
}

// CoinFlipView is the player-facing snapshot. Result is empty until the
// round settles.
type CoinFlipView struct {
	Phase  CoinPhase `json:"phase"`
	Bet    float64   `json:"bet"`
	Choice string    `json:"choice,omitempty"`
	Result string    `json:"result,omitempty"`
	Won    bool      `json:"won"`
	Payout float64   `json:"payout"`
}

// NewCoinFlip creates a game in the betting phase. A nil rnd gets a
// time-seeded source.
func NewCoinFlip(bank Bank, rnd *mathrand.Rand) *CoinFlip {
	return &CoinFlip{bank: bank, rand: newRand(rnd), phase: CoinBetting}
}

// Flip debits the bet and draws the outcome immediately; settlement
// waits for the reveal delay. A previous flip whose delay has elapsed
// is settled first.
func (f *CoinFlip) Flip(bet float64, choice string, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolve(now)
	if f.phase == CoinFlipping || bet <= 0 || (choice != "heads" && choice != "tails") {
		return false
	}
	if !f.bank.Debit(bet) {
		return false
	}
	f.phase = CoinFlipping
	f.bet = bet
	f.choice = choice
	f.result = "heads"
	if f.rand.Float64() < 0.5 {
		f.result = "tails"
	}
	f.revealAt = now.Add(coinFlipRevealDelay)
	f.won = false
	f.bank.LogActivity(fmt.Sprintf("Bet %s on Coin Flip (%s)", format.Currency(bet), choice), game.KindNeutral)
	return true
}

// resolve settles a flip whose reveal delay has elapsed. Caller holds
// the lock.
func (f *CoinFlip) resolve(now time.Time) {
	if f.phase != CoinFlipping || now.Before(f.revealAt) {
		return
	}
	f.phase = CoinSettled
	if f.choice == f.result {
		f.won = true
		winnings := f.bet * coinFlipPayout
		f.bank.Credit(winnings)
		f.bank.LogActivity(fmt.Sprintf("Coin landed %s, won %s", f.result, format.Currency(winnings)), game.KindGain)
		return
	}
	f.bank.LogActivity(fmt.Sprintf("Coin landed %s, lost %s", f.result, format.Currency(f.bet)), game.KindLoss)
}

// State resolves any due flip against now and returns the current view.
func (f *CoinFlip) State(now time.Time) CoinFlipView {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolve(now)
	v := CoinFlipView{Phase: f.phase, Bet: f.bet, Choice: f.choice, Won: f.won}
	if f.phase == CoinSettled {
		v.Result = f.result
		if f.won {
			v.Payout = f.bet * coinFlipPayout
		}
	}
	return v
}
