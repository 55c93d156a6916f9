package casino

import (
	"fmt"
	"math"
	mathrand "math/rand"
	"sync"
	"time"

	"aurora/internal/format"
	"aurora/internal/game"
)

const (
	// CrashMinBet is the table minimum.
	CrashMinBet = 100.0

	// crashGrowth is the per-second multiplier growth base.
	crashGrowth = 1.04
	// crashSkew shapes the crash-point distribution toward low values.
	crashSkew = 1.1
)

// CrashPhase is the round lifecycle state.
type CrashPhase string

const (
	CrashBetting CrashPhase = "betting"
	CrashRunning CrashPhase = "running"
	CrashCrashed CrashPhase = "crashed"
)

// Crash is the rising-multiplier game: the curve grows exponentially
// from 1.0 and busts at a point drawn when the round starts. One cash
// out per round, honored only before the bust.
type Crash struct {
	mu   sync.Mutex
	bank Bank
	rand *mathrand.Rand

	phase      CrashPhase
	bet        float64
	crashPoint float64
	startedAt  time.Time
	cashedOut  bool
	cashoutAt  float64
}

// CrashView is the player-facing snapshot. CrashPoint is only revealed
// once the round has crashed.
type CrashView struct {
	Phase      CrashPhase `json:"phase"`
	Bet        float64    `json:"bet"`
	Multiplier float64    `json:"multiplier"`
	CrashPoint float64    `json:"crash_point,omitempty"`
	CashedOut  bool       `json:"cashed_out"`
	CashoutAt  float64    `json:"cashout_at,omitempty"`
}

// NewCrash creates a game in the betting phase. A nil rnd gets a
// time-seeded source.
func NewCrash(bank Bank, rnd *mathrand.Rand) *Crash {
	return &Crash{bank: bank, rand: newRand(rnd), phase: CrashBetting}
}

// Start debits the bet, draws the hidden crash point and starts the
// curve at now. A previous round whose curve already passed its crash
// point is resolved first.
func (c *Crash) Start(bet float64, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(now)
	if c.phase == CrashRunning || bet < CrashMinBet {
		return false
	}
	if !c.bank.Debit(bet) {
		return false
	}
	r := math.Pow(c.rand.Float64(), crashSkew)
	c.crashPoint = math.Max(1.01, 1/(1-r))
	c.phase = CrashRunning
	c.bet = bet
	c.startedAt = now
	c.cashedOut = false
	c.cashoutAt = 0
	c.bank.LogActivity(fmt.Sprintf("Bet %s on Crash", format.Currency(bet)), game.KindNeutral)
	return true
}

func (c *Crash) multiplierAt(now time.Time) float64 {
	elapsed := now.Sub(c.startedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return math.Pow(crashGrowth, elapsed)
}

// advance moves the round to crashed once the curve passes the crash
// point. Caller holds the lock.
func (c *Crash) advance(now time.Time) {
	if c.phase != CrashRunning || c.multiplierAt(now) < c.crashPoint {
		return
	}
	c.phase = CrashCrashed
	if !c.cashedOut {
		c.bank.LogActivity(fmt.Sprintf("Crashed at %.2fx, lost %s", c.crashPoint, format.Currency(c.bet)), game.KindLoss)
	}
}

// CashOut locks in the multiplier at now. Late cash outs, after the
// curve has already passed the crash point, lose.
func (c *Crash) CashOut(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(now)
	if c.phase != CrashRunning || c.cashedOut {
		return false
	}
	m := c.multiplierAt(now)
	winnings := c.bet * m
	c.bank.Credit(winnings)
	c.cashedOut = true
	c.cashoutAt = m
	c.bank.LogActivity(fmt.Sprintf("Cashed out %s from Crash at %.2fx", format.Currency(winnings), m), game.KindGain)
	return true
}

// State advances the round against now and returns the current view.
func (c *Crash) State(now time.Time) CrashView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(now)
	v := CrashView{Phase: c.phase, Bet: c.bet, CashedOut: c.cashedOut, CashoutAt: c.cashoutAt}
	switch c.phase {
	case CrashRunning:
		m := c.multiplierAt(now)
		if m > c.crashPoint {
			m = c.crashPoint
		}
		v.Multiplier = m
	case CrashCrashed:
		v.Multiplier = c.crashPoint
		v.CrashPoint = c.crashPoint
	default:
		v.Multiplier = 1
	}
	return v
}
