package casino

import (
	"fmt"
	mathrand "math/rand"
	"sync"

	"aurora/internal/format"
	"aurora/internal/game"
)

const (
	// MinesGridSize is the fixed 5x5 board.
	MinesGridSize = 25
	// MinesMin and MinesMax bound the configurable mine count.
	MinesMin = 3
	MinesMax = 20

	// minesStep scales the per-gem multiplier growth.
	minesStep = 1.0
)

// MinesPhase is the round lifecycle state.
type MinesPhase string

const (
	MinesConfiguring MinesPhase = "configuring"
	MinesPlaying     MinesPhase = "playing"
	MinesWon         MinesPhase = "won"
	MinesLost        MinesPhase = "lost"
)

// Mines is the grid-reveal game: pick cells, each gem compounds the
// multiplier, cash out before hitting a mine.
type Mines struct {
	mu   sync.Mutex
	bank Bank
	rand *mathrand.Rand

	phase      MinesPhase
	grid       [MinesGridSize]bool // true = mine
	revealed   [MinesGridSize]bool
	mineCount  int
	bet        float64
	multiplier float64
	gems       int
}

// MinesView is the player-facing snapshot. Cells holds "hidden", "gem"
// or "mine"; unrevealed cells only show their contents once the round
// is over.
type MinesView struct {
	Phase      MinesPhase `json:"phase"`
	Cells      []string   `json:"cells"`
	Mines      int        `json:"mines"`
	Bet        float64    `json:"bet"`
	Multiplier float64    `json:"multiplier"`
	Gems       int        `json:"gems"`
	Payout     float64    `json:"payout"`
}

// NewMines creates a game in the configuring phase. A nil rnd gets a
// time-seeded source.
func NewMines(bank Bank, rnd *mathrand.Rand) *Mines {
	return &Mines{bank: bank, rand: newRand(rnd), phase: MinesConfiguring}
}

// Start debits the bet and deals a fresh grid. A round still in play
// must settle (cash out or hit a mine) before a new one starts.
func (m *Mines) Start(bet float64, mines int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == MinesPlaying || bet <= 0 || mines < MinesMin || mines > MinesMax {
		return false
	}
	if !m.bank.Debit(bet) {
		return false
	}
	m.grid = [MinesGridSize]bool{}
	m.revealed = [MinesGridSize]bool{}
	placed := 0
	for placed < mines {
		i := m.rand.Intn(MinesGridSize)
		if !m.grid[i] {
			m.grid[i] = true
			placed++
		}
	}
	m.phase = MinesPlaying
	m.mineCount = mines
	m.bet = bet
	m.multiplier = 1
	m.gems = 0
	m.bank.LogActivity(fmt.Sprintf("Bet %s on Mines (%d mines)", format.Currency(bet), mines), game.KindNeutral)
	return true
}

// Reveal uncovers one cell. A gem compounds the multiplier; a mine ends
// the round with the stake lost.
func (m *Mines) Reveal(index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != MinesPlaying || index < 0 || index >= MinesGridSize || m.revealed[index] {
		return false
	}
	m.revealed[index] = true
	if m.grid[index] {
		m.phase = MinesLost
		m.bank.LogActivity(fmt.Sprintf("Hit a mine and lost %s", format.Currency(m.bet)), game.KindLoss)
		return true
	}
	m.gems++
	m.multiplier *= 1 + (float64(m.mineCount)/float64(MinesGridSize))*minesStep
	return true
}

// CashOut settles the round at the current multiplier. Requires at
// least one revealed gem.
func (m *Mines) CashOut() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != MinesPlaying || m.gems == 0 {
		return false
	}
	winnings := m.bet * m.multiplier
	m.bank.Credit(winnings)
	m.phase = MinesWon
	m.bank.LogActivity(fmt.Sprintf("Cashed out %s from Mines at %.2fx", format.Currency(winnings), m.multiplier), game.KindGain)
	return true
}

// State returns the current view without mutating the round.
func (m *Mines) State() MinesView {
	m.mu.Lock()
	defer m.mu.Unlock()
	over := m.phase == MinesWon || m.phase == MinesLost
	cells := make([]string, MinesGridSize)
	for i := range cells {
		switch {
		case !m.revealed[i] && !over:
			cells[i] = "hidden"
		case m.grid[i]:
			cells[i] = "mine"
		default:
			cells[i] = "gem"
		}
	}
	return MinesView{
		Phase:      m.phase,
		Cells:      cells,
		Mines:      m.mineCount,
		Bet:        m.bet,
		Multiplier: m.multiplier,
		Gems:       m.gems,
		Payout:     m.bet * m.multiplier,
	}
}
