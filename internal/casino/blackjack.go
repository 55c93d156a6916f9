package casino

import (
	"fmt"
	mathrand "math/rand"
	"sync"

	"aurora/internal/format"
	"aurora/internal/game"
)

// BlackjackMinBet is the table minimum.
const BlackjackMinBet = 500.0

// BlackjackPhase is the round lifecycle state.
type BlackjackPhase string

const (
	BlackjackBetting    BlackjackPhase = "betting"
	BlackjackPlayerTurn BlackjackPhase = "playerTurn"
	BlackjackSettled    BlackjackPhase = "settled"
)

// BlackjackOutcome names how a settled round ended.
type BlackjackOutcome string

const (
	OutcomeWin       BlackjackOutcome = "win"
	OutcomeBlackjack BlackjackOutcome = "blackjack"
	OutcomeLoss      BlackjackOutcome = "loss"
	OutcomeBust      BlackjackOutcome = "bust"
	OutcomePush      BlackjackOutcome = "push"
)

var (
	cardSuits = []string{"♠", "♥", "♦", "♣"}
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// Card is one playing card.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func cardValue(rank string) int {
	switch rank {
	case "A":
		return 11
	case "J", "Q", "K", "10":
		return 10
	default:
		return int(rank[0] - '0')
	}
}

// HandValue totals a hand, demoting aces from 11 to 1 while the total
// busts.
func HandValue(cards []Card) int {
	total, aces := 0, 0
	for _, c := range cards {
		total += cardValue(c.Rank)
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// Blackjack is single-hand blackjack against a dealer who stands on 17.
// Each round plays from a fresh shuffled 52-card shoe.
type Blackjack struct {
	mu   sync.Mutex
	bank Bank
	rand *mathrand.Rand

	phase   BlackjackPhase
	bet     float64
	deck    []Card
	player  []Card
	dealer  []Card
	outcome BlackjackOutcome
}

// BlackjackView is the player-facing snapshot. The dealer's hole card
// stays hidden while the player acts.
type BlackjackView struct {
	Phase       BlackjackPhase   `json:"phase"`
	Bet         float64          `json:"bet"`
	Player      []Card           `json:"player"`
	PlayerTotal int              `json:"player_total"`
	Dealer      []Card           `json:"dealer"`
	DealerTotal int              `json:"dealer_total"`
	Outcome     BlackjackOutcome `json:"outcome,omitempty"`
}

// NewBlackjack creates a game in the betting phase. A nil rnd gets a
// time-seeded source.
func NewBlackjack(bank Bank, rnd *mathrand.Rand) *Blackjack {
	return &Blackjack{bank: bank, rand: newRand(rnd), phase: BlackjackBetting}
}

func (b *Blackjack) freshDeck() {
	b.deck = make([]Card, 0, 52)
	for _, s := range cardSuits {
		for _, r := range cardRanks {
			b.deck = append(b.deck, Card{Rank: r, Suit: s})
		}
	}
	b.rand.Shuffle(len(b.deck), func(i, j int) {
		b.deck[i], b.deck[j] = b.deck[j], b.deck[i]
	})
}

func (b *Blackjack) draw() Card {
	c := b.deck[0]
	b.deck = b.deck[1:]
	return c
}

// Deal debits the bet and deals two cards each. A player natural 21
// stands automatically.
func (b *Blackjack) Deal(bet float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase == BlackjackPlayerTurn || bet < BlackjackMinBet {
		return false
	}
	if !b.bank.Debit(bet) {
		return false
	}
	b.freshDeck()
	b.bet = bet
	b.player = []Card{b.draw(), b.draw()}
	b.dealer = []Card{b.draw(), b.draw()}
	b.phase = BlackjackPlayerTurn
	b.bank.LogActivity(fmt.Sprintf("Bet %s on Blackjack", format.Currency(bet)), game.KindNeutral)
	if HandValue(b.player) == 21 {
		b.settle()
	}
	return true
}

// Hit draws one card for the player; busting settles immediately.
func (b *Blackjack) Hit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != BlackjackPlayerTurn {
		return false
	}
	b.player = append(b.player, b.draw())
	if HandValue(b.player) > 21 {
		b.phase = BlackjackSettled
		b.outcome = OutcomeBust
		b.bank.LogActivity(fmt.Sprintf("Busted at Blackjack, lost %s", format.Currency(b.bet)), game.KindLoss)
	}
	return true
}

// Stand ends the player's turn; the dealer draws to 17 and the round
// settles.
func (b *Blackjack) Stand() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != BlackjackPlayerTurn {
		return false
	}
	b.settle()
	return true
}

// settle plays out the dealer and pays the result. Caller holds the
// lock and the player has not busted.
func (b *Blackjack) settle() {
	for HandValue(b.dealer) < 17 {
		b.dealer = append(b.dealer, b.draw())
	}
	b.phase = BlackjackSettled
	playerTotal := HandValue(b.player)
	dealerTotal := HandValue(b.dealer)
	natural := playerTotal == 21 && len(b.player) == 2
	switch {
	case dealerTotal > 21 || playerTotal > dealerTotal:
		payout := b.bet * 2
		b.outcome = OutcomeWin
		if natural {
			payout = b.bet * 2.5
			b.outcome = OutcomeBlackjack
		}
		b.bank.Credit(payout)
		b.bank.LogActivity(fmt.Sprintf("Won %s at Blackjack", format.Currency(payout)), game.KindGain)
	case playerTotal < dealerTotal:
		b.outcome = OutcomeLoss
		b.bank.LogActivity(fmt.Sprintf("Lost %s at Blackjack", format.Currency(b.bet)), game.KindLoss)
	default:
		b.outcome = OutcomePush
		b.bank.Credit(b.bet)
		b.bank.LogActivity("Pushed at Blackjack, bet returned", game.KindNeutral)
	}
}

// State returns the current view without mutating the round.
func (b *Blackjack) State() BlackjackView {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := BlackjackView{
		Phase:       b.phase,
		Bet:         b.bet,
		Player:      append([]Card(nil), b.player...),
		PlayerTotal: HandValue(b.player),
		Outcome:     b.outcome,
	}
	if b.phase == BlackjackPlayerTurn && len(b.dealer) > 0 {
		v.Dealer = []Card{b.dealer[0]}
		v.DealerTotal = HandValue(v.Dealer)
	} else {
		v.Dealer = append([]Card(nil), b.dealer...)
		v.DealerTotal = HandValue(b.dealer)
	}
	return v
}
