package game

import (
	"fmt"
	"log/slog"
	"math"
	mathrand "math/rand"
	"sync"
	"time"

	"aurora/internal/format"

	"github.com/google/uuid"
)

// Engine owns the canonical PlayerState. Every mutation goes through one
// of its operations under a single mutex, so callers on any goroutine see
// the same atomicity a single-threaded event loop would give.
//
// Affordability and ownership violations are not errors: the operation
// reports false and leaves the state untouched.
type Engine struct {
	mu   sync.Mutex
	log  *slog.Logger
	rand *mathrand.Rand
	now  func() time.Time

	state        PlayerState
	offlineGains float64
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		log:  logger,
		rand: mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
	e.state = initialState(e.now())
	e.state.ActivityFeed = []Activity{newActivity("Welcome to Tycoon Aurora!", KindNeutral)}
	return e
}

func newActivity(text string, kind ActivityKind) Activity {
	return Activity{ID: uuid.NewString(), Text: text, Kind: kind}
}

// logActivity prepends an entry and drops the oldest past the cap.
// Callers must hold e.mu.
func (e *Engine) logActivity(text string, kind ActivityKind) {
	feed := append([]Activity{newActivity(text, kind)}, e.state.ActivityFeed...)
	if len(feed) > ActivityFeedCap {
		feed = feed[:ActivityFeedCap]
	}
	e.state.ActivityFeed = feed
}

// Click earns the current click value times the prestige bonus and
// returns the amount credited.
func (e *Engine) Click() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	tier := ClickTiers[e.state.ClickLevel-1]
	earned := tier.ClickValue * PrestigeBonus(e.state.TycoonLevel)
	e.state.Cash += earned
	return earned
}

func (e *Engine) UpgradeClick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.ClickLevel >= len(ClickTiers) {
		return false
	}
	next := ClickTiers[e.state.ClickLevel]
	if e.state.Cash < next.Cost {
		return false
	}
	e.state.Cash -= next.Cost
	e.state.ClickLevel++
	e.logActivity(fmt.Sprintf("Upgraded click to Lvl %d!", next.Level), KindGain)
	return true
}

// BuyProperty buys an unowned property or upgrades an owned one by a
// single level.
func (e *Engine) BuyProperty(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	data, ok := PropertyByID(id)
	if !ok {
		return false
	}
	owned := e.state.Properties[id]
	cost := PropertyCost(data.BaseCost, owned.Level)
	if e.state.Cash < cost {
		return false
	}
	e.state.Cash -= cost
	level := owned.Level + 1
	e.state.Properties[id] = OwnedProperty{
		Level:  level,
		Income: PropertyIncome(data.BaseIncome, level),
		Value:  PropertyValue(data.BaseCost, level),
	}
	verb := "Bought"
	if owned.Level > 0 {
		verb = "Upgraded"
	}
	e.logActivity(fmt.Sprintf("%s %s to Lvl %d", verb, data.Name, level), KindGain)
	return true
}

// BuyAsset is a one-time purchase; re-buying an owned asset is a no-op.
func (e *Engine) BuyAsset(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	data, ok := LuxuryAssetByID(id)
	if !ok {
		return false
	}
	if _, owned := e.state.Assets[id]; owned {
		return false
	}
	if e.state.Cash < data.Cost {
		return false
	}
	e.state.Cash -= data.Cost
	e.state.Assets[id] = OwnedAsset{ID: id, Value: data.Cost, FlexMultiplier: data.FlexMultiplier}
	e.logActivity(fmt.Sprintf("Acquired %s!", data.Name), KindGain)
	return true
}

func (e *Engine) BuyCrypto(id string, amount float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.state.CryptoHoldings[id]
	if !ok || amount <= 0 || h.Price <= 0 {
		return false
	}
	cost := amount * h.Price
	if e.state.Cash < cost {
		return false
	}
	e.state.Cash -= cost
	h.Amount += amount
	h.Value = h.Amount * h.Price
	e.state.CryptoHoldings[id] = h
	c, _ := CryptoByID(id)
	e.logActivity(fmt.Sprintf("Bought %s %s", format.CryptoAmount(amount), c.Ticker), KindNeutral)
	return true
}

func (e *Engine) SellCrypto(id string, amount float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.state.CryptoHoldings[id]
	if !ok || amount <= 0 || h.Amount < amount {
		return false
	}
	e.state.Cash += amount * h.Price
	h.Amount -= amount
	h.Value = h.Amount * h.Price
	e.state.CryptoHoldings[id] = h
	c, _ := CryptoByID(id)
	e.logActivity(fmt.Sprintf("Sold %s %s", format.CryptoAmount(amount), c.Ticker), KindNeutral)
	return true
}

func (e *Engine) BuyStock(id string, shares float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.state.StockHoldings[id]
	if !ok || shares <= 0 || h.Price <= 0 {
		return false
	}
	cost := shares * h.Price
	if e.state.Cash < cost {
		return false
	}
	e.state.Cash -= cost
	h.Amount += shares
	h.Value = h.Amount * h.Price
	e.state.StockHoldings[id] = h
	s, _ := StockByID(id)
	e.logActivity(fmt.Sprintf("Bought %s shares of %s", format.Number(shares), s.Ticker), KindNeutral)
	return true
}

func (e *Engine) SellStock(id string, shares float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.state.StockHoldings[id]
	if !ok || shares <= 0 || h.Amount < shares {
		return false
	}
	e.state.Cash += shares * h.Price
	h.Amount -= shares
	h.Value = h.Amount * h.Price
	e.state.StockHoldings[id] = h
	s, _ := StockByID(id)
	e.logActivity(fmt.Sprintf("Sold %s shares of %s", format.Number(shares), s.Ticker), KindNeutral)
	return true
}

// Prestige resets everything to initial defaults in exchange for a
// permanent income bonus. The net worth gate is boundary-inclusive.
func (e *Engine) Prestige() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.netWorthLocked() < PrestigeRequirement {
		return false
	}
	level := e.state.TycoonLevel + 1
	e.state = initialState(e.now())
	e.state.TycoonLevel = level
	e.state.ActivityFeed = []Activity{
		newActivity(fmt.Sprintf("Prestige Bonus is now +%.0f%%!", float64(level)*PrestigeRate*100), KindPrestige),
		newActivity(fmt.Sprintf("Went Tycoon! Level %d reached!", level), KindPrestige),
	}
	e.offlineGains = 0
	e.log.Info("prestige", "tycoon_level", level)
	return true
}

// ClaimDailyReward pays out once per local calendar day. The streak only
// survives when the previous claim was exactly the prior day.
func (e *Engine) ClaimDailyReward() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	last := e.state.LastDailyReward
	if !last.IsZero() && sameCalendarDay(now, last) {
		return 0, false
	}
	if !last.IsZero() && sameCalendarDay(now.AddDate(0, 0, -1), last) {
		e.state.DailyRewardStreak++
	} else {
		e.state.DailyRewardStreak = 1
	}
	reward := DailyReward(e.state.DailyRewardStreak, e.state.TycoonLevel)
	e.state.Cash += reward
	e.state.LastDailyReward = now
	e.logActivity(fmt.Sprintf("Daily reward: %s (day %d)", format.Currency(reward), e.state.DailyRewardStreak), KindGain)
	return reward, true
}

// Cash, Debit, Credit and LogActivity are the settlement primitives the
// casino games use. Debit is affordability-gated and reports whether the
// charge went through.

func (e *Engine) Cash() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Cash
}

func (e *Engine) Debit(amount float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount <= 0 || e.state.Cash < amount {
		return false
	}
	e.state.Cash -= amount
	return true
}

func (e *Engine) Credit(amount float64) {
	if amount <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Cash += amount
}

func (e *Engine) LogActivity(text string, kind ActivityKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logActivity(text, kind)
}

func (e *Engine) NetWorth() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.netWorthLocked()
}

func (e *Engine) netWorthLocked() float64 {
	total := e.state.Cash
	for _, p := range e.state.Properties {
		total += p.Value
	}
	for _, h := range e.state.CryptoHoldings {
		total += h.Value
	}
	for _, h := range e.state.StockHoldings {
		total += h.Value
	}
	for _, a := range e.state.Assets {
		total += a.Value
	}
	return total
}

func (e *Engine) incomePerSecondLocked() float64 {
	var income, flex float64
	for _, p := range e.state.Properties {
		income += p.Income
	}
	for _, a := range e.state.Assets {
		flex += a.FlexMultiplier
	}
	return income * GlobalMultiplier(e.state.TycoonLevel, flex)
}

// IncomePerSecond is the passive income rate with all multipliers applied.
func (e *Engine) IncomePerSecond() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.incomePerSecondLocked()
}

// ApplyIdleTick credits one tick's worth of passive income.
func (e *Engine) ApplyIdleTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	income := e.incomePerSecondLocked() / TicksPerSecond
	if income > 0 {
		e.state.Cash += income
	}
}

// SetCryptoQuote records a new price for a catalog coin: history gains
// the price and drops its oldest entry, and the holding value follows.
func (e *Engine) SetCryptoQuote(id string, price float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.state.CryptoHoldings[id]
	if !ok || price <= 0 {
		return
	}
	h.Price = price
	h.Value = h.Amount * price
	h.PriceHistory = append(h.PriceHistory[1:], price)
	e.state.CryptoHoldings[id] = h
}

func (e *Engine) SetStockQuote(id string, price float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.state.StockHoldings[id]
	if !ok || price <= 0 {
		return
	}
	h.Price = price
	h.Value = h.Amount * price
	h.PriceHistory = append(h.PriceHistory[1:], price)
	e.state.StockHoldings[id] = h
}

func (e *Engine) CryptoQuotes() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]float64, len(e.state.CryptoHoldings))
	for id, h := range e.state.CryptoHoldings {
		out[id] = h.Price
	}
	return out
}

func (e *Engine) StockQuotes() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]float64, len(e.state.StockHoldings))
	for id, h := range e.state.StockHoldings {
		out[id] = h.Price
	}
	return out
}

// Snapshot refreshes lastUpdated and returns a deep copy suitable for the
// persistence adapter.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.state.LastUpdated = now
	return Snapshot{PlayerState: e.state.clone(), SavedAt: now}
}

// Restore replaces the state with a persisted snapshot, reconciling it
// against the current catalogs: unknown ids are dropped, missing holdings
// are seeded at zero, and derived value fields are recomputed.
func (e *Engine) Restore(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	st := initialState(now)

	st.Cash = math.Max(0, snap.Cash)
	st.ClickLevel = clampInt(snap.ClickLevel, 1, len(ClickTiers))
	if snap.TycoonLevel > 0 {
		st.TycoonLevel = snap.TycoonLevel
	}
	for id, p := range snap.Properties {
		data, ok := PropertyByID(id)
		if !ok || p.Level <= 0 {
			continue
		}
		st.Properties[id] = OwnedProperty{
			Level:  p.Level,
			Income: PropertyIncome(data.BaseIncome, p.Level),
			Value:  PropertyValue(data.BaseCost, p.Level),
		}
	}
	for id, seed := range st.CryptoHoldings {
		h, ok := snap.CryptoHoldings[id]
		if !ok {
			continue
		}
		st.CryptoHoldings[id] = reconcileHolding(h, seed)
	}
	for id, seed := range st.StockHoldings {
		h, ok := snap.StockHoldings[id]
		if !ok {
			continue
		}
		st.StockHoldings[id] = reconcileHolding(h, seed)
	}
	for id := range snap.Assets {
		data, ok := LuxuryAssetByID(id)
		if !ok {
			continue
		}
		st.Assets[id] = OwnedAsset{ID: id, Value: data.Cost, FlexMultiplier: data.FlexMultiplier}
	}
	st.ActivityFeed = append([]Activity(nil), snap.ActivityFeed...)
	if len(st.ActivityFeed) > ActivityFeedCap {
		st.ActivityFeed = st.ActivityFeed[:ActivityFeedCap]
	}
	if snap.DailyRewardStreak > 0 {
		st.DailyRewardStreak = snap.DailyRewardStreak
	}
	st.LastDailyReward = snap.LastDailyReward
	switch {
	case !snap.LastUpdated.IsZero():
		st.LastUpdated = snap.LastUpdated
	case !snap.SavedAt.IsZero():
		st.LastUpdated = snap.SavedAt
	default:
		st.LastUpdated = now
	}

	e.state = st
	e.offlineGains = 0
}

func reconcileHolding(h, seed Holding) Holding {
	out := seed
	out.Amount = math.Max(0, h.Amount)
	if h.Price > 0 {
		out.Price = h.Price
	}
	out.PriceHistory = normalizeHistory(h.PriceHistory, out.Price)
	out.Value = out.Amount * out.Price
	return out
}

func normalizeHistory(history []float64, price float64) []float64 {
	if len(history) == 0 {
		return seedHistory(price)
	}
	if len(history) > PriceHistoryLen {
		history = history[len(history)-PriceHistoryLen:]
	}
	out := make([]float64, 0, PriceHistoryLen)
	for len(out)+len(history) < PriceHistoryLen {
		out = append(out, history[0])
	}
	return append(out, history...)
}

// Dashboard is the read surface the API serves.
func (e *Engine) Dashboard() Dashboard {
	e.mu.Lock()
	defer e.mu.Unlock()
	tier := ClickTiers[e.state.ClickLevel-1]
	return Dashboard{
		State:           e.state.clone(),
		NetWorth:        e.netWorthLocked(),
		IncomePerSecond: e.incomePerSecondLocked(),
		ClickValue:      tier.ClickValue * PrestigeBonus(e.state.TycoonLevel),
		OfflineGains:    e.offlineGains,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
