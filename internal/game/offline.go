package game

import (
	"fmt"

	"aurora/internal/format"
)

// ApplyOfflineProgress credits the passive income earned since the last
// persisted lastUpdated, using the same income formula the idle tick
// uses. Run once after Restore. Very short gaps are skipped so quick
// restarts do not surface a spurious offline-gains notification.
func (e *Engine) ApplyOfflineProgress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	elapsed := now.Sub(e.state.LastUpdated)
	e.state.LastUpdated = now
	if elapsed < OfflineMinElapsed {
		return 0
	}
	earned := e.incomePerSecondLocked() * elapsed.Seconds()
	if earned <= 0 {
		return 0
	}
	e.state.Cash += earned
	e.offlineGains = earned
	e.logActivity(fmt.Sprintf("Earned %s while you were away", format.Currency(earned)), KindGain)
	e.log.Info("offline progress applied", "elapsed", elapsed.String(), "earned", earned)
	return earned
}

// OfflineGains is the one-shot notification value; it stays set until
// the caller acknowledges it.
func (e *Engine) OfflineGains() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.offlineGains
}

func (e *Engine) AckOfflineGains() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.offlineGains = 0
}
