package game

import (
	"math"
	"time"
)

// Pure pieces of the economy math. Everything here is stateless so it can
// be unit tested without an Engine.

// PropertyCost is the price of taking a property from level to level+1.
// Level 0 means not yet owned. Cost compounds 15% per level.
func PropertyCost(base float64, level int) float64 {
	return base * math.Pow(1.15, float64(level))
}

// PropertyIncome grows slightly faster than linearly: a 5% compounding
// bonus per level rewards deep upgrades over spreading purchases.
func PropertyIncome(baseIncome float64, level int) float64 {
	if level <= 0 {
		return 0
	}
	return baseIncome * float64(level) * math.Pow(1.05, float64(level-1))
}

// PropertyValue is the resale/net-worth value of an owned property.
func PropertyValue(base float64, level int) float64 {
	if level <= 0 {
		return 0
	}
	return base * math.Pow(1.15, float64(level-1))
}

// PrestigeBonus is the global multiplicative income factor earned by
// prestiging.
func PrestigeBonus(tycoonLevel int) float64 {
	return 1 + float64(tycoonLevel)*PrestigeRate
}

// GlobalMultiplier combines the prestige bonus with the summed flex
// multipliers of owned luxury assets.
func GlobalMultiplier(tycoonLevel int, flexSum float64) float64 {
	return PrestigeBonus(tycoonLevel) * (1 + flexSum)
}

// DailyReward is the payout for claiming on a given streak day.
func DailyReward(streak, tycoonLevel int) float64 {
	return DailyRewardBase * float64(streak) * float64(1+tycoonLevel)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
