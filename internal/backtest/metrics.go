package backtest

import (
	"github.com/Lilium-longiflorum/coin/internal/core"
)

// ComputeMetrics derives the risk statistics of a finished run from
// its trade log alone, independent of the engine's internal state.
// finalPrice marks the position remaining after each trade event to
// market; it is used for curve valuation only, never for trade
// accounting. An empty log yields 0/0 by definition.
func ComputeMetrics(trades []core.Trade, initialCash, finalPrice float64) (mddPercent, winRatePercent float64) {
	if len(trades) == 0 {
		return 0, 0
	}
	return maxDrawdown(trades, initialCash, finalPrice), winRate(trades)
}

// maxDrawdown replays the log in order from initial cash and zero
// position, applying each trade's logged price×quantity effect (the
// log already reflects post-fee quantities; fees are not re-applied),
// and measures the deepest decline from the running equity peak. The
// curve has one point per trade event, so drawdown is measured at
// trade-decision resolution, not per candle. The result is always
// <= 0.
func maxDrawdown(trades []core.Trade, initialCash, finalPrice float64) float64 {
	cash := initialCash
	position := 0.0

	var mdd float64
	peak := 0.0

	for _, t := range trades {
		if t.Side == core.SideBuy {
			cash -= t.Notional()
			position += t.Quantity
		} else {
			cash += t.Notional()
			position -= t.Quantity
		}

		equity := cash + position*finalPrice
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			dd := (equity - peak) / peak
			if dd < mdd {
				mdd = dd
			}
		}
	}

	return mdd * 100
}

// winRate counts decided round-trips: a SELL immediately following a
// BUY in the log. A SELL after another SELL, or a log starting with a
// SELL, belongs to no pair and is excluded from both numerator and
// denominator. No decided pairs yields 0.
func winRate(trades []core.Trade) float64 {
	var wins, decided int

	for i := 1; i < len(trades); i++ {
		if trades[i].Side != core.SideSell || trades[i-1].Side != core.SideBuy {
			continue
		}
		decided++
		if trades[i].Price > trades[i-1].Price {
			wins++
		}
	}

	if decided == 0 {
		return 0
	}
	return float64(wins) / float64(decided) * 100
}
