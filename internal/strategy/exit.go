package strategy

import (
	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/Lilium-longiflorum/coin/internal/stoploss"
)

// ExitRules is the exit evaluation every variant shares, applied in a
// fixed priority order: take-profit, then sharp decline, then loss
// limit. The variant's own reversal signal comes last and must pass
// SignalGate so that fee drag never turns a signal into a realized
// loss.
type ExitRules struct {
	// ProfitThreshold is the unrealized gain (percent) at which
	// take-profit triggers.
	ProfitThreshold float64
	// MinProfitToSell is the fee-adjusted floor (percent): a
	// profit-taking or signal exit below it is suppressed, not forced.
	MinProfitToSell float64
	// LossLimit, when negative, sells once the unrealized loss
	// (percent) reaches it. Zero disables the check.
	LossLimit float64
	// Detector, when set, triggers a sharp-decline exit.
	Detector *stoploss.Detector
}

// Evaluate runs the shared exit checks. handled is true when the rules
// reached a verdict (sell or explicit suppression); when false the
// variant should evaluate its own reversal signal.
func (r ExitRules) Evaluate(closes []float64, sctx Context) (Decision, bool) {
	profit := sctx.ProfitPercent()

	if sctx.AvgBuyPrice > 0 && profit >= r.ProfitThreshold {
		if profit >= r.MinProfitToSell {
			return Decision{Sell: true, Reason: core.ReasonTakeProfit, Strength: 1.0}, true
		}
		// Above the take-profit threshold but below the fee-adjusted
		// minimum: wait rather than realize a loss after fees.
		return Hold(), true
	}

	if r.Detector != nil && r.Detector.IsSharpDecline(closes) {
		return Decision{Sell: true, Reason: core.ReasonSharpDecline, Strength: 1.0}, true
	}

	if r.LossLimit < 0 && sctx.AvgBuyPrice > 0 && profit <= r.LossLimit {
		return Decision{Sell: true, Reason: core.ReasonStopLoss, Strength: 1.0}, true
	}

	return Hold(), false
}

// SignalGate reports whether a strategy-signal exit at the given
// unrealized profit clears the fee-adjusted floor.
func (r ExitRules) SignalGate(profitPercent float64) bool {
	return profitPercent >= r.MinProfitToSell
}
