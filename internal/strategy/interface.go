// Package strategy defines the decision contract the simulation engine
// drives, plus the exit-rule evaluation shared by the shipped variants.
package strategy

import (
	"github.com/Lilium-longiflorum/coin/internal/core"
)

// Context carries the portfolio view a strategy needs to evaluate an
// exit. It is recomputed by the engine at every step.
type Context struct {
	// CurrentPrice is the close of the step's candle.
	CurrentPrice float64
	// AvgBuyPrice is the quantity-weighted mean fill price of all BUY
	// trades so far (the cost basis); zero when nothing was bought.
	AvgBuyPrice float64
	// Position is the base-asset quantity currently held.
	Position float64
}

// ProfitPercent returns the unrealized gain over cost basis in
// percent, or zero when there is no cost basis.
func (c Context) ProfitPercent() float64 {
	if c.AvgBuyPrice <= 0 {
		return 0
	}
	return (c.CurrentPrice - c.AvgBuyPrice) / c.AvgBuyPrice * 100
}

// Decision is the outcome of a sell evaluation.
type Decision struct {
	Sell     bool
	Reason   core.Reason
	Strength float64
}

// Hold is the no-action decision.
func Hold() Decision {
	return Decision{Sell: false, Reason: core.ReasonNone, Strength: 0}
}

// Config holds variant parameters from the configuration file.
type Config struct {
	Params map[string]any
}

// Strategy is the decision contract for trading rules. The engine
// passes a no-lookahead window of candles (everything up to and
// including the current step) to both decision methods.
//
// Insufficient history is a normal "no signal" outcome, never an
// error; an error return means the computation itself failed, and the
// engine degrades that step to no action.
//
// Sizing is advisory: the engine clamps the returned amounts to the
// available balance and to venue minimums before execution. Strength
// is always passed explicitly; implementations must not depend on
// state cached between the decision and sizing calls.
type Strategy interface {
	Name() string
	Description() string

	ShouldBuy(window []core.Candle) (bool, float64, error)
	ShouldSell(window []core.Candle, sctx Context) (Decision, error)

	// BuyAmount returns the quote-currency notional to spend.
	BuyAmount(availableCash, price, strength float64) float64
	// SellAmount returns the base-asset quantity to sell.
	SellAmount(availablePosition, price, strength float64) float64
}
