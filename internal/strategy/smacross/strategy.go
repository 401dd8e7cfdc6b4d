// Package smacross implements an SMA-crossover strategy: buy on a
// golden cross of the short over the long average, exit on the shared
// rules or on the dead cross.
package smacross

import (
	"fmt"

	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/Lilium-longiflorum/coin/internal/indicator"
	"github.com/Lilium-longiflorum/coin/internal/strategy"
)

const (
	defaultShortWindow = 5
	defaultLongWindow  = 20
	defaultMaxWindow   = 1000
	defaultOrderCash   = 10000.0
)

// Strategy is the SMA-crossover variant. Crossover signals carry full
// strength; sizing is a fixed notional per entry and a full exit.
type Strategy struct {
	shortWindow int
	longWindow  int
	maxWindow   int
	orderCash   float64

	exit strategy.ExitRules
}

// New creates the variant from config params, applying defaults for
// anything unset.
func New(cfg strategy.Config, exit strategy.ExitRules) *Strategy {
	return &Strategy{
		shortWindow: cfg.IntParam("short_window", defaultShortWindow),
		longWindow:  cfg.IntParam("long_window", defaultLongWindow),
		maxWindow:   cfg.IntParam("max_window", defaultMaxWindow),
		orderCash:   cfg.FloatParam("order_cash", defaultOrderCash),
		exit:        exit,
	}
}

func (s *Strategy) Name() string {
	return "smacross"
}

func (s *Strategy) Description() string {
	return fmt.Sprintf("SMA crossover (%d/%d)", s.shortWindow, s.longWindow)
}

// crosses reports golden and death crossings of the short SMA over the
// long SMA at the window's final step. Both are false during warm-up.
func (s *Strategy) crosses(window []core.Candle) (golden, death bool) {
	closes := core.Closes(tail(window, s.maxWindow))

	prevShort, currShort, okShort := indicator.Last2(indicator.SMA(closes, s.shortWindow))
	prevLong, currLong, okLong := indicator.Last2(indicator.SMA(closes, s.longWindow))
	if !okShort || !okLong {
		return false, false
	}

	golden = prevShort < prevLong && currShort > currLong
	death = prevShort > prevLong && currShort < currLong
	return golden, death
}

func (s *Strategy) ShouldBuy(window []core.Candle) (bool, float64, error) {
	golden, _ := s.crosses(window)
	if !golden {
		return false, 0, nil
	}
	return true, 1.0, nil
}

func (s *Strategy) ShouldSell(window []core.Candle, sctx strategy.Context) (strategy.Decision, error) {
	if decision, handled := s.exit.Evaluate(core.Closes(window), sctx); handled {
		return decision, nil
	}

	if _, death := s.crosses(window); death {
		if !s.exit.SignalGate(sctx.ProfitPercent()) {
			return strategy.Hold(), nil
		}
		return strategy.Decision{Sell: true, Reason: core.ReasonStrategySignal, Strength: 1.0}, nil
	}

	return strategy.Hold(), nil
}

// BuyAmount spends a fixed notional per entry, scaled by strength.
func (s *Strategy) BuyAmount(availableCash, price, strength float64) float64 {
	return min(availableCash, s.orderCash*strength)
}

// SellAmount exits the position in proportion to strength.
func (s *Strategy) SellAmount(availablePosition, price, strength float64) float64 {
	return availablePosition * strength
}

func tail(candles []core.Candle, n int) []core.Candle {
	if len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}
