// Package rsi implements an RSI-threshold trading strategy: buy when
// the RSI drops below the oversold level, exit on the shared rules or
// when it rises above the overbought level.
package rsi

import (
	"fmt"

	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/Lilium-longiflorum/coin/internal/indicator"
	"github.com/Lilium-longiflorum/coin/internal/strategy"
)

const (
	defaultPeriod     = 14
	defaultOversold   = 30.0
	defaultOverbought = 70.0
	defaultMaxWindow  = 1000
	defaultOrderCash  = 30000.0

	// strengthSpan maps the distance past a threshold onto [0, 1]:
	// 20 RSI points past oversold/overbought is full strength.
	strengthSpan = 20.0
)

// Strategy is the RSI-threshold variant. It caches the last computed
// RSI value for observability, so an instance must not be shared
// between concurrent runs.
type Strategy struct {
	period     int
	oversold   float64
	overbought float64
	maxWindow  int
	orderCash  float64

	exit strategy.ExitRules

	lastRSI float64
}

// New creates the variant from config params, applying defaults for
// anything unset.
func New(cfg strategy.Config, exit strategy.ExitRules) *Strategy {
	return &Strategy{
		period:     cfg.IntParam("period", defaultPeriod),
		oversold:   cfg.FloatParam("oversold", defaultOversold),
		overbought: cfg.FloatParam("overbought", defaultOverbought),
		maxWindow:  cfg.IntParam("max_window", defaultMaxWindow),
		orderCash:  cfg.FloatParam("order_cash", defaultOrderCash),
		exit:       exit,
	}
}

func (s *Strategy) Name() string {
	return "rsi"
}

func (s *Strategy) Description() string {
	return fmt.Sprintf("RSI threshold (%d, %.0f/%.0f)", s.period, s.oversold, s.overbought)
}

// LastRSI returns the most recently computed RSI value, for reporting.
func (s *Strategy) LastRSI() float64 {
	return s.lastRSI
}

// latestRSI computes the RSI of the window tail. ok is false during
// indicator warm-up.
func (s *Strategy) latestRSI(window []core.Candle) (float64, bool) {
	closes := core.Closes(tail(window, s.maxWindow))
	series := indicator.RSI(closes, s.period)
	if len(series) == 0 {
		return 0, false
	}
	s.lastRSI = series[len(series)-1]
	return s.lastRSI, true
}

func (s *Strategy) ShouldBuy(window []core.Candle) (bool, float64, error) {
	value, ok := s.latestRSI(window)
	if !ok {
		return false, 0, nil // warm-up, no signal
	}

	if value < s.oversold {
		strength := min(1.0, (s.oversold-value)/strengthSpan)
		return true, strength, nil
	}
	return false, 0, nil
}

func (s *Strategy) ShouldSell(window []core.Candle, sctx strategy.Context) (strategy.Decision, error) {
	closes := core.Closes(window)

	if decision, handled := s.exit.Evaluate(closes, sctx); handled {
		return decision, nil
	}

	value, ok := s.latestRSI(window)
	if !ok {
		return strategy.Hold(), nil
	}

	if value > s.overbought {
		if !s.exit.SignalGate(sctx.ProfitPercent()) {
			return strategy.Hold(), nil
		}
		strength := min(1.0, (value-s.overbought)/strengthSpan)
		return strategy.Decision{Sell: true, Reason: core.ReasonStrategySignal, Strength: strength}, nil
	}

	return strategy.Hold(), nil
}

// BuyAmount spends up to the configured base order, scaled by signal
// strength.
func (s *Strategy) BuyAmount(availableCash, price, strength float64) float64 {
	return min(availableCash, s.orderCash*strength)
}

// SellAmount sells the held quantity in proportion to signal strength.
func (s *Strategy) SellAmount(availablePosition, price, strength float64) float64 {
	return availablePosition * strength
}

func tail(candles []core.Candle, n int) []core.Candle {
	if len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}
