package smacross

import (
	"testing"
	"time"

	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/Lilium-longiflorum/coin/internal/strategy"
)

func makeCandles(closes ...float64) []core.Candle {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]core.Candle, len(closes))
	for i, c := range closes {
		out[i] = core.Candle{Time: base.Add(time.Duration(i) * time.Minute), Close: c}
	}
	return out
}

func newTestStrategy(exit strategy.ExitRules) *Strategy {
	cfg := strategy.Config{Params: map[string]any{
		"short_window": 2,
		"long_window":  3,
	}}
	return New(cfg, exit)
}

func TestShouldBuy_GoldenCross(t *testing.T) {
	s := newTestStrategy(strategy.ExitRules{})

	// SMA2 moves 9 -> 11 while SMA3 moves 10 -> 10.67: the short
	// average crosses up through the long one at the final step.
	act, strength, err := s.ShouldBuy(makeCandles(12, 10, 8, 14))
	if err != nil {
		t.Fatalf("ShouldBuy() error = %v", err)
	}
	if !act {
		t.Fatal("ShouldBuy() = false, want golden-cross entry")
	}
	if strength != 1.0 {
		t.Errorf("strength = %v, want full strength on crossover", strength)
	}
}

func TestShouldBuy_WarmUp(t *testing.T) {
	s := newTestStrategy(strategy.ExitRules{})

	// Three closes yield a single long-SMA point, not enough for a
	// crossing comparison.
	act, _, err := s.ShouldBuy(makeCandles(12, 10, 8))
	if err != nil {
		t.Fatalf("ShouldBuy() error = %v", err)
	}
	if act {
		t.Error("ShouldBuy() = true during warm-up, want no signal")
	}
}

func TestShouldBuy_NoCrossNoSignal(t *testing.T) {
	s := newTestStrategy(strategy.ExitRules{})

	// Short stays above long throughout; no crossing.
	act, _, err := s.ShouldBuy(makeCandles(10, 11, 12, 13))
	if err != nil {
		t.Fatalf("ShouldBuy() error = %v", err)
	}
	if act {
		t.Error("ShouldBuy() = true without a crossing, want no signal")
	}
}

func TestShouldSell_DeadCross(t *testing.T) {
	s := newTestStrategy(strategy.ExitRules{ProfitThreshold: 50, MinProfitToSell: 0})
	sctx := strategy.Context{CurrentPrice: 6, AvgBuyPrice: 6, Position: 1}

	// Mirror of the golden-cross shape: the short average crosses
	// down through the long one.
	decision, err := s.ShouldSell(makeCandles(8, 10, 12, 6), sctx)
	if err != nil {
		t.Fatalf("ShouldSell() error = %v", err)
	}
	if !decision.Sell || decision.Reason != core.ReasonStrategySignal {
		t.Errorf("decision = %+v, want dead-cross exit", decision)
	}
}

func TestShouldSell_DeadCrossGatedByProfitFloor(t *testing.T) {
	s := newTestStrategy(strategy.ExitRules{ProfitThreshold: 50, MinProfitToSell: 0.5})
	// Dead cross while under water: the gate suppresses the exit.
	sctx := strategy.Context{CurrentPrice: 6, AvgBuyPrice: 10, Position: 1}

	decision, err := s.ShouldSell(makeCandles(8, 10, 12, 6), sctx)
	if err != nil {
		t.Fatalf("ShouldSell() error = %v", err)
	}
	if decision.Sell {
		t.Errorf("decision = %+v, want hold below the profit floor", decision)
	}
}

func TestShouldSell_LossLimitBeforeDeadCross(t *testing.T) {
	s := newTestStrategy(strategy.ExitRules{ProfitThreshold: 50, LossLimit: -3.0})
	sctx := strategy.Context{CurrentPrice: 6, AvgBuyPrice: 10, Position: 1}

	decision, err := s.ShouldSell(makeCandles(8, 10, 12, 6), sctx)
	if err != nil {
		t.Fatalf("ShouldSell() error = %v", err)
	}
	if decision.Reason != core.ReasonStopLoss {
		t.Errorf("Reason = %s, want the loss limit to outrank the dead cross", decision.Reason)
	}
}

func TestSizing(t *testing.T) {
	s := New(strategy.Config{}, strategy.ExitRules{})

	if got := s.BuyAmount(1_000_000, 100, 1.0); got != defaultOrderCash {
		t.Errorf("BuyAmount = %v, want the fixed order cash %v", got, defaultOrderCash)
	}
	if got := s.BuyAmount(4000, 100, 1.0); got != 4000 {
		t.Errorf("BuyAmount = %v, want clamp to available cash", got)
	}
	if got := s.SellAmount(3.0, 100, 1.0); got != 3.0 {
		t.Errorf("SellAmount = %v, want the full position", got)
	}
}
