package backtest

import (
	"math"
	"testing"

	"github.com/Lilium-longiflorum/coin/internal/core"
)

func TestComputeMetrics_EmptyLog(t *testing.T) {
	mdd, winRate := ComputeMetrics(nil, 1_000_000, 100)
	if mdd != 0 || winRate != 0 {
		t.Errorf("ComputeMetrics(empty) = (%v, %v), want (0, 0)", mdd, winRate)
	}
}

func TestWinRate_AdjacentPairs(t *testing.T) {
	trades := []core.Trade{
		{Side: core.SideBuy, Price: 100},
		{Side: core.SideSell, Price: 110}, // win
		{Side: core.SideBuy, Price: 120},
		{Side: core.SideSell, Price: 115}, // loss
		{Side: core.SideBuy, Price: 100},
		{Side: core.SideSell, Price: 105}, // win
	}

	got := winRate(trades)
	want := 2.0 / 3.0 * 100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("winRate = %v, want %v", got, want)
	}
}

func TestWinRate_ExcludesUnpairedSells(t *testing.T) {
	// Log starting with a SELL, and a SELL following a SELL: neither
	// belongs to a decided pair.
	trades := []core.Trade{
		{Side: core.SideSell, Price: 90},
		{Side: core.SideBuy, Price: 100},
		{Side: core.SideSell, Price: 110}, // the only decided pair, a win
		{Side: core.SideSell, Price: 120},
	}

	if got := winRate(trades); got != 100 {
		t.Errorf("winRate = %v, want 100", got)
	}
}

func TestWinRate_NoPairs(t *testing.T) {
	trades := []core.Trade{
		{Side: core.SideBuy, Price: 100},
		{Side: core.SideBuy, Price: 105},
	}
	if got := winRate(trades); got != 0 {
		t.Errorf("winRate = %v, want 0 with no decided pairs", got)
	}
}

func TestMaxDrawdown_KnownCurve(t *testing.T) {
	// Final price 100. Curve after each trade:
	//   buy  10 @100: cash 9000, pos 10 -> equity 10000 (peak)
	//   sell 10 @80:  cash 9800, pos 0  -> equity 9800
	// Drawdown: (9800 - 10000) / 10000 = -2%.
	trades := []core.Trade{
		{Side: core.SideBuy, Price: 100, Quantity: 10},
		{Side: core.SideSell, Price: 80, Quantity: 10},
	}

	got := maxDrawdown(trades, 10_000, 100)
	if math.Abs(got-(-2.0)) > 1e-9 {
		t.Errorf("maxDrawdown = %v, want -2", got)
	}
}

func TestMaxDrawdown_NeverPositive(t *testing.T) {
	trades := []core.Trade{
		{Side: core.SideBuy, Price: 100, Quantity: 10},
		{Side: core.SideSell, Price: 120, Quantity: 10},
		{Side: core.SideBuy, Price: 110, Quantity: 5},
		{Side: core.SideSell, Price: 150, Quantity: 5},
	}

	if got := maxDrawdown(trades, 10_000, 150); got > 0 {
		t.Errorf("maxDrawdown = %v, must be <= 0", got)
	}
}

func TestMaxDrawdown_MonotonicCurve(t *testing.T) {
	// A single profitable round trip valued at the final price never
	// dips below its peak.
	trades := []core.Trade{
		{Side: core.SideBuy, Price: 100, Quantity: 10},
		{Side: core.SideSell, Price: 120, Quantity: 10},
	}

	if got := maxDrawdown(trades, 10_000, 120); got != 0 {
		t.Errorf("maxDrawdown = %v, want 0 for non-decreasing curve", got)
	}
}
