package metrics

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordBacktest(t *testing.T) {
	reg := NewRegistry()

	reg.RecordBacktest("rsi", "success", 1.2)

	if !hasMetric(t, reg, "coin_backtests_total") {
		t.Error("expected coin_backtests_total metric")
	}
	if !hasMetric(t, reg, "coin_backtest_duration_seconds") {
		t.Error("expected coin_backtest_duration_seconds metric")
	}
}

func TestRegistry_RecordTrade(t *testing.T) {
	reg := NewRegistry()

	reg.RecordTrade("BUY", "strategy_signal")
	reg.RecordTrade("SELL", "take_profit")
	reg.RecordRejection()
	reg.RecordStrategyError()
	reg.RecordCandle()
	reg.SetPortfolioValue(1_020_000)

	for _, name := range []string{
		"coin_trades_executed_total",
		"coin_orders_rejected_total",
		"coin_strategy_errors_total",
		"coin_candles_replayed_total",
		"coin_portfolio_value",
	} {
		if !hasMetric(t, reg, name) {
			t.Errorf("expected %s metric", name)
		}
	}
}

func hasMetric(t *testing.T, reg *Registry, name string) bool {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}
