package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/Lilium-longiflorum/coin/internal/core"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLedger_ApplyBuy(t *testing.T) {
	l := NewLedger(1_000_000)

	trade := l.ApplyBuy(0, t0, 50_000_000, 100_000, 0, core.ReasonStrategySignal)

	if trade.Quantity != 0.002 {
		t.Errorf("Quantity = %v, want 0.002", trade.Quantity)
	}
	if l.Cash() != 900_000 {
		t.Errorf("Cash() = %v, want 900000", l.Cash())
	}
	if l.Position() != 0.002 {
		t.Errorf("Position() = %v, want 0.002", l.Position())
	}
	if l.AvgBuyPrice() != 50_000_000 {
		t.Errorf("AvgBuyPrice() = %v, want 50000000", l.AvgBuyPrice())
	}
}

func TestLedger_ApplyBuy_FeeReducesQuantity(t *testing.T) {
	l := NewLedger(1_000_000)

	trade := l.ApplyBuy(0, t0, 50_000_000, 100_000, 0.0005, core.ReasonStrategySignal)

	want := 100_000 * 0.9995 / 50_000_000
	if math.Abs(trade.Quantity-want) > 1e-12 {
		t.Errorf("Quantity = %v, want %v", trade.Quantity, want)
	}
	// The full notional leaves the cash balance; the fee came out of
	// the received quantity.
	if l.Cash() != 900_000 {
		t.Errorf("Cash() = %v, want 900000", l.Cash())
	}
}

func TestLedger_AvgBuyPrice_Weighted(t *testing.T) {
	l := NewLedger(10_000_000)

	l.ApplyBuy(0, t0, 100, 1000, 0, core.ReasonStrategySignal) // 10 units @100
	l.ApplyBuy(1, t0.Add(time.Minute), 200, 4000, 0, core.ReasonStrategySignal) // 20 units @200

	want := (10.0*100 + 20.0*200) / 30.0
	if math.Abs(l.AvgBuyPrice()-want) > 1e-9 {
		t.Errorf("AvgBuyPrice() = %v, want %v", l.AvgBuyPrice(), want)
	}
}

func TestLedger_SellKeepsCostBasis(t *testing.T) {
	l := NewLedger(1_000_000)
	l.ApplyBuy(0, t0, 100, 10_000, 0, core.ReasonStrategySignal) // 100 units

	before := l.AvgBuyPrice()
	l.ApplySell(1, t0.Add(time.Minute), 150, 40, 0, core.ReasonTakeProfit)

	if l.AvgBuyPrice() != before {
		t.Errorf("AvgBuyPrice changed on sell: %v -> %v", before, l.AvgBuyPrice())
	}
	if l.Position() != 60 {
		t.Errorf("Position() = %v, want 60", l.Position())
	}
}

func TestLedger_RoundTrip_ZeroFee(t *testing.T) {
	l := NewLedger(1_000_000)

	buy := l.ApplyBuy(0, t0, 50_000_000, 100_000, 0, core.ReasonStrategySignal)
	l.ApplySell(1, t0.Add(time.Minute), 50_000_000, buy.Quantity, 0, core.ReasonStrategySignal)

	if math.Abs(l.Cash()-1_000_000) > 1e-6 {
		t.Errorf("Cash() = %v, want initial 1000000", l.Cash())
	}
	if l.Position() != 0 {
		t.Errorf("Position() = %v, want 0", l.Position())
	}
}

func TestLedger_TradeLogOrdering(t *testing.T) {
	l := NewLedger(1_000_000)
	l.ApplyBuy(3, t0, 100, 1000, 0, core.ReasonStrategySignal)
	l.ApplySell(7, t0.Add(time.Minute), 110, 5, 0, core.ReasonTakeProfit)
	l.ApplyBuy(9, t0.Add(2*time.Minute), 105, 1000, 0, core.ReasonStrategySignal)

	trades := l.Trades()
	for i := 1; i < len(trades); i++ {
		if trades[i].Index < trades[i-1].Index {
			t.Errorf("trade log out of order at %d: %d < %d", i, trades[i].Index, trades[i-1].Index)
		}
	}
}

func TestLedger_NoBuys(t *testing.T) {
	l := NewLedger(500)
	if l.AvgBuyPrice() != 0 {
		t.Errorf("AvgBuyPrice() = %v, want 0 with no buys", l.AvgBuyPrice())
	}
}
