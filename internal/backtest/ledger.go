package backtest

import (
	"time"

	"github.com/Lilium-longiflorum/coin/internal/core"
)

// Ledger owns the fund state of one simulation run: cash, position and
// the append-only trade log. It is mutated only by applying fills, and
// it belongs to exactly one Backtester; it must never be shared
// between concurrent runs.
//
// The cost basis is maintained incrementally (total cost and quantity
// of BUY fills) instead of rescanning the log each step. Selling never
// alters the cost basis of the remaining holdings.
type Ledger struct {
	cash     float64
	position float64

	buyCost float64 // sum of price*quantity over BUY fills
	buyQty  float64 // sum of quantity over BUY fills

	trades []core.Trade
}

// NewLedger creates a ledger holding only cash.
func NewLedger(initialCash float64) *Ledger {
	return &Ledger{cash: initialCash}
}

// Cash returns the quote-currency balance.
func (l *Ledger) Cash() float64 {
	return l.cash
}

// Position returns the base-asset quantity held.
func (l *Ledger) Position() float64 {
	return l.position
}

// AvgBuyPrice returns the quantity-weighted mean fill price of all BUY
// trades, or zero when nothing was bought.
func (l *Ledger) AvgBuyPrice() float64 {
	if l.buyQty == 0 {
		return 0
	}
	return l.buyCost / l.buyQty
}

// Trades returns the trade log, ordered by candle index.
func (l *Ledger) Trades() []core.Trade {
	return l.trades
}

// ApplyBuy spends notional at price. The proportional fee comes out of
// the quantity received, so the logged quantity is the post-fee fill.
func (l *Ledger) ApplyBuy(index int, at time.Time, price, notional, feeRate float64, reason core.Reason) core.Trade {
	quantity := notional * (1 - feeRate) / price

	l.cash -= notional
	l.position += quantity
	l.buyCost += price * quantity
	l.buyQty += quantity

	trade := core.Trade{
		Index:    index,
		Time:     at,
		Side:     core.SideBuy,
		Price:    price,
		Quantity: quantity,
		Reason:   reason,
	}
	l.trades = append(l.trades, trade)
	return trade
}

// ApplySell sells quantity at price. The proportional fee comes out of
// the proceeds.
func (l *Ledger) ApplySell(index int, at time.Time, price, quantity, feeRate float64, reason core.Reason) core.Trade {
	proceeds := quantity * price * (1 - feeRate)

	l.cash += proceeds
	l.position -= quantity

	trade := core.Trade{
		Index:    index,
		Time:     at,
		Side:     core.SideSell,
		Price:    price,
		Quantity: quantity,
		Reason:   reason,
	}
	l.trades = append(l.trades, trade)
	return trade
}
