// Package executor turns trade decisions into order fills against an
// account. The shipped implementation is a paper account; a live
// venue adapter satisfies the same interface.
package executor

import (
	"context"
	"time"

	"github.com/Lilium-longiflorum/coin/internal/core"
)

// Order is a filled order.
type Order struct {
	ID       string      `json:"id"`
	Time     time.Time   `json:"time"`
	Side     core.Side   `json:"side"`
	Price    float64     `json:"price"`
	Quantity float64     `json:"quantity"`
	Fee      float64     `json:"fee"`
	Reason   core.Reason `json:"reason"`
}

// Account is a point-in-time account snapshot.
type Account struct {
	Cash        float64 `json:"cash"`
	Position    float64 `json:"position"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
}

// Value marks the position at the given price and adds cash.
func (a Account) Value(price float64) float64 {
	return a.Cash + a.Position*price
}

// Executor places orders against an account. Buy takes a
// quote-currency notional, Sell a base-asset quantity. An order below
// the venue minimum or beyond the available balance returns
// core.ErrOrderRejected.
type Executor interface {
	Buy(ctx context.Context, at time.Time, price, notional float64, reason core.Reason) (*Order, error)
	Sell(ctx context.Context, at time.Time, price, quantity float64, reason core.Reason) (*Order, error)
	Account() Account
	Orders() []Order
}
