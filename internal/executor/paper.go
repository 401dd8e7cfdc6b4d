package executor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lilium-longiflorum/coin/internal/core"
)

// Limits are the venue order minimums the paper account enforces.
type Limits struct {
	MinBuyNotional  float64
	MinSellQuantity float64
}

// Paper simulates fills against an in-memory account. Fees come out
// of the bought quantity on buys and out of the proceeds on sells,
// mirroring how spot venues charge in kind. Safe for concurrent use.
type Paper struct {
	mu      sync.Mutex
	cash    float64
	pos     float64
	buyCost float64
	buyQty  float64
	orders  []Order

	feeRate float64
	limits  Limits
	logger  *zap.Logger
}

// NewPaper creates a paper account with the given starting cash.
func NewPaper(cash, feeRate float64, limits Limits, logger ...*zap.Logger) *Paper {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Paper{cash: cash, feeRate: feeRate, limits: limits, logger: l}
}

func (p *Paper) Buy(ctx context.Context, at time.Time, price, notional float64, reason core.Reason) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if notional < p.limits.MinBuyNotional {
		return nil, core.WrapErrorf(core.ErrOrderRejected, "buy notional %.2f below minimum %.2f", notional, p.limits.MinBuyNotional)
	}
	if notional > p.cash {
		return nil, core.WrapErrorf(core.ErrOrderRejected, "buy notional %.2f exceeds cash %.2f", notional, p.cash)
	}

	fee := notional * p.feeRate
	quantity := (notional - fee) / price

	p.cash -= notional
	p.pos += quantity
	p.buyCost += price * quantity
	p.buyQty += quantity

	order := Order{
		ID:       uuid.NewString(),
		Time:     at,
		Side:     core.SideBuy,
		Price:    price,
		Quantity: quantity,
		Fee:      fee,
		Reason:   reason,
	}
	p.orders = append(p.orders, order)

	p.logger.Debug("paper buy filled",
		zap.String("order_id", order.ID),
		zap.Float64("price", price),
		zap.Float64("quantity", quantity),
	)
	return &order, nil
}

func (p *Paper) Sell(ctx context.Context, at time.Time, price, quantity float64, reason core.Reason) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if quantity < p.limits.MinSellQuantity {
		return nil, core.WrapErrorf(core.ErrOrderRejected, "sell quantity %.8f below minimum %.8f", quantity, p.limits.MinSellQuantity)
	}
	if quantity > p.pos {
		return nil, core.WrapErrorf(core.ErrOrderRejected, "sell quantity %.8f exceeds position %.8f", quantity, p.pos)
	}

	gross := quantity * price
	fee := gross * p.feeRate

	p.cash += gross - fee
	p.pos -= quantity
	// Selling never touches the cost basis.

	order := Order{
		ID:       uuid.NewString(),
		Time:     at,
		Side:     core.SideSell,
		Price:    price,
		Quantity: quantity,
		Fee:      fee,
		Reason:   reason,
	}
	p.orders = append(p.orders, order)

	p.logger.Debug("paper sell filled",
		zap.String("order_id", order.ID),
		zap.Float64("price", price),
		zap.Float64("quantity", quantity),
		zap.String("reason", string(reason)),
	)
	return &order, nil
}

func (p *Paper) Account() Account {
	p.mu.Lock()
	defer p.mu.Unlock()

	avg := 0.0
	if p.buyQty > 0 {
		avg = p.buyCost / p.buyQty
	}
	return Account{Cash: p.cash, Position: p.pos, AvgBuyPrice: avg}
}

func (p *Paper) Orders() []Order {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Order, len(p.orders))
	copy(out, p.orders)
	return out
}
