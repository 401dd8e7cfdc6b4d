// Package backtest replays a candle sequence through a strategy,
// turning its signals into fund/position transitions under fee
// frictions, and summarizes the outcome.
package backtest

import (
	"context"

	"go.uber.org/zap"

	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/Lilium-longiflorum/coin/internal/strategy"
)

// Backtester drives the sequential replay loop. The run is a single
// synchronous pass: given the same candles, strategy parameters and
// initial cash it produces an identical trade log every time.
type Backtester struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Backtester with the given run configuration.
func New(cfg Config, logger ...*zap.Logger) *Backtester {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Backtester{cfg: cfg, logger: l}
}

// Run executes the backtest over the candle sequence. Decisions at
// step i only ever see candles[0..i]. A strategy computation error
// degrades that step to no action and the loop continues; malformed
// input data fails the whole run before the loop starts.
func (b *Backtester) Run(ctx context.Context, strat strategy.Strategy, candles []core.Candle) (*Result, error) {
	if b.cfg.InitialCash <= 0 {
		return nil, core.WrapErrorf(core.ErrConfigInvalid, "initial cash must be positive, got %f", b.cfg.InitialCash)
	}
	if err := core.ValidateCandles(candles); err != nil {
		return nil, err
	}

	ledger := NewLedger(b.cfg.InitialCash)
	var strategyErrors, rejected int

	for i := range candles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		window := candles[:i+1]
		price := candles[i].Close

		sctx := strategy.Context{
			CurrentPrice: price,
			AvgBuyPrice:  ledger.AvgBuyPrice(),
			Position:     ledger.Position(),
		}

		decision, err := strat.ShouldSell(window, sctx)
		if err != nil {
			strategyErrors++
			b.logger.Warn("sell evaluation failed, step degraded to no action",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}

		// Sell takes priority; a step that signals a sell never also
		// evaluates a buy, even when the order falls below the venue
		// minimum.
		if decision.Sell && ledger.Position() > 0 {
			quantity := strat.SellAmount(ledger.Position(), price, decision.Strength)
			quantity = min(quantity, ledger.Position())
			if quantity <= 0 || quantity < b.cfg.MinSellQuantity {
				rejected++
				b.logger.Debug("sell below venue minimum, skipped",
					zap.Int("index", i),
					zap.Float64("quantity", quantity),
				)
				continue
			}

			ledger.ApplySell(i, candles[i].Time, price, quantity, b.cfg.FeeRate, decision.Reason)
			b.logger.Debug("sell executed",
				zap.Int("index", i),
				zap.Float64("price", price),
				zap.Float64("quantity", quantity),
				zap.String("reason", string(decision.Reason)),
			)
			continue
		}

		if ledger.Cash() <= 0 {
			continue
		}

		act, strength, err := strat.ShouldBuy(window)
		if err != nil {
			strategyErrors++
			b.logger.Warn("buy evaluation failed, step degraded to no action",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		if !act {
			continue
		}

		notional := strat.BuyAmount(ledger.Cash(), price, strength)
		notional = min(notional, ledger.Cash())
		if notional <= 0 || notional < b.cfg.MinBuyNotional {
			rejected++
			b.logger.Debug("buy below venue minimum, skipped",
				zap.Int("index", i),
				zap.Float64("notional", notional),
			)
			continue
		}

		trade := ledger.ApplyBuy(i, candles[i].Time, price, notional, b.cfg.FeeRate, core.ReasonStrategySignal)
		b.logger.Debug("buy executed",
			zap.Int("index", i),
			zap.Float64("price", price),
			zap.Float64("quantity", trade.Quantity),
		)
	}

	return b.summarize(strat, ledger, candles, strategyErrors, rejected), nil
}

// summarize values the terminal state at the last close (no forced
// liquidation) and derives the risk statistics from the trade log.
func (b *Backtester) summarize(strat strategy.Strategy, ledger *Ledger, candles []core.Candle, strategyErrors, rejected int) *Result {
	finalPrice := candles[len(candles)-1].Close
	finalValue := ledger.Cash() + ledger.Position()*finalPrice
	profit := finalValue - b.cfg.InitialCash

	mdd, winRate := ComputeMetrics(ledger.Trades(), b.cfg.InitialCash, finalPrice)

	return &Result{
		Strategy:       strat.Name(),
		InitialCash:    b.cfg.InitialCash,
		FinalValue:     round2(finalValue),
		Profit:         round2(profit),
		ROIPercent:     round2(profit / b.cfg.InitialCash * 100),
		MDDPercent:     round2(mdd),
		WinRatePercent: round2(winRate),
		NumTrades:      len(ledger.Trades()),
		StrategyErrors: strategyErrors,
		OrdersRejected: rejected,
		Trades:         ledger.Trades(),
	}
}
