package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lilium-longiflorum/coin/internal/config"
	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/Lilium-longiflorum/coin/internal/dataset"
	"github.com/Lilium-longiflorum/coin/internal/executor"
	"github.com/Lilium-longiflorum/coin/internal/logger"
	"github.com/Lilium-longiflorum/coin/internal/metrics"
	"github.com/Lilium-longiflorum/coin/internal/strategy"
	"github.com/Lilium-longiflorum/coin/internal/strategy/factory"
)

var (
	replayData  string
	replayDelay time.Duration
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay candles through a paper trading account",
	Long: `Feed a candle CSV through the configured strategy against a
simulated account, order by order, optionally paced and with live
Prometheus metrics. Useful for observing how a strategy behaves
before pointing it at a real venue.`,
	RunE: runReplayCmd,
}

func init() {
	replayCmd.Flags().StringVar(&replayData, "data", "", "candle CSV file (required)")
	replayCmd.Flags().DurationVar(&replayDelay, "delay", 0, "pause between candles")

	replayCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(replayCmd)
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Must(debug)
	defer log.Sync()

	candles, err := dataset.LoadCSV(replayData)
	if err != nil {
		return err
	}
	if err := core.ValidateCandles(candles); err != nil {
		return err
	}

	strat, err := factory.New(cfg)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	if cfg.Metrics.Enabled {
		serveMetrics(cfg.Metrics, reg, log)
	}

	paper := executor.NewPaper(
		cfg.Backtest.InitialCash,
		cfg.Backtest.FeeRate,
		executor.Limits{
			MinBuyNotional:  cfg.Backtest.MinBuyNotional,
			MinSellQuantity: cfg.Backtest.MinSellQuantity,
		},
		log,
	)

	ctx := cmd.Context()
	for i := range candles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		window := candles[:i+1]
		price := candles[i].Close
		acct := paper.Account()
		reg.RecordCandle()
		reg.SetPortfolioValue(acct.Value(price))

		sctx := strategy.Context{
			CurrentPrice: price,
			AvgBuyPrice:  acct.AvgBuyPrice,
			Position:     acct.Position,
		}

		decision, err := strat.ShouldSell(window, sctx)
		if err != nil {
			reg.RecordStrategyError()
			log.Warn("sell evaluation failed", zap.Int("index", i), zap.Error(err))
			sleep(ctx, replayDelay)
			continue
		}

		if decision.Sell && acct.Position > 0 {
			quantity := min(strat.SellAmount(acct.Position, price, decision.Strength), acct.Position)
			order, err := paper.Sell(ctx, candles[i].Time, price, quantity, decision.Reason)
			if err != nil {
				reg.RecordRejection()
				log.Debug("sell rejected", zap.Int("index", i), zap.Error(err))
			} else {
				reg.RecordTrade(string(order.Side), string(order.Reason))
			}
			sleep(ctx, replayDelay)
			continue
		}

		act, strength, err := strat.ShouldBuy(window)
		if err != nil {
			reg.RecordStrategyError()
			log.Warn("buy evaluation failed", zap.Int("index", i), zap.Error(err))
			sleep(ctx, replayDelay)
			continue
		}
		if act && acct.Cash > 0 {
			notional := min(strat.BuyAmount(acct.Cash, price, strength), acct.Cash)
			order, err := paper.Buy(ctx, candles[i].Time, price, notional, core.ReasonStrategySignal)
			if err != nil {
				reg.RecordRejection()
				log.Debug("buy rejected", zap.Int("index", i), zap.Error(err))
			} else {
				reg.RecordTrade(string(order.Side), string(order.Reason))
			}
		}

		sleep(ctx, replayDelay)
	}

	finalPrice := candles[len(candles)-1].Close
	acct := paper.Account()
	reg.SetPortfolioValue(acct.Value(finalPrice))

	fmt.Println("=== Replay Result ===")
	fmt.Printf("Strategy:    %s (%s)\n", strat.Name(), strat.Description())
	fmt.Printf("Cash:        %.2f\n", acct.Cash)
	fmt.Printf("Position:    %.8f\n", acct.Position)
	fmt.Printf("Final value: %.2f\n", acct.Value(finalPrice))
	fmt.Printf("Orders:      %d\n", len(paper.Orders()))
	return nil
}

func serveMetrics(cfg config.MetricsConfig, reg *metrics.Registry, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, reg.Handler())

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("metrics endpoint listening",
			zap.String("addr", cfg.Addr),
			zap.String("path", cfg.Path),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics endpoint failed", zap.Error(err))
		}
	}()
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
