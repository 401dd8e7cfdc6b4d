// internal/strategy/factory/factory.go
package factory

import (
	"github.com/Lilium-longiflorum/coin/internal/config"
	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/Lilium-longiflorum/coin/internal/stoploss"
	"github.com/Lilium-longiflorum/coin/internal/strategy"
	"github.com/Lilium-longiflorum/coin/internal/strategy/rsi"
	"github.com/Lilium-longiflorum/coin/internal/strategy/smacross"
)

// New creates a strategy variant based on configuration. Each call
// returns a fresh instance: variants may carry per-run state and must
// not be shared between concurrent runs.
func New(cfg *config.Config) (strategy.Strategy, error) {
	exit := strategy.ExitRules{
		ProfitThreshold: cfg.Exit.ProfitThreshold,
		MinProfitToSell: cfg.Exit.MinProfitToSell,
		LossLimit:       cfg.Exit.LossLimit,
		Detector:        detector(cfg.StopLoss),
	}
	params := strategy.Config{Params: cfg.Strategy.Params}

	switch cfg.Strategy.Name {
	case "rsi":
		return rsi.New(params, exit), nil
	case "smacross":
		return smacross.New(params, exit), nil
	default:
		return nil, core.WrapErrorf(core.ErrUnknownStrategy, "%q", cfg.Strategy.Name)
	}
}

func detector(cfg config.StopLossConfig) *stoploss.Detector {
	if cfg.LookbackCandles > 0 {
		return stoploss.New(cfg.DropThreshold, cfg.LookbackCandles)
	}
	return stoploss.FromWindow(cfg.DropThreshold, cfg.LookbackWindow, cfg.CandleInterval)
}
