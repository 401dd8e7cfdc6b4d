package backtest

import (
	"math"

	"github.com/Lilium-longiflorum/coin/internal/core"
)

// Config holds the run parameters of one backtest.
type Config struct {
	InitialCash float64
	// FeeRate is the flat proportional fee in [0, 1), applied
	// symmetrically: on the buy notional and on sell proceeds.
	FeeRate float64
	// MinBuyNotional and MinSellQuantity are the venue minimums the
	// engine enforces regardless of what the strategy asks for.
	MinBuyNotional  float64
	MinSellQuantity float64
}

// Result is the summary of a finished run. Monetary and percentage
// scalars are rounded to two decimals; the trade log is exact.
type Result struct {
	Strategy       string  `json:"strategy"`
	InitialCash    float64 `json:"initial_cash"`
	FinalValue     float64 `json:"final_value"`
	Profit         float64 `json:"profit"`
	ROIPercent     float64 `json:"roi_percent"`
	MDDPercent     float64 `json:"mdd_percent"`
	WinRatePercent float64 `json:"win_rate_percent"`
	NumTrades      int     `json:"num_trades"`

	// StrategyErrors counts steps degraded to no-action because the
	// strategy's computation failed. OrdersRejected counts orders
	// skipped for falling below a venue minimum.
	StrategyErrors int `json:"strategy_errors"`
	OrdersRejected int `json:"orders_rejected"`

	Trades []core.Trade `json:"trades"`
}

// round2 is the reporting precision for summary scalars.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
