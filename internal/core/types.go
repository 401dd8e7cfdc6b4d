package core

import (
	"math"
	"time"
)

// Side is the direction of an executed trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Reason explains why a trade (or a decision not to trade) happened.
type Reason string

const (
	ReasonTakeProfit     Reason = "take_profit"
	ReasonStopLoss       Reason = "stop_loss"
	ReasonSharpDecline   Reason = "sharp_decline"
	ReasonStrategySignal Reason = "strategy_signal"
	ReasonNone           Reason = "none"
)

// Candle represents one OHLCV observation for a fixed interval.
// Close is the only field the shipped strategies read; the rest are
// carried for strategies that need them.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Trade is one executed fill, appended to the run's trade log.
// The log is append-only and ordered by Index; it is the sole input
// to the summary metrics.
type Trade struct {
	Index    int       `json:"index"`
	Time     time.Time `json:"time"`
	Side     Side      `json:"side"`
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	Reason   Reason    `json:"reason"`
}

// Notional returns the quote-currency value of the fill at its price.
func (t Trade) Notional() float64 {
	return t.Price * t.Quantity
}

// ValidateCandles checks that a candle series is usable as a
// simulation input: non-empty, strictly increasing unique timestamps,
// and finite positive close prices. A failure here is fatal for the
// run; the engine never proceeds on corrupt input.
func ValidateCandles(candles []Candle) error {
	if len(candles) == 0 {
		return WrapErrorf(ErrInvalidData, "empty candle series")
	}
	for i, c := range candles {
		if math.IsNaN(c.Close) || math.IsInf(c.Close, 0) || c.Close <= 0 {
			return WrapErrorf(ErrInvalidData, "candle %d: non-finite or non-positive close %v", i, c.Close)
		}
		if i > 0 && !candles[i-1].Time.Before(c.Time) {
			return WrapErrorf(ErrInvalidData, "candle %d: timestamp %s not after %s",
				i, c.Time.Format(time.RFC3339), candles[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close-price series from a candle window.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
