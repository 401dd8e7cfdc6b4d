// Package stoploss detects sharp adverse price moves over a short
// lookback window.
package stoploss

import "time"

// minLookback is the smallest window that can express a decline.
const minLookback = 2

// Detector flags a sharp decline of the close price over its lookback
// window. It compares only the window's endpoints, so a drop that
// fully recovers inside the window is not flagged.
type Detector struct {
	dropThreshold float64 // percent, negative (e.g. -3.0 means -3%)
	lookback      int     // number of closes considered, >= 2
}

// New creates a Detector. lookback values below 2 are raised to 2.
func New(dropThreshold float64, lookback int) *Detector {
	if lookback < minLookback {
		lookback = minLookback
	}
	return &Detector{
		dropThreshold: dropThreshold,
		lookback:      lookback,
	}
}

// FromWindow derives the lookback from a wall-clock window and the
// candle interval, e.g. 15 minutes of 1-minute candles gives 15.
func FromWindow(dropThreshold float64, window, interval time.Duration) *Detector {
	lookback := minLookback
	if interval > 0 {
		lookback = int(window / interval)
	}
	return New(dropThreshold, lookback)
}

// Lookback returns the number of closes the detector considers.
func (d *Detector) Lookback() int {
	return d.lookback
}

// IsSharpDecline reports whether the percentage change from the first
// to the last of the most recent lookback closes is at or below the
// drop threshold. With fewer than lookback points it returns false:
// insufficient data never signals.
func (d *Detector) IsSharpDecline(closes []float64) bool {
	if len(closes) < d.lookback {
		return false
	}

	recent := closes[len(closes)-d.lookback:]
	first, last := recent[0], recent[len(recent)-1]
	if first == 0 {
		return false
	}

	dropPct := (last - first) / first * 100
	return dropPct <= d.dropThreshold
}
