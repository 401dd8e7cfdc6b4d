// Package indicator provides the pure series math the shipped
// strategies are built on. Every function is deterministic and returns
// an empty slice when the input is shorter than its warm-up period.
package indicator

// SMA calculates the Simple Moving Average.
// Result is aligned to the input tail: result[k] covers
// prices[k .. k+period-1], so len(result) = len(prices) - period + 1.
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)

	var sum float64
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			result = append(result, sum/float64(period))
		}
	}

	return result
}

// EMA calculates the Exponential Moving Average, seeded with the SMA
// of the first period values. Alignment matches SMA.
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)
	multiplier := 2.0 / float64(period+1)

	var seed float64
	for i := 0; i < period; i++ {
		seed += prices[i]
	}
	ema := seed / float64(period)
	result = append(result, ema)

	for i := period; i < len(prices); i++ {
		ema += (prices[i] - ema) * multiplier
		result = append(result, ema)
	}

	return result
}

// Last2 returns the final two values of a series. ok is false when the
// series is too short, which callers treat as indicator warm-up.
func Last2(series []float64) (prev, curr float64, ok bool) {
	if len(series) < 2 {
		return 0, 0, false
	}
	return series[len(series)-2], series[len(series)-1], true
}
