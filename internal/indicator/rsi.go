package indicator

// RSI calculates the Relative Strength Index using rolling means of
// gains and losses over the given period. result[k] corresponds to
// prices[k+period], so len(result) = len(prices) - period. A window
// with no losses yields 100; a window with no movement at all yields
// the neutral 50.
func RSI(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period+1 {
		return []float64{}
	}

	// Per-step deltas split into gains and losses.
	gains := make([]float64, len(prices)-1)
	losses := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		if d > 0 {
			gains[i-1] = d
		} else {
			losses[i-1] = -d
		}
	}

	result := make([]float64, 0, len(prices)-period)

	var gainSum, lossSum float64
	for i := range gains {
		gainSum += gains[i]
		lossSum += losses[i]
		if i >= period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period-1 {
			continue
		}
		switch {
		case lossSum == 0 && gainSum == 0:
			result = append(result, 50)
		case lossSum == 0:
			result = append(result, 100)
		default:
			rs := gainSum / lossSum
			result = append(result, 100-100/(1+rs))
		}
	}

	return result
}
