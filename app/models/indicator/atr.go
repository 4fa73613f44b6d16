package indicator

import "math"

// TrueRange returns the per-bar true range: the largest of the bar's own
// range and the two gaps against the previous close. There is no previous
// close at index 0, so the first bar's true range is its own high-low range.
func TrueRange(high, low, close []float64) []float64 {
	n := len(high)
	if len(low) < n {
		n = len(low)
	}
	if len(close) < n {
		n = len(close)
	}

	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		if i == 0 {
			tr[i] = high[i] - low[i]
			continue
		}
		tr[i] = math.Max(high[i]-low[i],
			math.Max(math.Abs(high[i]-close[i-1]), math.Abs(low[i]-close[i-1])))
	}

	return tr
}

// Atr returns the average true range: the rolling mean of TrueRange over
// window, undefined for the first window-1 positions.
func Atr(high, low, close []float64, window int) Series {
	return Sma(TrueRange(high, low, close), window)
}
