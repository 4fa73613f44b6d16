package indicator

import "math"

// StdDev returns the rolling standard deviation of values over window, with
// the same undefined prefix as Sma. The sample convention (N-1 denominator)
// is used; a window below 2 has no degrees of freedom and yields an entirely
// undefined column.
func StdDev(values []float64, window int) Series {
	out := undefined(len(values))
	if window < 2 || window > len(values) {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		win := values[i-window+1 : i+1]

		mean := 0.0
		for _, v := range win {
			mean += v
		}
		mean /= float64(window)

		ss := 0.0
		for _, v := range win {
			d := v - mean
			ss += d * d
		}

		out[i] = Defined(math.Sqrt(ss / float64(window-1)))
	}

	return out
}

// BollingerBands returns the upper, middle and lower bands of values over
// window. The middle band is exactly Sma(values, window); the outer bands
// sit numStd rolling standard deviations away from it. All three columns
// share the rolling-mean undefined prefix.
func BollingerBands(values []float64, window int, numStd float64) (upper, middle, lower Series) {
	middle = Sma(values, window)
	std := StdDev(values, window)

	upper = undefined(len(values))
	lower = undefined(len(values))
	for i := range middle {
		if !middle[i].Valid || !std[i].Valid {
			continue
		}
		upper[i] = Defined(middle[i].Float64 + numStd*std[i].Float64)
		lower[i] = Defined(middle[i].Float64 - numStd*std[i].Float64)
	}

	return upper, middle, lower
}
