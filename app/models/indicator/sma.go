package indicator

// Sma returns the simple moving average of values over window. Position i is
// the arithmetic mean of values[i-window+1 .. i] and stays undefined until a
// full window of history exists, so the first window-1 positions are null.
// A window of 1 reproduces the input; a window larger than the series yields
// an entirely undefined column.
func Sma(values []float64, window int) Series {
	out := undefined(len(values))
	if window < 1 || window > len(values) {
		return out
	}

	if window == 1 {
		for i, v := range values {
			out[i] = Defined(v)
		}
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = Defined(sum / float64(window))
		}
	}

	return out
}
