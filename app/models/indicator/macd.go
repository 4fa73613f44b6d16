package indicator

// Ema returns the exponential moving average of values with the given span,
// using alpha = 2/(span+1) and seeding with the first value. Unlike the
// rolling indicators there is no warm-up gap: every position is defined,
// including index 0.
func Ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// Macd returns the MACD line (fast EMA minus slow EMA), its signal line
// (EMA of the MACD line) and the histogram (line minus signal), all aligned
// with the input and defined from index 0. The fast < slow relationship is
// the caller's contract.
func Macd(values []float64, fast, slow, signal int) (line, signalLine, histogram []float64) {
	emaFast := Ema(values, fast)
	emaSlow := Ema(values, slow)

	line = make([]float64, len(values))
	for i := range values {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signalLine = Ema(line, signal)

	histogram = make([]float64, len(values))
	for i := range values {
		histogram[i] = line[i] - signalLine[i]
	}

	return line, signalLine, histogram
}
