package indicator

// Rsi returns the relative strength index of values over window, built from
// simple rolling means of the one-day gains and losses. The delta at index 0
// does not exist, so a full window of deltas is first available at index
// window; everything before that is undefined.
//
// A window holding gains but no losses saturates at 100, losses but no gains
// pins 0. A fully flat window is the 0/0 case and stays undefined.
func Rsi(values []float64, window int) Series {
	out := undefined(len(values))
	if window < 1 || window >= len(values) {
		return out
	}

	for i := window; i < len(values); i++ {
		gain, loss := 0.0, 0.0
		for j := i - window + 1; j <= i; j++ {
			delta := values[j] - values[j-1]
			if delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}

		avgGain := gain / float64(window)
		avgLoss := loss / float64(window)

		switch {
		case avgGain == 0 && avgLoss == 0:
			// flat window, undefined
		case avgLoss == 0:
			out[i] = Defined(100)
		default:
			rs := avgGain / avgLoss
			out[i] = Defined(100 - 100/(1+rs))
		}
	}

	return out
}
