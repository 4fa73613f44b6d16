package indicator_test

import (
	"testing"

	"github.com/jumpei00/gostockanalysis/app/models/indicator"
	"github.com/stretchr/testify/assert"
)

func TestEmaSeed(t *testing.T) {
	assert := assert.New(t)

	closes := []float64{10, 11, 12, 11, 10}
	ema := indicator.Ema(closes, 3)

	assert.Len(ema, len(closes))
	assert.Equal(closes[0], ema[0])

	// alpha = 2/(3+1) = 0.5
	assert.InDelta(10.5, ema[1], 1e-12)
	assert.InDelta(11.25, ema[2], 1e-12)
}

func TestEmaEmpty(t *testing.T) {
	assert.Empty(t, indicator.Ema(nil, 12))
}

func TestMacdAlignment(t *testing.T) {
	assert := assert.New(t)

	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13, 12, 14}
	line, signal, histogram := indicator.Macd(closes, 3, 6, 4)

	assert.Len(line, len(closes))
	assert.Len(signal, len(closes))
	assert.Len(histogram, len(closes))

	// every position is defined from index 0, and both EMAs share the same
	// seed so the line starts at zero
	assert.Equal(0.0, line[0])
	assert.Equal(0.0, histogram[0])

	for i := range closes {
		assert.Equal(line[i]-signal[i], histogram[i])
	}
}

func TestMacdConstantSeries(t *testing.T) {
	assert := assert.New(t)

	flat := []float64{5, 5, 5, 5, 5, 5}
	line, signal, histogram := indicator.Macd(flat, 2, 4, 3)

	for i := range flat {
		assert.Equal(0.0, line[i])
		assert.Equal(0.0, signal[i])
		assert.Equal(0.0, histogram[i])
	}
}
