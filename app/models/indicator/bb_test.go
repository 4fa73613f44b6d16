package indicator_test

import (
	"math"
	"testing"

	"github.com/jumpei00/gostockanalysis/app/models/indicator"
	"github.com/stretchr/testify/assert"
)

func TestStdDevSampleConvention(t *testing.T) {
	assert := assert.New(t)

	closes := []float64{2, 4, 6, 8}
	std := indicator.StdDev(closes, 3)

	assert.False(std[0].Valid)
	assert.False(std[1].Valid)

	// sample std of (2, 4, 6) = sqrt(((2-4)^2+(0)^2+(2)^2)/2) = 2
	assert.True(std[2].Valid)
	assert.InDelta(2.0, std[2].Float64, 1e-12)
	assert.InDelta(2.0, std[3].Float64, 1e-12)
}

func TestStdDevWindowOneHasNoFreedom(t *testing.T) {
	assert := assert.New(t)

	for _, v := range indicator.StdDev([]float64{1, 2, 3}, 1) {
		assert.False(v.Valid)
	}
}

func TestBollingerBands(t *testing.T) {
	assert := assert.New(t)

	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13}
	window, numStd := 3, 2.0
	upper, middle, lower := indicator.BollingerBands(closes, window, numStd)

	sma := indicator.Sma(closes, window)
	std := indicator.StdDev(closes, window)

	assert.Len(upper, len(closes))
	assert.Len(middle, len(closes))
	assert.Len(lower, len(closes))

	for i := range closes {
		assert.Equal(sma[i], middle[i])
		if i < window-1 {
			assert.False(upper[i].Valid)
			assert.False(lower[i].Valid)
			continue
		}
		assert.True(upper[i].Valid)
		assert.True(lower[i].Valid)
		// band width is 2 * numStd * std
		assert.InDelta(2*numStd*std[i].Float64, upper[i].Float64-lower[i].Float64, 1e-12)
		assert.InDelta(middle[i].Float64+numStd*std[i].Float64, upper[i].Float64, 1e-12)
	}
}

func TestBollingerBandsConstantSeries(t *testing.T) {
	assert := assert.New(t)

	flat := []float64{5, 5, 5, 5, 5}
	upper, middle, lower := indicator.BollingerBands(flat, 3, 2)

	for i := 2; i < len(flat); i++ {
		assert.Equal(5.0, middle[i].Float64)
		assert.Equal(5.0, upper[i].Float64)
		assert.Equal(5.0, lower[i].Float64)
		assert.False(math.Signbit(upper[i].Float64 - lower[i].Float64))
	}
}
