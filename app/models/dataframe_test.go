package models_test

import (
	"github.com/jumpei00/gostockanalysis/app/models"
)

func (suite *ModelsTestSuite) TestDataFrame() {
	dframe := models.NewDataFrame()
	suite.Nil(dframe.PriceFrame)
	suite.Nil(dframe.IndicatorFrame)
	suite.Nil(dframe.StatsFrame)
	suite.Nil(dframe.AnalysisFrame)

	dframe.AddPriceFrame("VOO", 0, 0)
	suite.Equal("VOO", dframe.PriceFrame.Symbol)
	suite.Len(dframe.PriceFrame.Prices, len(testCloses))
	suite.Equal(testCloses, dframe.PriceFrame.Closes())
	suite.Len(dframe.PriceFrame.Opens(), len(testCloses))
	suite.Len(dframe.PriceFrame.Volumes(), len(testCloses))
}

func (suite *ModelsTestSuite) TestPriceFrameWindow() {
	full := models.GetPriceFrame("VOO", 0, 0)
	suite.Require().Len(full.Prices, len(testCloses))

	start := full.Prices[2].Time
	end := full.Prices[5].Time
	windowed := models.GetPriceFrame("VOO", start, end)

	suite.Len(windowed.Prices, 4)
	suite.Equal(testCloses[2:6], windowed.Closes())

	// a window after the last bar is a legitimate empty frame
	after := models.GetPriceFrame("VOO", full.Prices[9].Time+1, 0)
	suite.Empty(after.Prices)

	// unknown symbols have no frame at all
	suite.Nil(models.GetPriceFrame("DAMY", 0, 0))
}

func (suite *ModelsTestSuite) TestComputeIndicators() {
	pframe := models.GetPriceFrame("VOO", 0, 0)
	cfg := models.IndicatorConfig{
		MAPeriods:  []int{3},
		RSIPeriod:  3,
		MacdFast:   3,
		MacdSlow:   6,
		MacdSignal: 4,
		BBPeriod:   3,
		BBStd:      2,
		ATRPeriod:  3,
	}

	iframe := pframe.ComputeIndicators(cfg)

	suite.Require().Len(iframe.MAs, 1)
	ma := iframe.MAs[0]
	suite.Len(ma.Values, len(testCloses))
	suite.False(ma.Values[0].Valid)
	suite.False(ma.Values[1].Valid)
	suite.Equal(11.0, ma.Values[2].Float64)
	suite.Equal(12.0, ma.Values[9].Float64)

	// the first defined RSI position is index window
	suite.Require().NotNil(iframe.Rsi)
	suite.False(iframe.Rsi.Values[2].Valid)
	suite.True(iframe.Rsi.Values[3].Valid)

	suite.Require().NotNil(iframe.Macd)
	suite.Len(iframe.Macd.Line, len(testCloses))
	suite.Equal(0.0, iframe.Macd.Line[0])
	for i := range iframe.Macd.Line {
		suite.Equal(iframe.Macd.Line[i]-iframe.Macd.SignalVal[i], iframe.Macd.Histogram[i])
	}

	// the middle band is the moving average with the same window
	suite.Require().NotNil(iframe.BB)
	suite.Equal(ma.Values, iframe.BB.Middle)

	suite.Require().NotNil(iframe.Atr)
	suite.Len(iframe.Atr.Values, len(testCloses))
	suite.False(iframe.Atr.Values[1].Valid)
	suite.True(iframe.Atr.Values[2].Valid)

	// same input, same output on repeated calls
	suite.Equal(iframe, pframe.ComputeIndicators(cfg))

	// the frame's prices are only read
	suite.Equal(testCloses, pframe.Closes())
}

func (suite *ModelsTestSuite) TestComputeIndicatorsDegenerateWindow() {
	pframe := models.GetPriceFrame("VOO", 0, 0)

	// a window longer than the series is all nulls, not an error
	iframe := pframe.ComputeIndicators(models.IndicatorConfig{MAPeriods: []int{100}})
	suite.Require().Len(iframe.MAs, 1)
	for _, v := range iframe.MAs[0].Values {
		suite.False(v.Valid)
	}
}

func (suite *ModelsTestSuite) TestStatsFrame() {
	dframe := models.NewDataFrame()
	dframe.AddPriceFrame("VOO", 0, 0)
	dframe.AddStatsFrame()

	suite.Require().NotNil(dframe.StatsFrame)
	stats, ok := dframe.StatsFrame.Stats["close"]
	suite.True(ok)
	suite.Equal(len(testCloses), stats.Count)
	suite.Equal(9.0, stats.Min)
	suite.Equal(13.0, stats.Max)
	suite.Equal(10.9, stats.Mean)
	suite.Equal(11.0, stats.Median)
	suite.Equal(10.0, stats.Q25)
	suite.Equal(11.75, stats.Q75)
	suite.Equal(1.2, stats.Std)
}
