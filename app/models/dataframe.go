package models

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jumpei00/gostockanalysis/app/models/indicator"
)

// DataFrame is data frame including prices, indicator columns, statistics
// and saved analyses
type DataFrame struct {
	*PriceFrame
	*IndicatorFrame
	*StatsFrame
	*AnalysisFrame
}

// NewDataFrame is constructor of DataFrame
func NewDataFrame() *DataFrame {
	return &DataFrame{}
}

// AddPriceFrame adds PriceFrame in DataFrame
func (dframe *DataFrame) AddPriceFrame(symbol string, start, end int64) {
	dframe.PriceFrame = GetPriceFrame(symbol, start, end)
}

// AddIndicatorFrame adds IndicatorFrame in DataFrame, computed over the
// frame's own price window. Without a price frame nothing is added.
func (dframe *DataFrame) AddIndicatorFrame(cfg IndicatorConfig) {
	if dframe.PriceFrame == nil {
		logrus.Warn("indicator frame requested without a price frame")
		return
	}
	dframe.IndicatorFrame = dframe.PriceFrame.ComputeIndicators(cfg)
}

// AddStatsFrame adds StatsFrame in DataFrame
func (dframe *DataFrame) AddStatsFrame() {
	if dframe.PriceFrame == nil {
		return
	}
	dframe.StatsFrame = dframe.PriceFrame.Describe()
}

// AddAnalysisFrame adds AnalysisFrame in DataFrame
func (dframe *DataFrame) AddAnalysisFrame(symbol string) {
	analyses := AnalysesFor(symbol)
	if len(analyses) == 0 {
		dframe.AnalysisFrame = &AnalysisFrame{}
		return
	}
	dframe.AnalysisFrame = &AnalysisFrame{Analyses: analyses}
}

// AnalysisFrame is saved analyses data frame
type AnalysisFrame struct {
	Analyses []SavedAnalysis `json:"analyses,omitempty"`
}

// PriceFrame is price data frame
type PriceFrame struct {
	Symbol string       `json:"symbol,omitempty"`
	Prices []StockPrice `json:"prices,omitempty"`
}

// Opens is open prices of bars
func (pframe *PriceFrame) Opens() []float64 {
	open := make([]float64, len(pframe.Prices))
	for i, price := range pframe.Prices {
		open[i] = price.Open
	}
	return open
}

// Highs is high prices of bars
func (pframe *PriceFrame) Highs() []float64 {
	high := make([]float64, len(pframe.Prices))
	for i, price := range pframe.Prices {
		high[i] = price.High
	}
	return high
}

// Lows is low prices of bars
func (pframe *PriceFrame) Lows() []float64 {
	low := make([]float64, len(pframe.Prices))
	for i, price := range pframe.Prices {
		low[i] = price.Low
	}
	return low
}

// Closes is close prices of bars
func (pframe *PriceFrame) Closes() []float64 {
	close := make([]float64, len(pframe.Prices))
	for i, price := range pframe.Prices {
		close[i] = price.Close
	}
	return close
}

// Volumes is volumes of bars
func (pframe *PriceFrame) Volumes() []float64 {
	volume := make([]float64, len(pframe.Prices))
	for i, price := range pframe.Prices {
		volume[i] = price.Volume
	}
	return volume
}

// IndicatorConfig selects which indicator columns to compute and with which
// parameters. Zero values switch an indicator off; MACD needs all three
// periods.
type IndicatorConfig struct {
	MAPeriods  []int
	RSIPeriod  int
	MacdFast   int
	MacdSlow   int
	MacdSignal int
	BBPeriod   int
	BBStd      float64
	ATRPeriod  int
}

// MAColumn is one moving average column
type MAColumn struct {
	Period int              `json:"period"`
	Values indicator.Series `json:"values"`
}

// RsiColumn is the relative strength index column
type RsiColumn struct {
	Period int              `json:"period"`
	Values indicator.Series `json:"values"`
}

// MacdColumn is the three MACD columns; all are dense, defined from the
// first bar on
type MacdColumn struct {
	Fast      int       `json:"fast"`
	Slow      int       `json:"slow"`
	Signal    int       `json:"signal"`
	Line      []float64 `json:"line"`
	SignalVal []float64 `json:"signal_line"`
	Histogram []float64 `json:"histogram"`
}

// BollingerColumn is the three Bollinger band columns
type BollingerColumn struct {
	Period int              `json:"period"`
	Std    float64          `json:"std"`
	Upper  indicator.Series `json:"upper"`
	Middle indicator.Series `json:"middle"`
	Lower  indicator.Series `json:"lower"`
}

// AtrColumn is the average true range column
type AtrColumn struct {
	Period int              `json:"period"`
	Values indicator.Series `json:"values"`
}

// IndicatorFrame is indicator columns data frame, every column aligned 1:1
// with the price frame it was computed from
type IndicatorFrame struct {
	MAs  []MAColumn       `json:"ma,omitempty"`
	Rsi  *RsiColumn       `json:"rsi,omitempty"`
	Macd *MacdColumn      `json:"macd,omitempty"`
	BB   *BollingerColumn `json:"bollinger,omitempty"`
	Atr  *AtrColumn       `json:"atr,omitempty"`
}

// ComputeIndicators runs the engine over the frame's closes (and highs/lows
// for ATR) and merges the outputs into an IndicatorFrame. The prices are
// only read; parameters larger than the window simply produce all-null
// columns.
func (pframe *PriceFrame) ComputeIndicators(cfg IndicatorConfig) *IndicatorFrame {
	iframe := &IndicatorFrame{}
	closes := pframe.Closes()

	for _, period := range cfg.MAPeriods {
		iframe.MAs = append(iframe.MAs, MAColumn{
			Period: period,
			Values: indicator.Sma(closes, period),
		})
	}

	if cfg.RSIPeriod > 0 {
		iframe.Rsi = &RsiColumn{
			Period: cfg.RSIPeriod,
			Values: indicator.Rsi(closes, cfg.RSIPeriod),
		}
	}

	if cfg.MacdFast > 0 && cfg.MacdSlow > 0 && cfg.MacdSignal > 0 {
		line, signal, histogram := indicator.Macd(closes, cfg.MacdFast, cfg.MacdSlow, cfg.MacdSignal)
		iframe.Macd = &MacdColumn{
			Fast:      cfg.MacdFast,
			Slow:      cfg.MacdSlow,
			Signal:    cfg.MacdSignal,
			Line:      line,
			SignalVal: signal,
			Histogram: histogram,
		}
	}

	if cfg.BBPeriod > 0 {
		upper, middle, lower := indicator.BollingerBands(closes, cfg.BBPeriod, cfg.BBStd)
		iframe.BB = &BollingerColumn{
			Period: cfg.BBPeriod,
			Std:    cfg.BBStd,
			Upper:  upper,
			Middle: middle,
			Lower:  lower,
		}
	}

	if cfg.ATRPeriod > 0 {
		iframe.Atr = &AtrColumn{
			Period: cfg.ATRPeriod,
			Values: indicator.Atr(pframe.Highs(), pframe.Lows(), closes, cfg.ATRPeriod),
		}
	}

	return iframe
}

// ColumnStats is a describe()-style summary of one price column
type ColumnStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// StatsFrame is summary statistics data frame, one entry per OHLCV column
type StatsFrame struct {
	Stats map[string]ColumnStats `json:"stats,omitempty"`
}

// Describe summarizes the frame's OHLCV columns
func (pframe *PriceFrame) Describe() *StatsFrame {
	if len(pframe.Prices) == 0 {
		return &StatsFrame{}
	}

	return &StatsFrame{Stats: map[string]ColumnStats{
		"open":   describe(pframe.Opens()),
		"high":   describe(pframe.Highs()),
		"low":    describe(pframe.Lows()),
		"close":  describe(pframe.Closes()),
		"volume": describe(pframe.Volumes()),
	}}
}

func describe(values []float64) ColumnStats {
	n := len(values)

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	std := 0.0
	if n > 1 {
		ss := 0.0
		for _, v := range values {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return ColumnStats{
		Count:  n,
		Mean:   round2(mean),
		Std:    round2(std),
		Min:    round2(sorted[0]),
		Q25:    round2(quantile(sorted, 0.25)),
		Median: round2(quantile(sorted, 0.5)),
		Q75:    round2(quantile(sorted, 0.75)),
		Max:    round2(sorted[n-1]),
	}
}

// quantile interpolates linearly between the two nearest ranks of an
// ascending slice
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
