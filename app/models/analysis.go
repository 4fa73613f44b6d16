package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/oarkflow/xid"
)

// SavedAnalysis is a named indicator configuration a user stored for a
// symbol: the date window, which indicators to show, and their parameters.
// MAPeriods keeps the selected moving-average windows as comma-separated
// values.
type SavedAnalysis struct {
	ID         int       `gorm:"primary_key" json:"-"`
	Token      string    `gorm:"uniqueIndex" json:"token"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	StartTime  int64     `json:"start_time"`
	EndTime    int64     `json:"end_time"`
	ChartType  string    `json:"chart_type,omitempty"`
	ShowMA     bool      `json:"show_ma"`
	MAPeriods  string    `json:"ma_periods,omitempty"`
	ShowRSI    bool      `json:"show_rsi"`
	RSIPeriod  int       `json:"rsi_period,omitempty"`
	ShowMACD   bool      `json:"show_macd"`
	MacdFast   int       `json:"macd_fast,omitempty"`
	MacdSlow   int       `json:"macd_slow,omitempty"`
	MacdSignal int       `json:"macd_signal,omitempty"`
	ShowBB     bool      `json:"show_bb"`
	BBPeriod   int       `json:"bb_period,omitempty"`
	BBStd      float64   `json:"bb_std,omitempty"`
	ShowATR    bool      `json:"show_atr"`
	ATRPeriod  int       `json:"atr_period,omitempty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// Save stores the analysis, replacing an existing one with the same name and
// symbol, and stamps a token when the analysis is new
func (sa *SavedAnalysis) Save() error {
	DB.Delete(SavedAnalysis{}, "Name = ? AND Symbol = ?", sa.Name, sa.Symbol)

	if sa.Token == "" {
		sa.Token = xid.New().String()
	}
	return DB.Create(sa).Error
}

// GetAnalysis returns the saved analysis stored under token
func GetAnalysis(token string) (*SavedAnalysis, error) {
	var sa SavedAnalysis
	if err := DB.Where("Token = ?", token).First(&sa).Error; err != nil {
		return nil, err
	}
	return &sa, nil
}

// AnalysesFor returns every saved analysis of symbol, newest first
func AnalysesFor(symbol string) []SavedAnalysis {
	var analyses []SavedAnalysis
	DB.Where("Symbol = ?", symbol).Order("updated_at desc").Find(&analyses)
	return analyses
}

// DeleteAnalysis removes the saved analysis stored under token
func DeleteAnalysis(token string) error {
	return DB.Delete(SavedAnalysis{}, "Token = ?", token).Error
}

// IndicatorConfig converts the stored selection into engine parameters,
// skipping indicators that are switched off
func (sa *SavedAnalysis) IndicatorConfig() IndicatorConfig {
	cfg := IndicatorConfig{}

	if sa.ShowMA {
		cfg.MAPeriods = ParsePeriods(sa.MAPeriods)
	}
	if sa.ShowRSI {
		cfg.RSIPeriod = sa.RSIPeriod
	}
	if sa.ShowMACD {
		cfg.MacdFast = sa.MacdFast
		cfg.MacdSlow = sa.MacdSlow
		cfg.MacdSignal = sa.MacdSignal
	}
	if sa.ShowBB {
		cfg.BBPeriod = sa.BBPeriod
		cfg.BBStd = sa.BBStd
	}
	if sa.ShowATR {
		cfg.ATRPeriod = sa.ATRPeriod
	}

	return cfg
}

// ParsePeriods parses comma-separated window lengths, dropping anything that
// is not a positive integer
func ParsePeriods(csv string) []int {
	var periods []int
	for _, part := range strings.Split(csv, ",") {
		period, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || period < 1 {
			continue
		}
		periods = append(periods, period)
	}
	return periods
}
