package models

import (
	"math"

	"github.com/markcheno/go-quote"
	"gorm.io/gorm"
)

// Prices is slice of StockPrice
// Using this, create price data in database
type Prices []StockPrice

// StockPrice is one daily bar of a stock, also used as json
type StockPrice struct {
	ID      int     `json:"-"`
	StockID int     `gorm:"index" json:"-"`
	Time    int64   `json:"time"`
	Open    float64 `json:"open"`
	High    float64 `json:"high"`
	Low     float64 `json:"low"`
	Close   float64 `json:"close"`
	Volume  float64 `json:"volume"`
}

// NewPricesFromQuote converts Quote to slice of StockPrice due to creating in database,
// ex) [Date[1, 2, 3...], Open[1, 2, 3...]...] → [[Date[1], Open[1]...], [Date[2], Open[2]...]...]
// and return pointer of Prices(used as constructor)
// Because of using for frontend, this method also converts time to Unixtime
func NewPricesFromQuote(stockID int, q *quote.Quote) *Prices {
	prices := Prices{}
	for i := 0; i < len(q.Date); i++ {
		prices = append(prices, StockPrice{
			StockID: stockID,
			Time:    q.Date[i].Unix() * 1000,
			Open:    (math.Round(q.Open[i]*100) / 100),
			High:    (math.Round(q.High[i]*100) / 100),
			Low:     (math.Round(q.Low[i]*100) / 100),
			Close:   (math.Round(q.Close[i]*100) / 100),
			Volume:  (math.Round(q.Volume[i]*100) / 100),
		})
	}

	return &prices
}

// CreatePrices creates price data
func (ps *Prices) CreatePrices() {
	DB.Create(ps)
}

// DeletePrices deletes all price data of a stock
func DeletePrices(stockID int) {
	DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&StockPrice{}, "stock_id = ?", stockID)
}

// LastPriceTime returns the time of the newest bar of a stock
func LastPriceTime(stockID int) (int64, error) {
	var price StockPrice
	if err := DB.Where("stock_id = ?", stockID).Order("time desc").First(&price).Error; err != nil {
		return 0, err
	}
	return price.Time, nil
}

// GetPriceFrame gets the bars of symbol between start and end (unix ms,
// inclusive) ascending by time, and returns the frame stored in data.
// An end of 0 means no upper bound. Unknown symbols return nil.
func GetPriceFrame(symbol string, start, end int64) *PriceFrame {
	if end <= 0 {
		end = math.MaxInt64
	}

	prices, ok := cache.rangeOf(symbol, start, end)
	if !ok {
		stock, err := GetStockBySymbol(symbol)
		if err != nil {
			return nil
		}

		var all Prices
		DB.Where("stock_id = ?", stock.ID).Order("time asc").Find(&all)
		cache.fill(symbol, all)
		prices, _ = cache.rangeOf(symbol, start, end)
	}

	return &PriceFrame{Symbol: symbol, Prices: prices}
}
