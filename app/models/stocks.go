package models

import (
	"time"

	"gorm.io/gorm"
)

// Stock is one instrument the application tracks; every price row and saved
// analysis hangs off it.
type Stock struct {
	ID          int       `gorm:"primary_key" json:"-"`
	Symbol      string    `gorm:"uniqueIndex" json:"symbol"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// GetStockBySymbol returns the stock registered under symbol
func GetStockBySymbol(symbol string) (*Stock, error) {
	var stock Stock
	if err := DB.Where("Symbol = ?", symbol).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// GetStockByID returns the stock registered under id
func GetStockByID(id int) (*Stock, error) {
	var stock Stock
	if err := DB.First(&stock, id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// AllStocks returns every registered stock, ordered by symbol
func AllStocks() []Stock {
	var stocks []Stock
	DB.Order("symbol").Find(&stocks)
	return stocks
}

// CreateStock registers a stock, updating name and description when the
// symbol already exists
func CreateStock(symbol, name, description string) (*Stock, error) {
	stock, err := GetStockBySymbol(symbol)
	if err == nil {
		stock.Name = name
		stock.Description = description
		if err := DB.Save(stock).Error; err != nil {
			return nil, err
		}
		return stock, nil
	}

	stock = &Stock{Symbol: symbol, Name: name, Description: description}
	if err := DB.Create(stock).Error; err != nil {
		return nil, err
	}
	return stock, nil
}

// DeleteStock removes the stock with all of its prices and saved analyses
func DeleteStock(symbol string) error {
	stock, err := GetStockBySymbol(symbol)
	if err != nil {
		return err
	}

	DeletePrices(stock.ID)
	DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&SavedAnalysis{}, "Symbol = ?", symbol)
	cache.invalidate(symbol)

	return DB.Delete(stock).Error
}
