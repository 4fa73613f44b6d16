package models_test

import (
	"github.com/jumpei00/gostockanalysis/app/models"
)

func (suite *ModelsTestSuite) TestStockCRUD() {
	stock, err := models.GetStockBySymbol("VOO")
	suite.Nil(err)
	suite.Equal("Vanguard S&P 500 ETF", stock.Name)

	byID, err := models.GetStockByID(stock.ID)
	suite.Nil(err)
	suite.Equal("VOO", byID.Symbol)

	_, err = models.GetStockBySymbol("DAMY")
	suite.NotNil(err)

	// registering the same symbol again updates instead of duplicating
	updated, err := models.CreateStock("VOO", "Vanguard 500", "index fund")
	suite.Nil(err)
	suite.Equal(stock.ID, updated.ID)
	suite.Equal("index fund", updated.Description)
	suite.Len(models.AllStocks(), 1)

	suite.Nil(models.DeleteStock("VOO"))
	suite.Empty(models.AllStocks())
	suite.Nil(models.GetPriceFrame("VOO", 0, 0))
}

func (suite *ModelsTestSuite) TestLastPriceTime() {
	last, err := models.LastPriceTime(suite.Stock.ID)
	suite.Nil(err)

	frame := models.GetPriceFrame("VOO", 0, 0)
	suite.Equal(frame.Prices[len(frame.Prices)-1].Time, last)
}
