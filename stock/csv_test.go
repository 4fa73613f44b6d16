package stock_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jumpei00/gostockanalysis/stock"
)

func TestValidateCSV(t *testing.T) {
	assert := assert.New(t)

	ok, reason := stock.ValidateCSV(strings.NewReader("Date,Open,High,Low,Close,Volume\n"))
	assert.True(ok)
	assert.Equal("CSV format is valid", reason)

	// lowercase date header is accepted
	ok, _ = stock.ValidateCSV(strings.NewReader("date,Open,High,Low,Close\n"))
	assert.True(ok)

	ok, reason = stock.ValidateCSV(strings.NewReader("Open,High,Low,Close\n"))
	assert.False(ok)
	assert.Equal("missing 'Date' column in the CSV file", reason)

	ok, reason = stock.ValidateCSV(strings.NewReader("Date,Open,Close\n"))
	assert.False(ok)
	assert.Equal("missing required columns: High, Low", reason)

	ok, _ = stock.ValidateCSV(strings.NewReader(""))
	assert.False(ok)
}

func TestLoadCSV(t *testing.T) {
	assert := assert.New(t)

	// rows out of order, quoted thousands separators, no volume column
	csv := strings.Join([]string{
		"Date,Open,High,Low,Close,Volume",
		`2021-01-06,127.72,131.05,126.38,126.60,"155,088,000"`,
		"2021-01-04,133.52,133.61,126.76,129.41,143301900",
		"2021-01-05,128.89,131.74,128.43,131.01,97664900",
	}, "\n")

	q, err := stock.LoadCSV(strings.NewReader(csv), "AAPL")
	assert.Nil(err)
	assert.Equal("AAPL", q.Symbol)
	assert.Len(q.Date, 3)

	// sorted ascending by date
	assert.True(q.Date[0].Before(q.Date[1]))
	assert.True(q.Date[1].Before(q.Date[2]))
	assert.Equal(129.41, q.Close[0])
	assert.Equal(126.60, q.Close[2])
	assert.Equal(155088000.0, q.Volume[2])
}

func TestLoadCSVWithoutVolume(t *testing.T) {
	assert := assert.New(t)

	csv := "date,Open,High,Low,Close\n2021-01-04,10,11,9,10.5\n"
	q, err := stock.LoadCSV(strings.NewReader(csv), "VOO")
	assert.Nil(err)
	assert.Equal(10.5, q.Close[0])
	assert.Equal(0.0, q.Volume[0])
}

func TestLoadCSVErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := stock.LoadCSV(strings.NewReader("Date,Open,High,Low,Close\n"), "VOO")
	assert.NotNil(err)

	_, err = stock.LoadCSV(strings.NewReader("Date,Open,Close\n2021-01-04,10,10\n"), "VOO")
	assert.NotNil(err)

	_, err = stock.LoadCSV(strings.NewReader("Date,Open,High,Low,Close\nnot-a-date,10,11,9,10\n"), "VOO")
	assert.NotNil(err)

	_, err = stock.LoadCSV(strings.NewReader("Date,Open,High,Low,Close\n2021-01-04,ten,11,9,10\n"), "VOO")
	assert.NotNil(err)
}
