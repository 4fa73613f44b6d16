package stock

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/markcheno/go-quote"
	"github.com/oarkflow/convert"
	"github.com/oarkflow/errors"
	"github.com/oarkflow/log"

	"github.com/jumpei00/gostockanalysis/app/models"
)

// requiredColumns are the price columns a CSV must carry; the date column may
// be spelled "Date" or "date" and Volume is optional.
var requiredColumns = []string{"Open", "High", "Low", "Close"}

type bar struct {
	date   time.Time
	open   float64
	high   float64
	low    float64
	close  float64
	volume float64
}

// ValidateCSV checks whether the header row has a date column and all
// required price columns, returning the reason when it does not
func ValidateCSV(r io.Reader) (bool, string) {
	header, err := csv.NewReader(r).Read()
	if err != nil {
		return false, fmt.Sprintf("error validating CSV file: %v", err)
	}

	col := columnIndex(header)
	if _, ok := dateColumn(col); !ok {
		return false, "missing 'Date' column in the CSV file"
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return false, fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return true, "CSV format is valid"
}

// LoadCSV parses daily bars for symbol out of r and returns them as a Quote
// sorted ascending by date. Numeric fields may carry thousands separators.
func LoadCSV(r io.Reader, symbol string) (*quote.Quote, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.NewE(err, "unable to read csv", "")
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	col := columnIndex(records[0])
	dateCol, ok := dateColumn(col)
	if !ok {
		return nil, errors.New("missing 'Date' column in the CSV file")
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, errors.New(fmt.Sprintf("missing required column: %s", name))
		}
	}
	volumeCol, hasVolume := col["Volume"]

	bars := make([]bar, 0, len(records)-1)
	for _, record := range records[1:] {
		date, err := dateparse.ParseAny(record[dateCol])
		if err != nil {
			return nil, errors.NewE(err, "date column format is invalid", "")
		}

		b := bar{date: date}
		if b.open, err = parseField(record[col["Open"]]); err != nil {
			return nil, err
		}
		if b.high, err = parseField(record[col["High"]]); err != nil {
			return nil, err
		}
		if b.low, err = parseField(record[col["Low"]]); err != nil {
			return nil, err
		}
		if b.close, err = parseField(record[col["Close"]]); err != nil {
			return nil, err
		}
		if hasVolume {
			if b.volume, err = parseField(record[volumeCol]); err != nil {
				return nil, err
			}
		}

		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].date.Before(bars[j].date) })

	qt := quote.NewQuote(symbol, len(bars))
	for i, b := range bars {
		qt.Date[i] = b.date
		qt.Open[i] = b.open
		qt.High[i] = b.high
		qt.Low[i] = b.low
		qt.Close[i] = b.close
		qt.Volume[i] = b.volume
	}

	log.Info().Str("symbol", symbol).Int("rows", len(bars)).Msg("csv loaded")
	return &qt, nil
}

// LoadCSVFile loads daily bars for symbol from a CSV file on disk
func LoadCSVFile(path, symbol string) (*quote.Quote, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewE(err, fmt.Sprintf("file: %s not found or unable to open file", path), "")
	}
	defer file.Close()

	return LoadCSV(file, symbol)
}

// Ingest replaces the stored bars of symbol with the quote's bars, upserting
// the stock row and dropping the cached series
func Ingest(symbol, name string, q *quote.Quote) (*models.Stock, error) {
	st, err := models.CreateStock(symbol, name, "")
	if err != nil {
		return nil, errors.NewE(err, "unable to register stock", "")
	}

	models.DeletePrices(st.ID)
	models.NewPricesFromQuote(st.ID, q).CreatePrices()
	models.FlushPriceCache(symbol)

	log.Info().Str("symbol", symbol).Int("rows", len(q.Date)).Msg("prices stored")
	return st, nil
}

// InitSampleData loads every CSV under dir, using the file name (without
// extension) as the ticker symbol, and rebuilds the search index. Files that
// fail to parse are skipped with a log line.
func InitSampleData(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.NewE(err, fmt.Sprintf("unable to read sample data dir: %s", dir), "")
	}

	var docs []map[string]any
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		symbol := strings.TrimSuffix(entry.Name(), ".csv")
		q, err := LoadCSVFile(filepath.Join(dir, entry.Name()), symbol)
		if err != nil {
			log.Error().Err(err).Str("file", entry.Name()).Msg("sample file skipped")
			continue
		}

		st, err := Ingest(symbol, symbol, q)
		if err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("sample ingest failed")
			continue
		}

		docs = append(docs, map[string]any{
			"Symbol": st.Symbol,
			"Name":   st.Name,
		})
	}

	return IndexStocks(docs)
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func dateColumn(col map[string]int) (int, bool) {
	if i, ok := col["Date"]; ok {
		return i, true
	}
	if i, ok := col["date"]; ok {
		return i, true
	}
	return 0, false
}

func parseField(value string) (float64, error) {
	f, ok := convert.ToFloat64(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
	if !ok {
		return 0, errors.New(fmt.Sprintf("invalid numeric value: %q", value))
	}
	return f, nil
}
