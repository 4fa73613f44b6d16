package stock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oarkflow/errors"
	"github.com/oarkflow/gologger"
	"github.com/oarkflow/log"
	"github.com/oarkflow/xid"

	"github.com/jumpei00/gostockanalysis/app/models"
	"github.com/jumpei00/gostockanalysis/app/models/indicator"
)

// ExportFrame writes the frame's bars and computed indicator columns as CSV
// under dir and returns the file path. Undefined indicator positions are
// written as empty cells, never as zero.
func ExportFrame(dir string, dframe *models.DataFrame) (string, error) {
	if dframe == nil || dframe.PriceFrame == nil {
		return "", errors.New("export needs a price frame")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewE(err, "unable to create export dir", "")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", dframe.PriceFrame.Symbol, xid.New().String()))
	writer, err := gologger.New(path, 3000)
	if err != nil {
		return "", errors.NewE(err, "unable to open export file", "")
	}

	header, rows := FrameRows(dframe)
	writer.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		writer.WriteString(strings.Join(row, ","))
	}

	log.Info().Str("path", path).Int("rows", len(rows)).Msg("frame exported")
	return path, nil
}

// FrameRows flattens a data frame into a CSV header and one row per bar,
// indicator columns aligned by position with the bars
func FrameRows(dframe *models.DataFrame) (header []string, rows [][]string) {
	header = []string{"time", "open", "high", "low", "close", "volume"}

	type column struct {
		name   string
		values func(i int) string
	}
	var columns []column

	if iframe := dframe.IndicatorFrame; iframe != nil {
		for _, ma := range iframe.MAs {
			ma := ma
			columns = append(columns, column{
				name:   fmt.Sprintf("ma_%d", ma.Period),
				values: func(i int) string { return formatValue(ma.Values[i]) },
			})
		}
		if rsi := iframe.Rsi; rsi != nil {
			columns = append(columns, column{
				name:   fmt.Sprintf("rsi_%d", rsi.Period),
				values: func(i int) string { return formatValue(rsi.Values[i]) },
			})
		}
		if macd := iframe.Macd; macd != nil {
			columns = append(columns,
				column{"macd", func(i int) string { return formatFloat(macd.Line[i]) }},
				column{"macd_signal", func(i int) string { return formatFloat(macd.SignalVal[i]) }},
				column{"macd_histogram", func(i int) string { return formatFloat(macd.Histogram[i]) }},
			)
		}
		if bb := iframe.BB; bb != nil {
			columns = append(columns,
				column{"bb_upper", func(i int) string { return formatValue(bb.Upper[i]) }},
				column{"bb_middle", func(i int) string { return formatValue(bb.Middle[i]) }},
				column{"bb_lower", func(i int) string { return formatValue(bb.Lower[i]) }},
			)
		}
		if atr := iframe.Atr; atr != nil {
			columns = append(columns, column{
				name:   fmt.Sprintf("atr_%d", atr.Period),
				values: func(i int) string { return formatValue(atr.Values[i]) },
			})
		}
	}

	for _, c := range columns {
		header = append(header, c.name)
	}

	rows = make([][]string, 0, len(dframe.PriceFrame.Prices))
	for i, price := range dframe.PriceFrame.Prices {
		row := []string{
			strconv.FormatInt(price.Time, 10),
			formatFloat(price.Open),
			formatFloat(price.High),
			formatFloat(price.Low),
			formatFloat(price.Close),
			formatFloat(price.Volume),
		}
		for _, c := range columns {
			row = append(row, c.values(i))
		}
		rows = append(rows, row)
	}

	return header, rows
}

func formatValue(v indicator.Value) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(v.Float64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
