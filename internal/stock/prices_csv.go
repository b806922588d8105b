package stock

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadPricesCSV reads a stock price file with "length","price" columns,
// length in feet. Returns both the purchasable stock lengths (in inches)
// and the raw price points for fitting a PriceModel.
func ReadPricesCSV(path string) ([]StockLength, []PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open prices file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read prices file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("prices file is empty")
	}

	lengthCol, priceCol := -1, -1
	for i, cell := range rows[0] {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case strings.Contains(h, "length"):
			lengthCol = i
		case strings.Contains(h, "price"):
			priceCol = i
		}
	}
	start := 1
	if lengthCol < 0 || priceCol < 0 {
		// No header: assume length,price positional.
		lengthCol, priceCol = 0, 1
		start = 0
	}

	var stocks []StockLength
	var points []PricePoint
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= lengthCol || len(row) <= priceCol {
			continue
		}
		lengthFt, err1 := strconv.ParseFloat(strings.TrimSpace(row[lengthCol]), 64)
		price, err2 := strconv.ParseFloat(strings.TrimSpace(row[priceCol]), 64)
		if err1 != nil || err2 != nil || lengthFt <= 0 {
			continue
		}
		stocks = append(stocks, StockLength{LengthIn: lengthFt * 12, Price: price})
		points = append(points, PricePoint{LengthFt: lengthFt, Price: price})
	}
	if len(stocks) == 0 {
		return nil, nil, fmt.Errorf("prices file has no usable rows")
	}
	return stocks, points, nil
}
