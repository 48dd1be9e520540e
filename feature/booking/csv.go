package booking

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/core/utils"
)

// tradeIDKeys are the conventional attribute names a trade identifier
// appears under, in priority order.
var tradeIDKeys = []string{"TradeID", "trade_id", "TradeId", "tradeId", "ID"}

// LoadCSV reads booking records from a CSV file. The first row is the
// header, each header becomes an attribute name verbatim.
func LoadCSV(path string) ([]reconcile.BookingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open booking csv: %w", err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read booking csv %s: %w", path, err)
	}
	return records, nil
}

// ReadCSV reads booking records from CSV content. Empty cells are omitted
// from the attribute map so they count as absent, not as empty strings.
func ReadCSV(r io.Reader) ([]reconcile.BookingRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []reconcile.BookingRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		attrs := make(map[string]any, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			attrs[header[i]] = cell
		}

		records = append(records, newRecord(attrs))
	}
	return records, nil
}

// newRecord builds a record from raw attributes, pulling the trade
// identifier out of the conventional key names.
func newRecord(attrs map[string]any) reconcile.BookingRecord {
	var tradeID *int64
	if key, ok := reconcile.FirstPresent(tradeIDKeys, attrs); ok {
		if id, ok := utils.ToInt64(attrs[key]); ok {
			tradeID = &id
		}
	}
	return reconcile.NewBookingRecord(tradeID, attrs)
}
