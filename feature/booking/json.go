package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"termsheet-reconciler/core/reconcile"
)

// LoadJSON reads booking records from a JSON file.
func LoadJSON(path string) ([]reconcile.BookingRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open booking json: %w", err)
	}

	records, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse booking json %s: %w", path, err)
	}
	return records, nil
}

// ParseJSON reads booking records from JSON content. Accepted roots are a
// list of objects, an object with a "trades" or "records" list, or a single
// record object. Numbers decode as json.Number so large trade identifiers
// and amounts survive without float rounding.
func ParseJSON(data []byte) ([]reconcile.BookingRecord, error) {
	var root any
	if err := decodeNumbers(data, &root); err != nil {
		return nil, err
	}

	switch v := root.(type) {
	case []any:
		return recordsFromList(v)
	case map[string]any:
		for _, key := range []string{"trades", "records"} {
			if list, ok := v[key].([]any); ok {
				return recordsFromList(list)
			}
		}
		// A bare object is a single record.
		return []reconcile.BookingRecord{newRecord(v)}, nil
	default:
		return nil, fmt.Errorf("unsupported booking json root %T", root)
	}
}

func recordsFromList(list []any) ([]reconcile.BookingRecord, error) {
	records := make([]reconcile.BookingRecord, 0, len(list))
	for i, item := range list {
		attrs, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("booking record %d is %T, want object", i, item)
		}
		records = append(records, newRecord(attrs))
	}
	return records, nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
