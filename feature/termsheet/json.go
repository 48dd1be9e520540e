package termsheet

import (
	"encoding/json"
	"fmt"
	"os"

	"termsheet-reconciler/core/reconcile"
)

// LoadJSON reads a structured term sheet from a JSON file. The file holds a
// flat object with canonical field names, either at the root or under a
// "term_sheet" key.
func LoadJSON(path string) (*reconcile.TermSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open term sheet json: %w", err)
	}

	ts, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse term sheet json %s: %w", path, err)
	}
	return ts, nil
}

// ParseJSON parses structured term sheet content.
func ParseJSON(data []byte) (*reconcile.TermSheet, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	if nested, ok := root["term_sheet"]; ok {
		data = nested
	}

	var ts reconcile.TermSheet
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}
