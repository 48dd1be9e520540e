package booking

import "termsheet-reconciler/core/reconcile"

// FromMaps builds records from raw attribute maps, e.g. from an HTTP
// payload. Trade identifiers are resolved the same way the file loaders do.
func FromMaps(rows []map[string]any) []reconcile.BookingRecord {
	records := make([]reconcile.BookingRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, newRecord(row))
	}
	return records
}
