package booking

import (
	"fmt"

	"termsheet-reconciler/core/database"
	"termsheet-reconciler/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LoadTable reads every row of the booking table into records. Column names
// become attribute names verbatim, NULL columns are omitted so they count as
// absent values. Selecting by ISIN happens in the reconciliation engine, not
// here, so schemas without an ISIN column still load.
func LoadTable(db *gorm.DB, table string, log *zap.Logger) ([]reconcile.BookingRecord, error) {
	if log == nil {
		log = zap.NewNop()
	}

	columns, err := database.GetTableColumns(db, table)
	if err != nil {
		return nil, fmt.Errorf("inspect booking table %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("booking table %s does not exist or has no columns", table)
	}
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Field
	}
	log.Debug("Booking table columns", zap.String("table", table), zap.Strings("columns", names))

	var rows []map[string]any
	if err := db.Table(table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load booking table %s: %w", table, err)
	}

	records := make([]reconcile.BookingRecord, 0, len(rows))
	for _, row := range rows {
		attrs := make(map[string]any, len(row))
		for name, value := range row {
			if value == nil {
				continue
			}
			attrs[name] = value
		}
		records = append(records, newRecord(attrs))
	}

	log.Info("Loaded booking records from database",
		zap.String("table", table),
		zap.Int("count", len(records)),
	)
	return records, nil
}
