package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	// Create a booking table shaped like a typical export.
	err = db.Exec("CREATE TABLE booking_records (trade_id INTEGER PRIMARY KEY, ISIN TEXT, Coupon REAL, MaturityDate TEXT)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "booking_records")
	assert.NoError(t, err)
	assert.Len(t, columns, 4)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["trade_id"])
	assert.Equal(t, "text", colMap["isin"])
	assert.Equal(t, "real", colMap["coupon"])

	// PRAGMA table_info returns an empty result for a non-existent table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}
