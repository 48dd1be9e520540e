// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure connections to the booking system database based on the
// application's configuration. MySQL is the production driver, SQLite is
// supported for local runs and tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. The
// booking feature loads records with raw queries and therefore needs no
// schema migration, only a working connection.
//
// # Schema Inspection
//
// GetTableColumns retrieves the column definitions of the booking table.
// The booking loader treats column names as record attribute keys, which the
// field resolver then maps onto canonical term sheet fields.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "booking_records")
package database
