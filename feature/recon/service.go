package recon

import (
	"errors"

	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/feature/booking"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned when a database-backed reconciliation is
// requested but no booking database is connected.
var ErrNoDatabase = errors.New("no booking database connected")

// Service runs reconciliations for the HTTP layer.
type Service struct {
	engine *reconcile.Engine
	cfg    reconcile.Config
	db     *gorm.DB
	table  string
	logger *zap.Logger
}

// NewService creates a new reconciliation service. db may be nil, in which
// case only payload-supplied booking records can be reconciled.
func NewService(cfg reconcile.Config, db *gorm.DB, table string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine: reconcile.NewEngine(cfg, logger),
		cfg:    cfg,
		db:     db,
		table:  table,
		logger: logger,
	}
}

// Reconcile runs the term sheet against the given booking records.
func (s *Service) Reconcile(ts *reconcile.TermSheet, records []reconcile.BookingRecord) []reconcile.Result {
	return s.engine.Reconcile(ts, records)
}

// ReconcileAgainstDB loads the booking table and runs the term sheet
// against it.
func (s *Service) ReconcileAgainstDB(ts *reconcile.TermSheet) ([]reconcile.Result, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}

	records, err := booking.LoadTable(s.db, s.table, s.logger)
	if err != nil {
		return nil, err
	}
	return s.engine.Reconcile(ts, records), nil
}

// FieldConfig describes the comparison configuration for one canonical
// field, used by the introspection endpoint.
type FieldConfig struct {
	Field    string   `json:"field"`
	Kind     string   `json:"kind"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Fields returns the configured field order with each field's comparator
// kind and accepted booking attribute names.
func (s *Service) Fields() []FieldConfig {
	fields := make([]FieldConfig, 0, len(s.cfg.FieldOrder))
	for _, name := range s.cfg.FieldOrder {
		kind := "text"
		switch s.cfg.Kinds[name] {
		case reconcile.KindNumeric:
			kind = "numeric"
		case reconcile.KindDate:
			kind = "date"
		case reconcile.KindExact:
			kind = "exact"
		}
		fields = append(fields, FieldConfig{
			Field:    name,
			Kind:     kind,
			Synonyms: s.cfg.Synonyms[name],
		})
	}
	return fields
}
