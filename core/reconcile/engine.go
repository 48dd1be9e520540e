package reconcile

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// Engine reconciles one extracted term sheet against booking records. It is
// safe for concurrent use: configuration and resolver are read-only after
// construction and every call builds its results from scratch.
type Engine struct {
	cfg      Config
	resolver *Resolver
	log      *zap.Logger
}

// NewEngine creates an engine. Zero or nil Config members fall back to
// DefaultConfig; a nil logger disables diagnostics.
func NewEngine(cfg Config, log *zap.Logger) *Engine {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg:      cfg,
		resolver: NewResolver(cfg.Synonyms),
		log:      log,
	}
}

// Reconcile compares the term sheet against every relevant booking record
// and returns one Result per candidate, in candidate order. A missing term
// sheet or an empty booking collection is a caller error: the engine logs a
// diagnostic and returns no results rather than partial output.
func (e *Engine) Reconcile(termSheet *TermSheet, records []BookingRecord) []Result {
	if termSheet == nil {
		e.log.Error("no term sheet data provided")
		return nil
	}
	if len(records) == 0 {
		e.log.Error("no booking records provided")
		return nil
	}

	candidates := e.FilterCandidates(termSheet, records)
	e.log.Info("reconciling term sheet", zap.Int("candidates", len(candidates)))

	fields := termSheet.Fields()
	results := make([]Result, 0, len(candidates))
	for _, record := range candidates {
		results = append(results, e.reconcileRecord(fields, record))
	}
	return results
}

// reconcileRecord compares every canonical field against one booking
// record. Attribute resolution happens per record because different
// candidates may expose different attribute sets. A field is skipped, and
// excluded from the percentage denominator, when the term sheet value is
// absent, no booking attribute resolves, or the resolved value is absent.
func (e *Engine) reconcileRecord(fields map[string]any, record BookingRecord) Result {
	comparisons := make([]FieldComparison, 0, len(e.cfg.FieldOrder))
	matches := 0
	total := 0

	for _, field := range e.cfg.FieldOrder {
		tsValue, ok := fields[field]
		if !ok {
			continue
		}

		name, ok := e.resolver.Resolve(field, record.Attributes())
		if !ok {
			e.log.Debug("no matching booking attribute for field", zap.String("field", field))
			continue
		}

		bookingValue, ok := record.Attribute(name)
		if !ok || bookingValue == nil {
			continue
		}

		comparison := e.Compare(field, tsValue, bookingValue)
		comparisons = append(comparisons, comparison)
		if comparison.Match {
			matches++
		}
		total++
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(matches) / float64(total) * 100.0
	}

	return Result{
		TradeID:         record.TradeID(),
		OverallMatch:    percentage == 100.0,
		MatchPercentage: percentage,
		Comparisons:     comparisons,
		Summary: fmt.Sprintf("Trade %s: %d/%d fields match (%.1f%%)",
			tradeLabel(record.TradeID()), matches, total, percentage),
	}
}

// tradeLabel renders a trade identifier for summaries.
func tradeLabel(id *int64) string {
	if id == nil {
		return "unknown"
	}
	return strconv.FormatInt(*id, 10)
}
