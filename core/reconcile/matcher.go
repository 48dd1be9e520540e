package reconcile

import (
	"termsheet-reconciler/core/utils"

	"go.uber.org/zap"
)

// FilterCandidates narrows the booking records to those whose resolved
// identifier attribute equals the term sheet identifier by exact,
// case-sensitive string comparison. When the term sheet carries no
// identifier, or no record matches it, the full collection is returned in
// its original order: a stale or mistyped identifier must not silently
// produce zero output.
func (e *Engine) FilterCandidates(termSheet *TermSheet, records []BookingRecord) []BookingRecord {
	if termSheet.ISIN == nil {
		e.log.Warn("term sheet has no identifier, reconciling against all booking records")
		return records
	}

	isin := *termSheet.ISIN
	relevant := make([]BookingRecord, 0, len(records))
	for _, record := range records {
		name, ok := e.resolver.Resolve(FieldISIN, record.Attributes())
		if !ok {
			continue
		}
		value, ok := record.Attribute(name)
		if !ok || value == nil {
			continue
		}
		if utils.ToString(value) == isin {
			relevant = append(relevant, record)
		}
	}

	if len(relevant) == 0 {
		e.log.Warn("no booking records found for identifier, falling back to all records",
			zap.String("isin", isin))
		return records
	}

	return relevant
}
