// Package reconcile implements the term sheet reconciliation engine.
//
// The engine compares one extracted term sheet against a collection of
// booking records and produces a per-field match report for every relevant
// record. It is a pure, synchronous computation: all inputs are
// already-materialized in-memory values, no I/O happens inside the engine,
// and outputs are built fresh on every call.
//
// # Components
//
//   - Resolver: maps canonical field names (e.g. "coupon_rate") onto the
//     attribute names a booking schema actually exposes, via ordered
//     synonym lists.
//   - Candidate filtering: narrows booking records by the term sheet
//     identifier, falling back to the full collection when narrowing fails.
//   - Comparators: one comparison strategy per semantic field type
//     (numeric with tolerance, date with tolerance, exact string, fuzzy
//     text). Unparseable values degrade to exact string comparison rather
//     than failing.
//   - Engine: orchestrates resolution, comparison and aggregation into one
//     Result per booking candidate.
//
// # Usage
//
//	engine := reconcile.NewEngine(reconcile.DefaultConfig(), logger)
//	results := engine.Reconcile(termSheet, bookingRecords)
package reconcile
