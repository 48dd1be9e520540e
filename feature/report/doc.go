// Package report renders reconciliation results for people and downstream
// systems. Three renderers share the same input: a flat CSV with one row per
// field comparison, a Markdown document with per-trade tables, and a compact
// console summary. Generated files can optionally be published to the
// storage bucket under a unique run identifier.
package report
