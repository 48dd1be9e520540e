// Package recon exposes the reconciliation engine over HTTP.
//
// It follows the Feature/Handler/Service layout: the Feature wires the
// module into the application loader, the Handler owns the routes and
// request parsing, and the Service runs the actual reconciliations. The
// engine itself lives in core/reconcile; this package is glue.
package recon
