package report

import (
	"fmt"
	"io"
	"strings"

	"termsheet-reconciler/core/reconcile"
)

// PrintSummary writes a compact human-readable summary to w, one line per
// trade plus its mismatched fields.
func PrintSummary(w io.Writer, results []reconcile.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No reconciliation results to display")
		return
	}

	perfect := countMatches(results)
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "RECONCILIATION SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Trades: %d\n", len(results))
	fmt.Fprintf(w, "Perfect Matches: %d\n", perfect)
	fmt.Fprintf(w, "Success Rate: %.1f%%\n", float64(perfect)/float64(len(results))*100)

	fmt.Fprintln(w, "\nTrade Details:")
	for _, result := range results {
		status := "FAIL"
		if result.OverallMatch {
			status = " OK "
		}
		fmt.Fprintf(w, "  [%s] Trade %s: %.1f%% match\n", status, mdTradeLabel(result.TradeID), result.MatchPercentage)

		for _, comp := range result.Comparisons {
			if comp.Match {
				continue
			}
			fmt.Fprintf(w, "         %s: %s != %s\n", comp.FieldName, mdValue(comp.TermSheetValue), mdValue(comp.BookingValue))
		}
	}
	fmt.Fprintln(w, rule)
}
