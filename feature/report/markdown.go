package report

import (
	"fmt"
	"os"
	"strings"

	"termsheet-reconciler/core/reconcile"

	"go.uber.org/zap"
)

// WriteMarkdown writes a Markdown report with a summary section and one
// comparison table per trade, and returns the file path. termSheetFile and
// bookingFile are informational labels for the header, either may be empty.
func (g *Generator) WriteMarkdown(results []reconcile.Result, termSheetFile, bookingFile, filename string) (string, error) {
	path := g.path(filename, ".md")

	var sb strings.Builder
	sb.WriteString("# Term Sheet Reconciliation Report\n\n")
	if termSheetFile != "" {
		fmt.Fprintf(&sb, "**Term Sheet:** %s\n", termSheetFile)
	}
	if bookingFile != "" {
		fmt.Fprintf(&sb, "**Booking Data:** %s\n", bookingFile)
	}
	fmt.Fprintf(&sb, "**Total Trades:** %d\n\n", len(results))

	perfect := countMatches(results)
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Perfect Matches:** %d/%d\n", perfect, len(results))
	if len(results) > 0 {
		fmt.Fprintf(&sb, "- **Success Rate:** %.1f%%\n\n", float64(perfect)/float64(len(results))*100)
	} else {
		sb.WriteString("- **Success Rate:** n/a\n\n")
	}

	sb.WriteString("## Trade Results\n\n")
	for _, result := range results {
		status := "MISMATCH"
		if result.OverallMatch {
			status = "OK"
		}
		fmt.Fprintf(&sb, "### Trade %s [%s]\n\n", mdTradeLabel(result.TradeID), status)
		fmt.Fprintf(&sb, "%s\n\n", result.Summary)

		sb.WriteString("| Field | Term Sheet | Booking System | Match | Notes |\n")
		sb.WriteString("|-------|------------|----------------|-------|-------|\n")
		for _, comp := range result.Comparisons {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				comp.FieldName,
				mdValue(comp.TermSheetValue),
				mdValue(comp.BookingValue),
				yesNo(comp.Match),
				comp.Notes,
			)
		}
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write markdown report: %w", err)
	}

	g.logger.Info("Generated Markdown report", zap.String("path", path))
	return path, nil
}

func mdTradeLabel(id *int64) string {
	if id == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *id)
}

func mdValue(v any) string {
	if v == nil {
		return "N/A"
	}
	return formatValue(v)
}
