package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"termsheet-reconciler/core/reconcile"

	"go.uber.org/zap"
)

var csvHeader = []string{
	"Trade_ID",
	"Overall_Match",
	"Match_Percentage",
	"Field_Name",
	"Term_Sheet_Value",
	"Booking_Value",
	"Field_Match",
	"Similarity",
	"Notes",
}

// WriteCSV writes a flat CSV report, one row per field comparison, and
// returns the file path.
func (g *Generator) WriteCSV(results []reconcile.Result, filename string) (string, error) {
	path := g.path(filename, ".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, result := range results {
		for _, comp := range result.Comparisons {
			row := []string{
				tradeLabel(result.TradeID),
				yesNo(result.OverallMatch),
				fmt.Sprintf("%.1f%%", result.MatchPercentage),
				comp.FieldName,
				formatValue(comp.TermSheetValue),
				formatValue(comp.BookingValue),
				yesNo(comp.Match),
				fmt.Sprintf("%.3f", comp.Similarity),
				comp.Notes,
			}
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv report: %w", err)
	}

	g.logger.Info("Generated CSV report", zap.String("path", path))
	return path, nil
}
