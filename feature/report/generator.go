package report

import (
	"fmt"
	"os"
	"path/filepath"

	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/core/utils"

	"go.uber.org/zap"
)

// Generator writes reconciliation reports into an output directory.
type Generator struct {
	outputDir string
	logger    *zap.Logger
}

// NewGenerator creates a generator, creating the output directory if needed.
func NewGenerator(outputDir string, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	return &Generator{outputDir: outputDir, logger: logger}, nil
}

func (g *Generator) path(filename, ext string) string {
	return filepath.Join(g.outputDir, filename+ext)
}

// tradeLabel renders a trade identifier for report output. Unlike the
// engine's summary label, reports show missing identifiers as blank.
func tradeLabel(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}

// formatValue renders a comparison value, blank when absent.
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return utils.ToString(v)
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func countMatches(results []reconcile.Result) int {
	n := 0
	for _, r := range results {
		if r.OverallMatch {
			n++
		}
	}
	return n
}
