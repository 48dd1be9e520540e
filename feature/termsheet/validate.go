package termsheet

import (
	"fmt"
	"strconv"
	"strings"

	"termsheet-reconciler/core/reconcile"
)

// ValidateExtraction scores an extraction by checking whether the extracted
// values actually appear in the source text. The score is a rough confidence
// in [0, 1], not a guarantee.
func ValidateExtraction(ts *reconcile.TermSheet, originalText string) float64 {
	if ts == nil {
		return 0.0
	}

	score := 0.0
	checks := 0

	if ts.ISIN != nil && strings.Contains(originalText, *ts.ISIN) {
		score++
	}
	checks++

	// Issuer names rarely appear verbatim, a partial match on the leading
	// words is enough.
	if ts.Issuer != nil {
		words := strings.Fields(*ts.Issuer)
		if len(words) > 2 {
			words = words[:2]
		}
		lower := strings.ToLower(originalText)
		for _, word := range words {
			if len(word) > 3 && strings.Contains(lower, strings.ToLower(word)) {
				score++
				break
			}
		}
	}
	checks++

	if ts.CouponRate != nil {
		rate := *ts.CouponRate
		patterns := []string{
			fmt.Sprintf("%v%%", rate),
			fmt.Sprintf("%.2f%%", rate),
			fmt.Sprintf("%.1f%%", rate),
			strconv.FormatFloat(rate, 'f', -1, 64),
		}
		for _, p := range patterns {
			if strings.Contains(originalText, p) {
				score++
				break
			}
		}
	}
	checks++

	if ts.Currency != nil && strings.Contains(originalText, *ts.Currency) {
		score++
	}
	checks++

	return score / float64(checks)
}
