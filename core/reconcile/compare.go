package reconcile

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"termsheet-reconciler/core/utils"

	"github.com/shopspring/decimal"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// datePatterns is the fixed, ordered list of date layouts the date
// comparator attempts. The first successful pattern wins; there is no
// ambiguity resolution beyond this order.
var datePatterns = []string{
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
}

// dateNoise matches everything a raw date string may carry besides digits
// and the accepted separators.
var dateNoise = regexp.MustCompile(`[^0-9\-/.]`)

// Compare scores one canonical field across the two sources. Absence is
// handled before type dispatch: both values nil is a trivial match, exactly
// one nil is a definite mismatch. Comparators never return an error; a
// value that cannot be parsed for its semantic type degrades to exact
// string comparison instead.
func (e *Engine) Compare(field string, tsValue, bookingValue any) FieldComparison {
	if tsValue == nil && bookingValue == nil {
		return FieldComparison{
			FieldName:  field,
			Match:      true,
			Similarity: 1.0,
			Notes:      "both absent",
		}
	}
	if tsValue == nil || bookingValue == nil {
		return FieldComparison{
			FieldName:      field,
			TermSheetValue: tsValue,
			BookingValue:   bookingValue,
			Match:          false,
			Similarity:     0.0,
			Notes:          "one value missing",
		}
	}

	switch e.cfg.kindOf(field) {
	case KindNumeric:
		return e.compareNumeric(field, tsValue, bookingValue)
	case KindDate:
		return e.compareDate(field, tsValue, bookingValue)
	case KindExact:
		return e.compareExact(field, tsValue, bookingValue)
	default:
		return e.compareText(field, tsValue, bookingValue)
	}
}

// compareNumeric matches parsed numbers within the configured relative
// tolerance. The difference is relative to the booking value unless the
// booking value is zero, in which case the absolute difference is used.
func (e *Engine) compareNumeric(field string, tsValue, bookingValue any) FieldComparison {
	tsNum, tsOK := toDecimal(tsValue)
	bookingNum, bookingOK := toDecimal(bookingValue)
	if !tsOK || !bookingOK {
		return e.compareExact(field, tsValue, bookingValue)
	}

	delta := tsNum.Sub(bookingNum).Abs()
	diff := delta
	if !bookingNum.IsZero() {
		diff = delta.Div(bookingNum.Abs())
	}

	diffFloat, _ := diff.Float64()
	match := diff.LessThanOrEqual(decimal.NewFromFloat(e.cfg.NumericTolerance))
	notes := ""
	if !match {
		notes = fmt.Sprintf("Difference: %s", delta.StringFixed(4))
	}

	return FieldComparison{
		FieldName:      field,
		TermSheetValue: tsValue,
		BookingValue:   bookingValue,
		Match:          match,
		Similarity:     math.Max(0.0, 1.0-diffFloat),
		Notes:          notes,
	}
}

// compareDate matches parsed dates within the configured day tolerance.
// Similarity decays linearly over a 365-day horizon, floored at zero.
func (e *Engine) compareDate(field string, tsValue, bookingValue any) FieldComparison {
	tsDate, tsOK := parseDate(utils.ToString(tsValue))
	bookingDate, bookingOK := parseDate(utils.ToString(bookingValue))
	if !tsOK || !bookingOK {
		return e.compareExact(field, tsValue, bookingValue)
	}

	diffDays := int(math.Abs(tsDate.Sub(bookingDate).Hours() / 24))
	match := diffDays <= e.cfg.DateToleranceDays
	notes := ""
	if !match {
		notes = fmt.Sprintf("Date difference: %d days (%v vs %v)", diffDays, tsValue, bookingValue)
	}

	return FieldComparison{
		FieldName:      field,
		TermSheetValue: tsValue,
		BookingValue:   bookingValue,
		Match:          match,
		Similarity:     math.Max(0.0, 1.0-float64(diffDays)/365.0),
		Notes:          notes,
	}
}

// compareExact compares trimmed string renderings byte for byte. No case
// folding: identifiers and currency codes are case-sensitive.
func (e *Engine) compareExact(field string, tsValue, bookingValue any) FieldComparison {
	tsStr := strings.TrimSpace(utils.ToString(tsValue))
	bookingStr := strings.TrimSpace(utils.ToString(bookingValue))

	match := tsStr == bookingStr
	similarity := 0.0
	notes := "values differ"
	if match {
		similarity = 1.0
		notes = ""
	}

	return FieldComparison{
		FieldName:      field,
		TermSheetValue: tsValue,
		BookingValue:   bookingValue,
		Match:          match,
		Similarity:     similarity,
		Notes:          notes,
	}
}

// compareText compares trimmed, lowercased strings. A substring relation is
// accepted as a match at reduced similarity: issuer names commonly differ
// by corporate suffixes or abbreviations.
func (e *Engine) compareText(field string, tsValue, bookingValue any) FieldComparison {
	tsStr := strings.ToLower(strings.TrimSpace(utils.ToString(tsValue)))
	bookingStr := strings.ToLower(strings.TrimSpace(utils.ToString(bookingValue)))

	comparison := FieldComparison{
		FieldName:      field,
		TermSheetValue: tsValue,
		BookingValue:   bookingValue,
	}

	switch {
	case tsStr == bookingStr:
		comparison.Match = true
		comparison.Similarity = 1.0
	case strings.Contains(tsStr, bookingStr) || strings.Contains(bookingStr, tsStr):
		comparison.Match = true
		comparison.Similarity = 0.9
		comparison.Notes = "partial text match"
	default:
		distance := levenshtein.DistanceForStrings([]rune(tsStr), []rune(bookingStr), levenshtein.DefaultOptions)
		comparison.Match = false
		comparison.Similarity = 0.0
		comparison.Notes = fmt.Sprintf("text mismatch (edit distance %d)", distance)
	}

	return comparison
}

// toDecimal converts the raw value types booking sources produce (JSON
// numbers, CSV strings, database columns) into a decimal.
func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(string(v)))
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// parseDate strips noise characters and tries the fixed pattern list.
func parseDate(raw string) (time.Time, bool) {
	cleaned := dateNoise.ReplaceAllString(strings.TrimSpace(raw), "")
	for _, pattern := range datePatterns {
		if t, err := time.Parse(pattern, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
