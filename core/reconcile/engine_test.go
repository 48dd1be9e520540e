package reconcile

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestReconcile_PerfectMatch(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:       strPtr("US123"),
		CouponRate: floatPtr(5.0),
		Currency:   strPtr("USD"),
	}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{
			"ISIN":     "US123",
			"Coupon":   5.0,
			"Currency": "USD",
		}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, int64(1), *result.TradeID)
	assert.True(t, result.OverallMatch)
	assert.Equal(t, 100.0, result.MatchPercentage)
	assert.Len(t, result.Comparisons, 3)
	assert.Equal(t, "Trade 1: 3/3 fields match (100.0%)", result.Summary)
}

func TestReconcile_CallerErrors(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	records := []BookingRecord{
		bookingFixture(1, map[string]any{"ISIN": "US123"}),
	}

	assert.Empty(t, engine.Reconcile(nil, records))
	assert.Empty(t, engine.Reconcile(&TermSheet{ISIN: strPtr("US123")}, nil))
	assert.Empty(t, engine.Reconcile(&TermSheet{ISIN: strPtr("US123")}, []BookingRecord{}))
}

func TestReconcile_NumericDrift(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:       strPtr("US123"),
		CouponRate: floatPtr(5.001),
	}
	within := []BookingRecord{
		bookingFixture(1, map[string]any{"ISIN": "US123", "Coupon": 5.0}),
	}
	results := engine.Reconcile(termSheet, within)
	require.Len(t, results, 1)
	assert.True(t, results[0].OverallMatch)

	termSheet = &TermSheet{
		ISIN:       strPtr("US123"),
		CouponRate: floatPtr(5.1),
	}
	results = engine.Reconcile(termSheet, within)
	require.Len(t, results, 1)
	assert.False(t, results[0].OverallMatch)
	assert.Equal(t, 50.0, results[0].MatchPercentage)

	var couponComparison *FieldComparison
	for i := range results[0].Comparisons {
		if results[0].Comparisons[i].FieldName == FieldCouponRate {
			couponComparison = &results[0].Comparisons[i]
		}
	}
	require.NotNil(t, couponComparison)
	assert.False(t, couponComparison.Match)
	assert.Contains(t, couponComparison.Notes, "0.1000")
}

func TestReconcile_UnknownISINFallsBackToAllRecords(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{ISIN: strPtr("US999")}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{"ISIN": "US123"}),
		bookingFixture(2, map[string]any{"ISIN": "US456"}),
	}

	results := engine.Reconcile(termSheet, records)
	assert.Len(t, results, 2)
}

func TestReconcile_SchemaVariantResolvesSynonym(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:      strPtr("US123"),
		FaceValue: floatPtr(1000.0),
	}
	// The booking schema exposes NominalAmountPerBond instead of FaceValue.
	records := []BookingRecord{
		bookingFixture(1, map[string]any{
			"ISIN":                 "US123",
			"NominalAmountPerBond": 1000.0,
		}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)
	require.Len(t, results[0].Comparisons, 2)
	assert.True(t, results[0].OverallMatch)

	fields := make([]string, 0, len(results[0].Comparisons))
	for _, comparison := range results[0].Comparisons {
		fields = append(fields, comparison.FieldName)
	}
	assert.Contains(t, fields, FieldFaceValue)
}

func TestReconcile_IssuerFuzzyMatch(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:   strPtr("US123"),
		Issuer: strPtr("Genel Energy PLC"),
	}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{
			"ISIN":   "US123",
			"Issuer": "Genel Energy",
		}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)
	require.Len(t, results[0].Comparisons, 2)

	issuer := results[0].Comparisons[1]
	assert.Equal(t, FieldIssuer, issuer.FieldName)
	assert.True(t, issuer.Match)
	assert.Equal(t, 0.9, issuer.Similarity)
	assert.Equal(t, "partial text match", issuer.Notes)
}

func TestReconcile_SkipsAbsentAndUnresolvedFields(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:     strPtr("US123"),
		Currency: strPtr("USD"),
		Tenor:    strPtr("5 years"),
	}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{
			"ISIN":     "US123",
			"Currency": "USD",
			// No tenor attribute, and a nil maturity value.
			"Maturity": nil,
		}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)

	// Tenor is unresolved and maturity has no term sheet value: neither
	// enters the denominator or the comparison list.
	assert.Len(t, results[0].Comparisons, 2)
	assert.Equal(t, 100.0, results[0].MatchPercentage)
	assert.True(t, results[0].OverallMatch)
}

func TestReconcile_SkipsNilBookingValues(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:         strPtr("US123"),
		MaturityDate: strPtr("2030-01-01"),
	}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{
			"ISIN":     "US123",
			"Maturity": nil,
		}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Comparisons, 1)
}

func TestReconcile_BareRecordYieldsZeroComparisons(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{ISIN: strPtr("US123")}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Comparisons)
	assert.Equal(t, 0.0, results[0].MatchPercentage)
	assert.False(t, results[0].OverallMatch)
}

func TestReconcile_MissingTradeID(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{ISIN: strPtr("US123")}
	records := []BookingRecord{
		NewBookingRecord(nil, map[string]any{"ISIN": "US123"}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].TradeID)
	assert.Equal(t, "Trade unknown: 1/1 fields match (100.0%)", results[0].Summary)
}

func TestReconcile_Idempotent(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:         strPtr("US123"),
		Issuer:       strPtr("Genel Energy PLC"),
		CouponRate:   floatPtr(9.25),
		Currency:     strPtr("USD"),
		MaturityDate: strPtr("2025-10-14"),
	}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{
			"ISIN":     "US123",
			"Issuer":   "Genel Energy",
			"Coupon":   9.25,
			"Currency": "USD",
			"Maturity": "2025-10-14",
		}),
		bookingFixture(2, map[string]any{
			"ISIN":     "US123",
			"Coupon":   9.5,
			"Currency": "EUR",
		}),
	}

	first := engine.Reconcile(termSheet, records)
	second := engine.Reconcile(termSheet, records)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestReconcile_OverallMatchIffFullPercentage(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	termSheet := &TermSheet{
		ISIN:       strPtr("US123"),
		CouponRate: floatPtr(5.0),
		Currency:   strPtr("USD"),
	}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{"ISIN": "US123", "Coupon": 5.0, "Currency": "USD"}),
		bookingFixture(2, map[string]any{"ISIN": "US123", "Coupon": 6.0, "Currency": "USD"}),
		bookingFixture(3, map[string]any{"ISIN": "US123", "Coupon": 5.0, "Currency": "EUR"}),
		bookingFixture(4, map[string]any{"Issuer": "Acme"}),
	}

	for _, result := range engine.Reconcile(termSheet, records) {
		assert.Equal(t, result.MatchPercentage == 100.0, result.OverallMatch,
			"trade %v", result.TradeID)
	}
}

func TestReconcile_FieldOrderIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FieldOrder = []string{FieldCurrency, FieldISIN}
	engine := NewEngine(cfg, nil)

	termSheet := &TermSheet{
		ISIN:     strPtr("US123"),
		Currency: strPtr("USD"),
	}
	records := []BookingRecord{
		bookingFixture(1, map[string]any{"ISIN": "US123", "Currency": "USD"}),
	}

	results := engine.Reconcile(termSheet, records)
	require.Len(t, results, 1)
	require.Len(t, results[0].Comparisons, 2)
	assert.Equal(t, FieldCurrency, results[0].Comparisons[0].FieldName)
	assert.Equal(t, FieldISIN, results[0].Comparisons[1].FieldName)
}
