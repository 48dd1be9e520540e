package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(map[string][]string{
		FieldCouponRate: {"Coupon", "CouponRate", "InterestRate", "Rate", "coupon_rate"},
		FieldFaceValue:  {"NominalAmountPerBond", "FaceValue", "Denomination"},
	})

	tests := []struct {
		name      string
		canonical string
		attrs     map[string]any
		want      string
		wantOK    bool
	}{
		{
			name:      "first synonym wins",
			canonical: FieldCouponRate,
			attrs:     map[string]any{"Coupon": 5.0, "Rate": 5.0},
			want:      "Coupon",
			wantOK:    true,
		},
		{
			name:      "priority order controls precedence",
			canonical: FieldCouponRate,
			attrs:     map[string]any{"Rate": 5.0, "CouponRate": 5.0},
			want:      "CouponRate",
			wantOK:    true,
		},
		{
			name:      "domain name preferred over generic fallback",
			canonical: FieldFaceValue,
			attrs:     map[string]any{"FaceValue": 1000.0, "NominalAmountPerBond": 1000.0},
			want:      "NominalAmountPerBond",
			wantOK:    true,
		},
		{
			name:      "no synonym present",
			canonical: FieldCouponRate,
			attrs:     map[string]any{"Issuer": "Acme"},
			wantOK:    false,
		},
		{
			name:      "unknown canonical field",
			canonical: "unknown_field",
			attrs:     map[string]any{"Coupon": 5.0},
			wantOK:    false,
		},
		{
			name:      "exact name match only, no case folding",
			canonical: FieldCouponRate,
			attrs:     map[string]any{"coupon": 5.0, "COUPON": 5.0},
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.Resolve(tt.canonical, tt.attrs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Deterministic(t *testing.T) {
	resolver := NewResolver(DefaultConfig().Synonyms)
	attrs := map[string]any{"Coupon": 5.0, "InterestRate": 5.0, "Rate": 5.0}

	first, ok := resolver.Resolve(FieldCouponRate, attrs)
	assert.True(t, ok)
	for i := 0; i < 10; i++ {
		got, ok := resolver.Resolve(FieldCouponRate, attrs)
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestFirstPresent(t *testing.T) {
	attrs := map[string]any{"trade_id": 7, "ISIN": "US123"}

	name, ok := FirstPresent([]string{"TradeID", "trade_id", "ID"}, attrs)
	assert.True(t, ok)
	assert.Equal(t, "trade_id", name)

	_, ok = FirstPresent([]string{"TradeID", "ID"}, attrs)
	assert.False(t, ok)

	_, ok = FirstPresent(nil, attrs)
	assert.False(t, ok)
}
