package booking

import (
	"strings"
	"testing"

	"termsheet-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	content := "TradeID,ISIN,Issuer,Coupon,Currency\n" +
		"1001,US0378331005,Apple Inc,5.25,USD\n" +
		"1002,DE0001102580,Bundesrepublik Deutschland,3.75,EUR\n" +
		"1003,US0378331005,Apple Inc,4.00,USD\n" +
		",FR0000120271,LVMH,,EUR\n"

	records, err := ReadCSV(strings.NewReader(content))
	require.NoError(t, err)

	s := Summarize(records, reconcile.DefaultConfig())

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 3, s.WithTradeID)
	assert.Equal(t, 3, s.UniqueISINs)
	assert.Equal(t, 3, s.UniqueIssuers)
	assert.Equal(t, []string{"EUR", "USD"}, s.Currencies)

	require.NotNil(t, s.CouponMin)
	require.NotNil(t, s.CouponMax)
	assert.Equal(t, "3.75", s.CouponMin.String())
	assert.Equal(t, "5.25", s.CouponMax.String())
}
