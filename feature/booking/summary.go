package booking

import (
	"sort"

	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/core/utils"

	"github.com/shopspring/decimal"
)

// Summary describes a loaded booking record set.
type Summary struct {
	Count         int
	WithTradeID   int
	UniqueISINs   int
	UniqueIssuers int
	Currencies    []string
	CouponMin     *decimal.Decimal
	CouponMax     *decimal.Decimal
}

// Summarize computes descriptive statistics over loaded records. Attribute
// names are resolved through the given synonym configuration, so the
// statistics work against any booking schema the reconciler supports.
func Summarize(records []reconcile.BookingRecord, cfg reconcile.Config) Summary {
	resolver := reconcile.NewResolver(cfg.Synonyms)

	s := Summary{Count: len(records)}
	isins := make(map[string]struct{})
	issuers := make(map[string]struct{})
	currencies := make(map[string]struct{})

	for _, rec := range records {
		if rec.TradeID() != nil {
			s.WithTradeID++
		}
		attrs := rec.Attributes()

		if key, ok := resolver.Resolve(reconcile.FieldISIN, attrs); ok {
			isins[utils.ToString(attrs[key])] = struct{}{}
		}
		if key, ok := resolver.Resolve(reconcile.FieldIssuer, attrs); ok {
			issuers[utils.ToString(attrs[key])] = struct{}{}
		}
		if key, ok := resolver.Resolve(reconcile.FieldCurrency, attrs); ok {
			currencies[utils.ToString(attrs[key])] = struct{}{}
		}
		if key, ok := resolver.Resolve(reconcile.FieldCouponRate, attrs); ok {
			if coupon, err := decimal.NewFromString(utils.ToString(attrs[key])); err == nil {
				if s.CouponMin == nil || coupon.LessThan(*s.CouponMin) {
					c := coupon
					s.CouponMin = &c
				}
				if s.CouponMax == nil || coupon.GreaterThan(*s.CouponMax) {
					c := coupon
					s.CouponMax = &c
				}
			}
		}
	}

	s.UniqueISINs = len(isins)
	s.UniqueIssuers = len(issuers)
	for c := range currencies {
		s.Currencies = append(s.Currencies, c)
	}
	sort.Strings(s.Currencies)
	return s
}
