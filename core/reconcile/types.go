package reconcile

// Canonical field names used by the term sheet side of a reconciliation.
// Booking schemas map onto these through synonym lists (see Config).
const (
	FieldISIN               = "isin"
	FieldIssuer             = "issuer"
	FieldIssueAmount        = "issue_amount"
	FieldFaceValue          = "face_value"
	FieldNotionalAmount     = "notional_amount"
	FieldCouponRate         = "coupon_rate"
	FieldCurrency           = "currency"
	FieldIssueDate          = "issue_date"
	FieldMaturityDate       = "maturity_date"
	FieldSettlementDate     = "settlement_date"
	FieldPaymentFrequency   = "payment_frequency"
	FieldDayCountConvention = "day_count_convention"
	FieldSecurityType       = "security_type"
	FieldSeniority          = "seniority"
	FieldTenor              = "tenor"
)

// TermSheet holds the structured terms extracted from a single document.
// Every attribute is optional: a nil pointer means the document did not
// state the value, which is distinct from an empty string or zero.
// Values are never mutated after construction.
type TermSheet struct {
	// Identifiers
	ISIN   *string `json:"isin,omitempty"`
	Issuer *string `json:"issuer,omitempty"`

	// Financial terms
	IssueAmount    *float64 `json:"issue_amount,omitempty"`
	FaceValue      *float64 `json:"face_value,omitempty"`
	NotionalAmount *float64 `json:"notional_amount,omitempty"`
	CouponRate     *float64 `json:"coupon_rate,omitempty"`
	Currency       *string  `json:"currency,omitempty"`

	// Dates (free-form strings, parsed by the date comparator)
	IssueDate      *string `json:"issue_date,omitempty"`
	MaturityDate   *string `json:"maturity_date,omitempty"`
	SettlementDate *string `json:"settlement_date,omitempty"`

	// Payment terms
	PaymentFrequency   *string `json:"payment_frequency,omitempty"`
	DayCountConvention *string `json:"day_count_convention,omitempty"`

	// Bond characteristics
	SecurityType *string `json:"security_type,omitempty"`
	Seniority    *string `json:"seniority,omitempty"`
	Tenor        *string `json:"tenor,omitempty"`
}

// Fields returns the canonical-name view of the term sheet. Only attributes
// that carry a concrete value appear in the map, so callers can distinguish
// "absent" from falsy values by key presence alone.
func (t *TermSheet) Fields() map[string]any {
	fields := make(map[string]any)
	if t.ISIN != nil {
		fields[FieldISIN] = *t.ISIN
	}
	if t.Issuer != nil {
		fields[FieldIssuer] = *t.Issuer
	}
	if t.IssueAmount != nil {
		fields[FieldIssueAmount] = *t.IssueAmount
	}
	if t.FaceValue != nil {
		fields[FieldFaceValue] = *t.FaceValue
	}
	if t.NotionalAmount != nil {
		fields[FieldNotionalAmount] = *t.NotionalAmount
	}
	if t.CouponRate != nil {
		fields[FieldCouponRate] = *t.CouponRate
	}
	if t.Currency != nil {
		fields[FieldCurrency] = *t.Currency
	}
	if t.IssueDate != nil {
		fields[FieldIssueDate] = *t.IssueDate
	}
	if t.MaturityDate != nil {
		fields[FieldMaturityDate] = *t.MaturityDate
	}
	if t.SettlementDate != nil {
		fields[FieldSettlementDate] = *t.SettlementDate
	}
	if t.PaymentFrequency != nil {
		fields[FieldPaymentFrequency] = *t.PaymentFrequency
	}
	if t.DayCountConvention != nil {
		fields[FieldDayCountConvention] = *t.DayCountConvention
	}
	if t.SecurityType != nil {
		fields[FieldSecurityType] = *t.SecurityType
	}
	if t.Seniority != nil {
		fields[FieldSeniority] = *t.Seniority
	}
	if t.Tenor != nil {
		fields[FieldTenor] = *t.Tenor
	}
	return fields
}

// BookingRecord is one trade row from the booking system. Attribute names
// follow whatever schema the source exposes; the Resolver maps canonical
// names onto them. The record is immutable after construction.
type BookingRecord struct {
	tradeID *int64
	attrs   map[string]any
}

// NewBookingRecord builds a record from a trade identifier (nil when the
// source row has none) and its raw attribute map. The map is copied so the
// record does not alias caller state.
func NewBookingRecord(tradeID *int64, attrs map[string]any) BookingRecord {
	copied := make(map[string]any, len(attrs))
	for name, value := range attrs {
		copied[name] = value
	}
	return BookingRecord{tradeID: tradeID, attrs: copied}
}

// TradeID returns the trade identifier, or nil when the source had none.
func (r BookingRecord) TradeID() *int64 {
	return r.tradeID
}

// Attributes returns the attribute-name to value view the Resolver works
// against. The returned map must not be modified.
func (r BookingRecord) Attributes() map[string]any {
	return r.attrs
}

// Attribute returns the value stored under the given attribute name.
func (r BookingRecord) Attribute(name string) (any, bool) {
	value, ok := r.attrs[name]
	return value, ok
}

// FieldComparison is the atomic outcome of comparing one canonical field
// across the two sources. Created only by the comparators, never mutated.
type FieldComparison struct {
	// FieldName is the canonical field name.
	FieldName string `json:"field_name"`

	// TermSheetValue is the raw term sheet value, nil when absent.
	TermSheetValue any `json:"term_sheet_value,omitempty"`

	// BookingValue is the raw booking value, nil when absent.
	BookingValue any `json:"booking_value,omitempty"`

	// Match reports whether the values are considered equivalent.
	Match bool `json:"match"`

	// Similarity is a confidence score in [0.0, 1.0], distinct from the
	// binary match flag so "close but not matching" can be surfaced.
	Similarity float64 `json:"similarity"`

	// Notes explains a mismatch or special case; empty when nothing
	// noteworthy happened.
	Notes string `json:"notes,omitempty"`
}

// Result is the outcome of reconciling the term sheet against one booking
// record. OverallMatch is true iff MatchPercentage is exactly 100.0, i.e.
// every field that was actually compared matched. Fields skipped because a
// value or attribute was absent do not enter the percentage denominator.
type Result struct {
	// TradeID comes from the booking record; nil when the record had none.
	TradeID *int64 `json:"trade_id,omitempty"`

	// OverallMatch is true only when every counted field matched.
	OverallMatch bool `json:"overall_match"`

	// MatchPercentage is 100 * matches / comparisons, 0.0 when nothing
	// was comparable.
	MatchPercentage float64 `json:"match_percentage"`

	// Comparisons holds one entry per compared field, in canonical field
	// iteration order.
	Comparisons []FieldComparison `json:"comparisons"`

	// Summary is a human-readable one-liner for reports.
	Summary string `json:"summary"`
}
