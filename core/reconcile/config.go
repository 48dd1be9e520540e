package reconcile

// Kind classifies how a canonical field's values are compared.
type Kind int

const (
	// KindText compares normalized strings with a loose substring policy.
	// This is the default for fields with no explicit classification.
	KindText Kind = iota
	// KindNumeric compares parsed numbers within a relative tolerance.
	KindNumeric
	// KindDate compares parsed dates within a day tolerance.
	KindDate
	// KindExact compares trimmed strings byte for byte.
	KindExact
)

// Default comparison tolerances. Both can be overridden per deployment
// through Config.
const (
	// DefaultNumericTolerance is the relative difference accepted between
	// two numeric values (0.001 = 0.1%).
	DefaultNumericTolerance = 0.001

	// DefaultDateToleranceDays is the day difference accepted between two
	// dates. Zero means the dates must fall on the same day.
	DefaultDateToleranceDays = 0
)

// Config controls tolerances, the canonical field iteration order and the
// per-field synonym lists. Pass it to NewEngine; zero or nil members fall
// back to the documented defaults.
type Config struct {
	// NumericTolerance is the accepted relative difference for numeric
	// fields. Values <= 0 fall back to DefaultNumericTolerance.
	NumericTolerance float64

	// DateToleranceDays is the accepted day difference for date fields.
	DateToleranceDays int

	// FieldOrder fixes the canonical field iteration order, which is also
	// the order of FieldComparisons in each Result.
	FieldOrder []string

	// Synonyms maps each canonical field to the ordered list of booking
	// attribute names accepted for it. Order is priority: the first name
	// present on a record wins.
	Synonyms map[string][]string

	// Kinds classifies canonical fields for comparator dispatch. Fields
	// without an entry use KindText.
	Kinds map[string]Kind
}

// DefaultConfig returns the built-in field order, synonym lists and
// classification. New booking schemas are accommodated by extending the
// synonym lists, not by code changes.
func DefaultConfig() Config {
	return Config{
		NumericTolerance:  DefaultNumericTolerance,
		DateToleranceDays: DefaultDateToleranceDays,
		FieldOrder: []string{
			FieldISIN,
			FieldIssuer,
			FieldIssueAmount,
			FieldFaceValue,
			FieldNotionalAmount,
			FieldCouponRate,
			FieldCurrency,
			FieldIssueDate,
			FieldMaturityDate,
			FieldSettlementDate,
			FieldPaymentFrequency,
			FieldDayCountConvention,
			FieldSecurityType,
			FieldSeniority,
			FieldTenor,
		},
		Synonyms: map[string][]string{
			FieldISIN:               {"ISIN", "isin", "Isin"},
			FieldIssuer:             {"Issuer", "issuer", "IssuerName", "IssuingEntity"},
			FieldIssueAmount:        {"IssueAmount", "IssueSize", "TotalAmount", "issue_amount"},
			FieldFaceValue:          {"NominalAmountPerBond", "FaceValue", "Denomination", "ParValue", "face_value"},
			FieldNotionalAmount:     {"Notional", "NotionalAmount", "TotalNotional", "notional_amount"},
			FieldCouponRate:         {"Coupon", "CouponRate", "InterestRate", "Rate", "coupon_rate"},
			FieldCurrency:           {"Currency", "currency", "Ccy"},
			FieldIssueDate:          {"IssueDate", "issue_date", "IssuanceDate"},
			FieldMaturityDate:       {"Maturity", "MaturityDate", "maturity_date"},
			FieldSettlementDate:     {"SettlementDate", "settlement_date", "SettleDate"},
			FieldPaymentFrequency:   {"InterestPaymentFrequency", "PaymentFrequency", "Frequency", "payment_frequency"},
			FieldDayCountConvention: {"DayCountFraction", "DayCount", "DayCountConvention", "day_count_convention"},
			FieldSecurityType:       {"SecurityType", "security_type"},
			FieldSeniority:          {"Seniority", "seniority"},
			FieldTenor:              {"Tenor", "tenor"},
		},
		Kinds: map[string]Kind{
			FieldCouponRate:   KindNumeric,
			FieldFaceValue:    KindNumeric,
			FieldIssueAmount:  KindNumeric,
			FieldIssueDate:    KindDate,
			FieldMaturityDate: KindDate,
			FieldISIN:         KindExact,
			FieldCurrency:     KindExact,
		},
	}
}

// withDefaults fills unset members from DefaultConfig.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.NumericTolerance <= 0 {
		c.NumericTolerance = defaults.NumericTolerance
	}
	if c.DateToleranceDays < 0 {
		c.DateToleranceDays = defaults.DateToleranceDays
	}
	if len(c.FieldOrder) == 0 {
		c.FieldOrder = defaults.FieldOrder
	}
	if len(c.Synonyms) == 0 {
		c.Synonyms = defaults.Synonyms
	}
	if len(c.Kinds) == 0 {
		c.Kinds = defaults.Kinds
	}
	return c
}

// kindOf returns the comparator classification for a canonical field.
func (c Config) kindOf(field string) Kind {
	if kind, ok := c.Kinds[field]; ok {
		return kind
	}
	return KindText
}
