package entity

// UnconvertedReason explains why a conversion passed its input through
type UnconvertedReason string

const (
	// ReasonInvalidAmount is used for absent, zero, NaN or non-numeric amounts
	ReasonInvalidAmount UnconvertedReason = "invalid_amount"
	// ReasonSameCurrency is used when source and target currency are equal
	ReasonSameCurrency UnconvertedReason = "same_currency"
	// ReasonRatesUnavailable is used when no rate snapshot could be obtained
	ReasonRatesUnavailable UnconvertedReason = "rates_unavailable"
	// ReasonMissingRate is used when the snapshot lacks the source or target currency
	ReasonMissingRate UnconvertedReason = "missing_rate"
	// ReasonConversionFailed is used when the lookup failed unexpectedly
	ReasonConversionFailed UnconvertedReason = "conversion_failed"
)

// Conversion is the outcome of converting an amount between two currencies.
// A zero Reason means the value was actually converted.
type Conversion struct {
	Value  float64           `json:"value"`
	Reason UnconvertedReason `json:"reason,omitempty"`
}

// Converted returns a successful conversion outcome
func Converted(value float64) Conversion {
	return Conversion{Value: value}
}

// Unconverted returns a pass-through outcome with the given reason
func Unconverted(value float64, reason UnconvertedReason) Conversion {
	return Conversion{Value: value, Reason: reason}
}

// IsConverted reports whether rates were applied to produce Value
func (c Conversion) IsConverted() bool {
	return c.Reason == ""
}

// Outcome returns a short label for logs and metrics
func (c Conversion) Outcome() string {
	if c.IsConverted() {
		return "converted"
	}
	return string(c.Reason)
}
