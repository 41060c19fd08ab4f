package ledger

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/iotaledger/hive.go/ierrors"
)

// RatioPrecision is the number of fractional digits a Ratio is truncated to.
const RatioPrecision = 18

// Ratio is a fixed-point share in [0, 1].
type Ratio struct {
	value decimal.Decimal
}

// NewRatio computes part / total truncated toward zero.
func NewRatio(part Amount, total Amount) (Ratio, error) {
	if total.IsZero() {
		return Ratio{}, ierrors.WithMessagef(ErrArithmeticOverflow, "division of %s by zero", part)
	}

	if total.LessThan(part) {
		return Ratio{}, ierrors.WithMessagef(ErrArithmeticOverflow, "part %s exceeds total %s", part, total)
	}

	quotient, _ := decimal.NewFromBigInt(part.BigInt(), 0).QuoRem(decimal.NewFromBigInt(total.BigInt(), 0), RatioPrecision)

	return Ratio{value: quotient}, nil
}

// RatioFromString parses a decimal string.
func RatioFromString(s string) (Ratio, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Ratio{}, ierrors.WithMessagef(ErrMalformedInput, "invalid ratio %q: %s", s, err)
	}

	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return Ratio{}, ierrors.WithMessagef(ErrMalformedInput, "ratio %q is out of range [0, 1]", s)
	}

	return Ratio{value: value.Truncate(RatioPrecision)}, nil
}

func RatioFromBytes(b []byte) (Ratio, int, error) {
	ratio, err := RatioFromString(string(b))
	if err != nil {
		return Ratio{}, 0, err
	}

	return ratio, len(b), nil
}

func (r Ratio) Bytes() ([]byte, error) {
	return []byte(r.String()), nil
}

// Apply returns floor(r * amount).
func (r Ratio) Apply(amount Amount) (Amount, error) {
	return AmountFromBigInt(r.value.Mul(decimal.NewFromBigInt(amount.BigInt(), 0)).Floor().BigInt())
}

// Add returns the exact sum of both ratios. The result may exceed 1, so it is only meant for checks.
func (r Ratio) Add(other Ratio) Ratio {
	return Ratio{value: r.value.Add(other.value)}
}

func (r Ratio) Equal(other Ratio) bool {
	return r.value.Equal(other.value)
}

func (r Ratio) IsZero() bool {
	return r.value.IsZero()
}

func (r Ratio) Decimal() decimal.Decimal {
	return r.value
}

// String renders the ratio without trailing zeros, e.g. "0.2".
func (r Ratio) String() string {
	return r.value.String()
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ierrors.WithMessagef(ErrMalformedInput, "ratio must be a decimal string: %s", err)
	}

	parsed, err := RatioFromString(s)
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}
