package ledger

import (
	"encoding/json"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	// AmountLength is the length of a serialized Amount.
	AmountLength = 16

	amountBits = AmountLength * 8
)

// Amount is an unsigned 128-bit integer.
type Amount struct {
	value uint256.Int
}

// NewAmount creates an Amount from the given uint64.
func NewAmount(value uint64) Amount {
	var a Amount
	a.value.SetUint64(value)

	return a
}

// AmountFromString parses a base 10 string.
func AmountFromString(s string) (Amount, error) {
	value, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, ierrors.WithMessagef(ErrMalformedInput, "invalid amount %q: %s", s, err)
	}

	if value.BitLen() > amountBits {
		return Amount{}, ierrors.WithMessagef(ErrMalformedInput, "amount %q exceeds %d bits", s, amountBits)
	}

	return Amount{value: *value}, nil
}

// AmountFromBigInt converts the given big.Int into an Amount.
func AmountFromBigInt(b *big.Int) (Amount, error) {
	if b.Sign() < 0 {
		return Amount{}, ierrors.WithMessagef(ErrArithmeticOverflow, "amount %s is negative", b)
	}

	value, overflow := uint256.FromBig(b)
	if overflow || value.BitLen() > amountBits {
		return Amount{}, ierrors.WithMessagef(ErrArithmeticOverflow, "amount %s exceeds %d bits", b, amountBits)
	}

	return Amount{value: *value}, nil
}

// AmountFromBytes reads a big endian encoded Amount.
func AmountFromBytes(b []byte) (Amount, int, error) {
	if len(b) < AmountLength {
		return Amount{}, 0, ierrors.Errorf("not enough bytes to read amount: %d < %d", len(b), AmountLength)
	}

	var a Amount
	a.value.SetBytes(b[:AmountLength])

	return a, AmountLength, nil
}

func (a Amount) Bytes() ([]byte, error) {
	full := a.value.Bytes32()

	return full[32-AmountLength:], nil
}

// Add returns the sum of both amounts or ErrArithmeticOverflow if it does not fit into 128 bits.
func (a Amount) Add(other Amount) (Amount, error) {
	var sum Amount
	if _, overflow := sum.value.AddOverflow(&a.value, &other.value); overflow || sum.value.BitLen() > amountBits {
		return Amount{}, ierrors.WithMessagef(ErrArithmeticOverflow, "%s + %s", a, other)
	}

	return sum, nil
}

// Sub returns the difference of both amounts or ErrArithmeticOverflow if the result would be negative.
func (a Amount) Sub(other Amount) (Amount, error) {
	var difference Amount
	if _, underflow := difference.value.SubOverflow(&a.value, &other.value); underflow {
		return Amount{}, ierrors.WithMessagef(ErrArithmeticOverflow, "%s - %s", a, other)
	}

	return difference, nil
}

// Min returns the smaller of both amounts.
func (a Amount) Min(other Amount) Amount {
	if other.LessThan(a) {
		return other
	}

	return a
}

func (a Amount) Cmp(other Amount) int {
	return a.value.Cmp(&other.value)
}

func (a Amount) LessThan(other Amount) bool {
	return a.value.Lt(&other.value)
}

func (a Amount) Equal(other Amount) bool {
	return a.value.Eq(&other.value)
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

func (a Amount) BigInt() *big.Int {
	return a.value.ToBig()
}

func (a Amount) String() string {
	return a.value.ToBig().String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ierrors.WithMessagef(ErrMalformedInput, "amount must be a decimal string: %s", err)
	}

	parsed, err := AmountFromString(s)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}
