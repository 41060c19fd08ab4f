package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
)

const (
	MinAddressLength = 3
	MaxAddressLength = 128
)

// Address identifies an account of the ledger.
type Address string

// AddressFromString validates the given string and returns it as an Address.
func AddressFromString(s string) (Address, error) {
	address := Address(s)
	if err := address.Validate(); err != nil {
		return "", err
	}

	return address, nil
}

// AddressFromBytes is the kvstore.BytesToObject counterpart of Address.Bytes.
func AddressFromBytes(b []byte) (Address, int, error) {
	address, err := AddressFromString(string(b))
	if err != nil {
		return "", 0, err
	}

	return address, len(b), nil
}

// Validate checks that the address only consists of lowercase alphanumeric characters and has a valid length.
func (a Address) Validate() error {
	if len(a) < MinAddressLength || len(a) > MaxAddressLength {
		return ierrors.WithMessagef(ErrMalformedInput, "address length %d is out of range [%d, %d]", len(a), MinAddressLength, MaxAddressLength)
	}

	for i := 0; i < len(a); i++ {
		if c := a[i]; (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ierrors.WithMessagef(ErrMalformedInput, "address %q contains invalid character at position %d", string(a), i)
		}
	}

	return nil
}

func (a Address) Bytes() ([]byte, error) {
	return []byte(a), nil
}

func (a Address) String() string {
	return string(a)
}
