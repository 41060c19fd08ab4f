package ledger

import "github.com/iotaledger/hive.go/ierrors"

var (
	// ErrUnauthorized is returned if a restricted operation is executed by someone other than the owner.
	ErrUnauthorized = ierrors.New("sender is not the owner")

	// ErrInvalidRewardRange is returned if the max reward of a metadata entry is lower than its min reward.
	ErrInvalidRewardRange = ierrors.New("max reward must not be lower than min reward")

	// ErrAccountNotFound is returned if an operation references an account without metadata.
	ErrAccountNotFound = ierrors.New("account metadata not found")

	// ErrNoRedemptionRecords is returned if the redemption tokens are distributed while all balances are zero.
	ErrNoRedemptionRecords = ierrors.New("no redemption records to distribute")

	// ErrArithmeticOverflow is returned if a checked addition or subtraction leaves the amount domain.
	ErrArithmeticOverflow = ierrors.New("arithmetic overflow")

	// ErrMalformedInput is returned if an address, amount or operation can not be decoded.
	ErrMalformedInput = ierrors.New("malformed input")

	ErrNotInitialized     = ierrors.New("ledger is not initialized")
	ErrAlreadyInitialized = ierrors.New("ledger is already initialized")
	ErrClockNotSeeded     = ierrors.New("processing clock was not seeded")
)
