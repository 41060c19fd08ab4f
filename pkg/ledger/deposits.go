package ledger

import (
	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

// allocateDepositRecordID increments the global counter and returns the new value.
func (u *unitOfWork) allocateDepositRecordID() (uint64, error) {
	current, err := u.nextDepositRecordID.Get()
	if err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return 0, ierrors.WithMessage(ErrNotInitialized, "deposit record counter is missing")
		}

		return 0, ierrors.Wrap(err, "failed to load deposit record counter")
	}

	next, err := safemath.SafeAdd(current, 1)
	if err != nil {
		return 0, ierrors.WithMessagef(ErrArithmeticOverflow, "deposit record counter %d exhausted", current)
	}

	if err = u.nextDepositRecordID.Set(next); err != nil {
		return 0, ierrors.Wrap(err, "failed to store deposit record counter")
	}

	return next, nil
}

func (u *unitOfWork) createDepositRecord(account Address, amount Amount) (*DepositRecord, error) {
	id, err := u.allocateDepositRecordID()
	if err != nil {
		return nil, err
	}

	record := &DepositRecord{
		ID:        id,
		Account:   account,
		Amount:    amount,
		Status:    DepositStatusPending,
		Timestamp: u.now,
		Height:    u.currentHeight,
	}

	if err = u.storeDepositRecord(record); err != nil {
		return nil, err
	}

	u.LogDebug("deposit record created", "id", id, "account", account, "amount", amount)

	u.receipt.CreatedRecords = append(u.receipt.CreatedRecords, id)
	u.queue(func() { u.events.DepositRecordCreated.Trigger(record.Clone()) })

	return record, nil
}

// resetCompletedRecords removes every completed deposit record and keeps the pending ones.
func (u *unitOfWork) resetCompletedRecords() error {
	var completedKeys [][]byte
	if err := u.depositRecords.Iterate(kvstore.EmptyPrefix, func(key []byte, record *DepositRecord) bool {
		if !record.IsPending() {
			completedKeys = append(completedKeys, key)
		}

		return true
	}); err != nil {
		return ierrors.Wrap(err, "failed to iterate deposit records")
	}

	for _, key := range completedKeys {
		if err := u.depositRecords.Delete(key); err != nil {
			return ierrors.Wrap(err, "failed to delete completed deposit record")
		}
	}

	u.LogDebug("completed deposit records reset", "count", len(completedKeys))

	return nil
}

func (s *state) storeDepositRecord(record *DepositRecord) error {
	if err := s.depositRecords.Set(depositRecordKey(record.Account, record.ID), record); err != nil {
		return ierrors.Wrapf(err, "failed to store deposit record %d", record.ID)
	}

	return nil
}

// depositRecordsOf returns the deposit records of the account in id order.
func (s *state) depositRecordsOf(account Address) ([]*DepositRecord, error) {
	records := make([]*DepositRecord, 0)
	if err := s.depositRecords.Iterate(depositRecordKeyPrefix(account), func(_ []byte, record *DepositRecord) bool {
		records = append(records, record)

		return true
	}); err != nil {
		return nil, ierrors.Wrapf(err, "failed to iterate deposit records of account %s", account)
	}

	return records, nil
}
