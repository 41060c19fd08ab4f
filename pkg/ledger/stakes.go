package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
)

func (u *unitOfWork) addStake(account Address, amount Amount) error {
	stake, err := addAmount(u.provisionalStakes, account, amount)
	if err != nil {
		return err
	}

	u.LogDebug("stake added", "account", account, "amount", amount, "provisionalStake", stake)

	return nil
}

// matureDepositRecords completes every pending deposit record. The amount moves from the provisional
// stake of the account into its completed stake and the total liquid stake.
func (u *unitOfWork) matureDepositRecords() error {
	total, err := u.loadTotalLiquidStake()
	if err != nil {
		return err
	}

	accounts, err := u.accounts()
	if err != nil {
		return err
	}

	for _, account := range accounts {
		records, err := u.depositRecordsOf(account)
		if err != nil {
			return err
		}

		for _, record := range records {
			if !record.IsPending() {
				continue
			}

			if total, err = u.matureDepositRecord(record, total); err != nil {
				return ierrors.Wrapf(err, "failed to mature deposit record %d", record.ID)
			}
		}
	}

	if err = u.totalLiquidStake.Set(total); err != nil {
		return ierrors.Wrap(err, "failed to store total liquid stake")
	}

	u.queue(func() { u.events.TotalLiquidStakeUpdated.Trigger(total) })

	return nil
}

func (u *unitOfWork) matureDepositRecord(record *DepositRecord, total Amount) (Amount, error) {
	if _, err := addAmount(u.completedStakes, record.Account, record.Amount); err != nil {
		return Amount{}, err
	}

	updatedTotal, err := total.Add(record.Amount)
	if err != nil {
		return Amount{}, ierrors.Wrap(err, "failed to add to total liquid stake")
	}

	if _, err = subAmount(u.provisionalStakes, record.Account, record.Amount); err != nil {
		return Amount{}, err
	}

	completed := record.Clone()
	completed.Status = DepositStatusCompleted
	if err = u.storeDepositRecord(completed); err != nil {
		return Amount{}, err
	}

	u.LogDebug("deposit record completed", "id", completed.ID, "account", completed.Account, "amount", completed.Amount)

	u.queue(func() { u.events.DepositRecordCompleted.Trigger(completed.Clone()) })

	return updatedTotal, nil
}

// subtractTotalLiquidStake decreases the total without touching the completed stakes, so afterwards
// the total no longer equals their sum.
func (u *unitOfWork) subtractTotalLiquidStake(amount Amount) error {
	total, err := u.loadTotalLiquidStake()
	if err != nil {
		return err
	}

	updatedTotal, err := total.Sub(amount)
	if err != nil {
		return ierrors.Wrap(err, "failed to subtract from total liquid stake")
	}

	if err = u.totalLiquidStake.Set(updatedTotal); err != nil {
		return ierrors.Wrap(err, "failed to store total liquid stake")
	}

	u.LogDebug("total liquid stake decreased", "amount", amount, "total", updatedTotal)

	u.queue(func() { u.events.TotalLiquidStakeUpdated.Trigger(updatedTotal) })

	return nil
}
