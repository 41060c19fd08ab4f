package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
)

func (u *unitOfWork) updateReward(account Address, amount Amount) error {
	if err := account.Validate(); err != nil {
		return err
	}

	balance, err := addAmount(u.rewardBalances, account, amount)
	if err != nil {
		return err
	}

	u.LogDebug("reward updated", "account", account, "amount", amount, "balance", balance)

	return nil
}

func (u *unitOfWork) bulkUpdateRewards(updates []*RewardUpdate) error {
	for i, update := range updates {
		if update == nil {
			return ierrors.WithMessagef(ErrMalformedInput, "reward update %d is empty", i)
		}

		if err := u.updateReward(update.Account, update.Amount); err != nil {
			return ierrors.Wrapf(err, "failed to apply reward update %d", i)
		}
	}

	return nil
}

// convertRewardsToDeposits turns the reward balance of every account with metadata into a pending
// deposit record. The deposited amount is capped at the max reward, balances below the min reward
// keep accumulating.
func (u *unitOfWork) convertRewardsToDeposits() error {
	return u.streamMetadata(func(account Address, metadata *Metadata) error {
		reward, err := loadAmount(u.rewardBalances, account)
		if err != nil {
			return err
		}

		amount := reward.Min(metadata.MaxReward)
		if amount.IsZero() || amount.LessThan(metadata.MinReward) {
			return nil
		}

		if _, err = u.createDepositRecord(account, amount); err != nil {
			return err
		}

		if _, err = addAmount(u.provisionalStakes, account, amount); err != nil {
			return err
		}

		return u.rewardBalances.Store(account, Amount{})
	})
}
