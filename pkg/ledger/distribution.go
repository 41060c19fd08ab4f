package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// share is the amount an account contributes to a distribution.
type share struct {
	account  Address
	metadata *Metadata
	amount   Amount
}

// collectShares returns the non-zero amounts of the accounts with metadata in ascending account
// order, together with their sum.
func (s *state) collectShares(store *accountStore[Amount]) ([]*share, Amount, error) {
	var total Amount
	shares := make([]*share, 0)

	if err := s.streamMetadata(func(account Address, metadata *Metadata) error {
		amount, err := loadAmount(store, account)
		if err != nil {
			return err
		}

		if amount.IsZero() {
			return nil
		}

		if total, err = total.Add(amount); err != nil {
			return ierrors.Wrapf(err, "failed to sum %s", store.name)
		}

		shares = append(shares, &share{account: account, metadata: metadata, amount: amount})

		return nil
	}); err != nil {
		return nil, Amount{}, err
	}

	return shares, total, nil
}

// distributeLiquidity writes the share of every account in the completed stake. Nothing is written
// if there is no completed stake. Ratios of accounts that no longer contribute are kept.
func (u *unitOfWork) distributeLiquidity() error {
	shares, total, err := u.collectShares(u.completedStakes)
	if err != nil {
		return err
	}

	if total.IsZero() {
		u.LogDebug("no completed stake to distribute")

		return nil
	}

	totalLiquidStake, err := u.loadTotalLiquidStake()
	if err != nil {
		return err
	}

	for _, s := range shares {
		ratio, err := NewRatio(s.amount, total)
		if err != nil {
			return ierrors.Wrapf(err, "failed to compute stake ratio of account %s", s.account)
		}

		if err = u.stakeRatios.Store(s.account, ratio); err != nil {
			return err
		}

		liquidityAmount, err := ratio.Apply(totalLiquidStake)
		if err != nil {
			return ierrors.Wrapf(err, "failed to compute liquidity amount of account %s", s.account)
		}

		update := &StakeRatioUpdate{
			Account:          s.account,
			Ratio:            ratio,
			LiquidityAddress: s.metadata.LiquidityAddress,
			LiquidityAmount:  liquidityAmount,
		}
		u.queue(func() { u.events.StakeRatioUpdated.Trigger(update) })
	}

	u.LogDebug("liquidity distributed", "accounts", len(shares), "completedStake", total, "totalLiquidStake", totalLiquidStake)

	return nil
}

// resetStakeRatios deletes every stake ratio and zeroes every completed stake.
func (u *unitOfWork) resetStakeRatios() error {
	if err := u.stakeRatios.Clear(); err != nil {
		return err
	}

	return u.completedStakes.StreamKeys(func(account Address) error {
		return u.completedStakes.Store(account, Amount{})
	})
}
