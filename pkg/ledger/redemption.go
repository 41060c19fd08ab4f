package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// setRedeemTokens adds to the redemption balance of an account with metadata.
func (u *unitOfWork) setRedeemTokens(account Address, amount Amount) error {
	if _, err := u.requireMetadata(account); err != nil {
		return err
	}

	balance, err := addAmount(u.redemptionBalances, account, amount)
	if err != nil {
		return err
	}

	u.LogDebug("redeem tokens set", "account", account, "amount", amount, "balance", balance)

	return nil
}

// distributeRedeemTokens turns the redemption balances into redemption ratios and zeroes the balances.
func (u *unitOfWork) distributeRedeemTokens() error {
	shares, total, err := u.collectShares(u.redemptionBalances)
	if err != nil {
		return err
	}

	if total.IsZero() {
		return ErrNoRedemptionRecords
	}

	distribution := &RedemptionDistribution{
		Total:    total,
		Accounts: make([]Address, 0, len(shares)),
	}

	for _, s := range shares {
		ratio, err := NewRatio(s.amount, total)
		if err != nil {
			return ierrors.Wrapf(err, "failed to compute redemption ratio of account %s", s.account)
		}

		if err = u.redemptionRatios.Store(s.account, ratio); err != nil {
			return err
		}

		if err = u.redemptionBalances.Store(s.account, Amount{}); err != nil {
			return err
		}

		update := &RedemptionRatioUpdate{
			Account:           s.account,
			Ratio:             ratio,
			RedemptionAddress: s.metadata.RedemptionAddress,
			Amount:            s.amount,
		}
		u.queue(func() { u.events.RedemptionRatioUpdated.Trigger(update) })

		distribution.Accounts = append(distribution.Accounts, s.account)
	}

	u.queue(func() { u.events.RedeemTokensDistributed.Trigger(distribution) })

	u.LogDebug("redeem tokens distributed", "accounts", len(shares), "total", total)

	return nil
}

func (u *unitOfWork) resetRedemptionRatios() error {
	return u.redemptionRatios.Clear()
}
