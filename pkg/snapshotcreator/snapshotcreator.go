package snapshotcreator

import (
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

// CreateSnapshot creates a new ledger in memory, registers the genesis accounts on behalf of the owner
// and writes the resulting state to the snapshot file.
func CreateSnapshot(opts ...options.Option[Options]) error {
	opt := NewOptions(opts...)

	if opt.Config == nil {
		return ierrors.New("no ledger config given")
	}

	l := ledger.New(mapdb.NewMapDB(), log.NewLogger().NewChildLogger("SnapshotCreator"), ledger.WithClock(clockwork.NewFakeClockAt(opt.GenesisTime)))

	if err := l.Initialize(opt.Config); err != nil {
		return ierrors.Wrap(err, "failed to initialize ledger")
	}

	for _, account := range opt.Accounts {
		if err := registerAccount(l, opt.Config.Owner, account); err != nil {
			return ierrors.Wrapf(err, "failed to register account %s", account.Account)
		}
	}

	return writeSnapshot(l, opt.FilePath)
}

func registerAccount(l *ledger.Ledger, owner ledger.Address, account AccountDetails) error {
	if _, err := l.Execute(owner, &ledger.SetMetadata{
		Account:           account.Account,
		RewardsAddress:    account.RewardsAddress,
		LiquidityAddress:  account.LiquidityAddress,
		RedemptionAddress: account.RedemptionAddress,
		MinReward:         account.MinReward,
		MaxReward:         account.MaxReward,
	}); err != nil {
		return err
	}

	if account.Reward.IsZero() {
		return nil
	}

	_, err := l.Execute(owner, &ledger.UpdateReward{Account: account.Account, Amount: account.Reward})

	return err
}

func writeSnapshot(l *ledger.Ledger, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return ierrors.Wrapf(err, "failed to create snapshot file %s", filePath)
	}

	if err = l.Export(file); err != nil {
		return ierrors.Join(err, file.Close())
	}

	return file.Close()
}
