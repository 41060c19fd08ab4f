package snapshotcreator

import (
	"time"

	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

// Options stores the details about the genesis snapshot of a ledger.
type Options struct {
	// FilePath is the path to the snapshot file.
	FilePath string

	// Config is the ledger config stored at genesis.
	Config *ledger.Config

	// GenesisTime seeds the processing clocks of all tasks.
	GenesisTime time.Time

	// Accounts defines the accounts that are registered as part of the genesis.
	Accounts []AccountDetails
}

// AccountDetails describes an account registered at genesis.
type AccountDetails struct {
	Account           ledger.Address
	RewardsAddress    ledger.Address
	LiquidityAddress  ledger.Address
	RedemptionAddress ledger.Address
	MinReward         ledger.Amount
	MaxReward         ledger.Amount

	// Reward is credited to the reward balance of the account if it is not zero.
	Reward ledger.Amount
}

func NewOptions(opts ...options.Option[Options]) *Options {
	return options.Apply(&Options{
		FilePath:    "snapshot.bin",
		GenesisTime: time.Now(),
	}, opts)
}

func WithFilePath(filePath string) options.Option[Options] {
	return func(m *Options) {
		m.FilePath = filePath
	}
}

// WithConfig defines the ledger config stored at genesis.
func WithConfig(config *ledger.Config) options.Option[Options] {
	return func(m *Options) {
		m.Config = config
	}
}

func WithGenesisTime(genesisTime time.Time) options.Option[Options] {
	return func(m *Options) {
		m.GenesisTime = genesisTime
	}
}

// WithAccounts adds the accounts that are registered at genesis.
func WithAccounts(accounts ...AccountDetails) options.Option[Options] {
	return func(m *Options) {
		m.Accounts = append(m.Accounts, accounts...)
	}
}
