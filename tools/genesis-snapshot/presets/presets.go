package presets

import (
	"time"

	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	"github.com/iotaledger/stake-ledger/pkg/snapshotcreator"
)

const defaultOwner ledger.Address = "wasm1owner"

// Base uses the intervals of a production deployment.
var Base = []options.Option[snapshotcreator.Options]{
	snapshotcreator.WithFilePath("snapshot.bin"),
	snapshotcreator.WithConfig(&ledger.Config{
		Owner:                       defaultOwner,
		RewardAccrualInterval:       uint64(time.Hour / time.Second),
		MaturationInterval:          uint64(2 * time.Hour / time.Second),
		RedemptionRateQueryInterval: uint64(3 * time.Hour / time.Second),
		RewardsWithdrawalInterval:   uint64(4 * time.Hour / time.Second),
		RedemptionIntervalThreshold: uint64(30 * time.Minute / time.Second),
	}),
}

// Docker shortens the intervals so that deposits mature within a few minutes.
var Docker = []options.Option[snapshotcreator.Options]{
	snapshotcreator.WithFilePath("docker-network.snapshot"),
	snapshotcreator.WithConfig(&ledger.Config{
		Owner:                       defaultOwner,
		RewardAccrualInterval:       60,
		MaturationInterval:          120,
		RedemptionRateQueryInterval: 180,
		RewardsWithdrawalInterval:   240,
		RedemptionIntervalThreshold: 30,
	}),
	snapshotcreator.WithAccounts(
		snapshotcreator.AccountDetails{ // validator-1
			Account:           "wasm1validator1",
			RewardsAddress:    "wasm1validator1rewards",
			LiquidityAddress:  "wasm1validator1lp",
			RedemptionAddress: "wasm1validator1redemption",
			MinReward:         ledger.NewAmount(1_000),
			MaxReward:         ledger.NewAmount(1_000_000),
		},
		snapshotcreator.AccountDetails{ // validator-2
			Account:           "wasm1validator2",
			RewardsAddress:    "wasm1validator2rewards",
			LiquidityAddress:  "wasm1validator2lp",
			RedemptionAddress: "wasm1validator2redemption",
			MinReward:         ledger.NewAmount(1_000),
			MaxReward:         ledger.NewAmount(1_000_000),
		},
	),
}
