package presets

import (
	"fmt"
	"time"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/ioutils"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	"github.com/iotaledger/stake-ledger/pkg/snapshotcreator"
)

type IntervalsYaml struct {
	RewardAccrual       time.Duration `yaml:"rewardAccrual"`
	Maturation          time.Duration `yaml:"maturation"`
	RedemptionRateQuery time.Duration `yaml:"redemptionRateQuery"`
	RewardsWithdrawal   time.Duration `yaml:"rewardsWithdrawal"`
	RedemptionThreshold time.Duration `yaml:"redemptionThreshold"`
}

// AccountYaml holds the amounts as decimal strings, they exceed the range of the YAML integers.
type AccountYaml struct {
	Account           string `yaml:"account"`
	RewardsAddress    string `yaml:"rewardsAddress"`
	LiquidityAddress  string `yaml:"liquidityAddress"`
	RedemptionAddress string `yaml:"redemptionAddress"`
	MinReward         string `yaml:"minReward"`
	MaxReward         string `yaml:"maxReward"`
	Reward            string `yaml:"reward"`
}

type ConfigYaml struct {
	Name        string `yaml:"name"`
	FilePath    string `yaml:"filepath"`
	Owner       string `yaml:"owner"`
	GenesisUnix int64  `yaml:"genesisUnix"`

	Intervals IntervalsYaml `yaml:"intervals"`
	Accounts  []AccountYaml `yaml:"accounts"`
}

func GenerateFromYaml(configFile string) ([]options.Option[snapshotcreator.Options], error) {
	var configYaml ConfigYaml
	if err := ioutils.ReadYAMLFromFile(configFile, &configYaml); err != nil {
		return nil, err
	}

	owner, err := ledger.AddressFromString(configYaml.Owner)
	if err != nil {
		return nil, ierrors.Wrap(err, "invalid owner")
	}

	accounts := make([]snapshotcreator.AccountDetails, 0, len(configYaml.Accounts))
	for _, accountYaml := range configYaml.Accounts {
		account, err := accountYaml.details()
		if err != nil {
			return nil, ierrors.Wrapf(err, "invalid account %s", accountYaml.Account)
		}

		fmt.Printf("adding account %s with reward range [%s, %s]\n", account.Account, account.MinReward, account.MaxReward)
		accounts = append(accounts, account)
	}

	opts := []options.Option[snapshotcreator.Options]{
		snapshotcreator.WithConfig(&ledger.Config{
			Owner:                       owner,
			RewardAccrualInterval:       seconds(configYaml.Intervals.RewardAccrual),
			MaturationInterval:          seconds(configYaml.Intervals.Maturation),
			RedemptionRateQueryInterval: seconds(configYaml.Intervals.RedemptionRateQuery),
			RewardsWithdrawalInterval:   seconds(configYaml.Intervals.RewardsWithdrawal),
			RedemptionIntervalThreshold: seconds(configYaml.Intervals.RedemptionThreshold),
		}),
		snapshotcreator.WithAccounts(accounts...),
	}

	if configYaml.FilePath != "" {
		opts = append(opts, snapshotcreator.WithFilePath(configYaml.FilePath))
	}

	if configYaml.GenesisUnix != 0 {
		opts = append(opts, snapshotcreator.WithGenesisTime(time.Unix(configYaml.GenesisUnix, 0)))
	}

	return opts, nil
}

func (a AccountYaml) details() (snapshotcreator.AccountDetails, error) {
	var details snapshotcreator.AccountDetails
	var err error

	addresses := []struct {
		target *ledger.Address
		value  string
	}{
		{&details.Account, a.Account},
		{&details.RewardsAddress, a.RewardsAddress},
		{&details.LiquidityAddress, a.LiquidityAddress},
		{&details.RedemptionAddress, a.RedemptionAddress},
	}
	for _, address := range addresses {
		if *address.target, err = ledger.AddressFromString(address.value); err != nil {
			return details, err
		}
	}

	amounts := []struct {
		target *ledger.Amount
		value  string
	}{
		{&details.MinReward, a.MinReward},
		{&details.MaxReward, a.MaxReward},
		{&details.Reward, a.Reward},
	}
	for _, amount := range amounts {
		if amount.value == "" {
			continue
		}

		if *amount.target, err = ledger.AmountFromString(amount.value); err != nil {
			return details, err
		}
	}

	return details, nil
}

func seconds(d time.Duration) uint64 {
	if d < 0 {
		return 0
	}

	return uint64(d / time.Second)
}
