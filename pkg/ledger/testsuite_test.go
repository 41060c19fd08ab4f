//nolint:forcetypeassert,varnamelen,revive,exhaustruct // we don't care about these linters in test cases
package ledger_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

const (
	owner    ledger.Address = "wasm1ownerxyz"
	alice    ledger.Address = "wasm1alicexyz"
	bob      ledger.Address = "wasm1bobxyz"
	stranger ledger.Address = "wasm1strangerxyz"
)

var genesisTime = time.Unix(1_700_000_000, 0)

func defaultConfig() *ledger.Config {
	return &ledger.Config{
		Owner:                       owner,
		RewardAccrualInterval:       3600,
		MaturationInterval:          7200,
		RedemptionRateQueryInterval: 10800,
		RewardsWithdrawalInterval:   14400,
		RedemptionIntervalThreshold: 1800,
	}
}

// shortIntervalConfig lets rewards become deposits after 1s and deposits mature after 3s.
func shortIntervalConfig() *ledger.Config {
	return &ledger.Config{
		Owner:                       owner,
		RewardAccrualInterval:       1,
		MaturationInterval:          3,
		RedemptionRateQueryInterval: 5,
		RewardsWithdrawalInterval:   1,
		RedemptionIntervalThreshold: 5,
	}
}

type TestSuite struct {
	t *testing.T

	Store  kvstore.KVStore
	Clock  *clockwork.FakeClock
	Ledger *ledger.Ledger

	CreatedRecords   []*ledger.DepositRecord
	CompletedRecords []*ledger.DepositRecord
	StakeRatios      []*ledger.StakeRatioUpdate
	Redemptions      []*ledger.RedemptionRatioUpdate
	Receipts         []*ledger.Receipt
}

func NewTestSuite(t *testing.T, config *ledger.Config) *TestSuite {
	ts := &TestSuite{
		t:     t,
		Store: mapdb.NewMapDB(),
		Clock: clockwork.NewFakeClockAt(genesisTime),
	}

	ts.Ledger = ledger.New(ts.Store, log.NewLogger().NewChildLogger(t.Name()), ledger.WithClock(ts.Clock))

	ts.Ledger.Events.DepositRecordCreated.Hook(func(record *ledger.DepositRecord) {
		ts.CreatedRecords = append(ts.CreatedRecords, record)
	})
	ts.Ledger.Events.DepositRecordCompleted.Hook(func(record *ledger.DepositRecord) {
		ts.CompletedRecords = append(ts.CompletedRecords, record)
	})
	ts.Ledger.Events.StakeRatioUpdated.Hook(func(update *ledger.StakeRatioUpdate) {
		ts.StakeRatios = append(ts.StakeRatios, update)
	})
	ts.Ledger.Events.RedemptionRatioUpdated.Hook(func(update *ledger.RedemptionRatioUpdate) {
		ts.Redemptions = append(ts.Redemptions, update)
	})
	ts.Ledger.Events.OperationExecuted.Hook(func(receipt *ledger.Receipt) {
		ts.Receipts = append(ts.Receipts, receipt)
	})

	if config != nil {
		require.NoError(t, ts.Ledger.Initialize(config))
	}

	return ts
}

func (ts *TestSuite) Advance(seconds int) {
	ts.Clock.Advance(time.Duration(seconds) * time.Second)
}

func (ts *TestSuite) Execute(sender ledger.Address, operation ledger.Operation) *ledger.Receipt {
	receipt, err := ts.Ledger.Execute(sender, operation)
	require.NoError(ts.t, err)

	return receipt
}

func (ts *TestSuite) Tick() *ledger.Receipt {
	return ts.Execute(owner, &ledger.Tick{})
}

func (ts *TestSuite) SetMetadata(account ledger.Address, minReward uint64, maxReward uint64) {
	ts.Execute(owner, &ledger.SetMetadata{
		Account:           account,
		RewardsAddress:    account + "rewards",
		LiquidityAddress:  account + "lp",
		RedemptionAddress: account + "redemption",
		MinReward:         ledger.NewAmount(minReward),
		MaxReward:         ledger.NewAmount(maxReward),
	})
}

func (ts *TestSuite) UpdateReward(account ledger.Address, amount uint64) {
	ts.Execute(owner, &ledger.UpdateReward{Account: account, Amount: ledger.NewAmount(amount)})
}

func (ts *TestSuite) AssertAmount(expected uint64, actual ledger.Amount, err error) {
	require.NoError(ts.t, err)
	require.Equal(ts.t, ledger.NewAmount(expected).String(), actual.String())
}

func (ts *TestSuite) AssertRewardBalance(account ledger.Address, expected uint64) {
	balance, err := ts.Ledger.RewardBalance(account)
	ts.AssertAmount(expected, balance, err)
}

func (ts *TestSuite) AssertTotalLiquidStake(expected uint64) {
	total, err := ts.Ledger.TotalLiquidStake()
	ts.AssertAmount(expected, total, err)
}

func (ts *TestSuite) AssertProvisionalStake(account ledger.Address, expected uint64) {
	stake, err := ts.Ledger.ProvisionalStake(account)
	ts.AssertAmount(expected, stake, err)
}

func (ts *TestSuite) AssertCompletedStake(account ledger.Address, expected uint64) {
	stake, err := ts.Ledger.CompletedStake(account)
	ts.AssertAmount(expected, stake, err)
}

func (ts *TestSuite) DepositRecords(account ledger.Address) []*ledger.DepositRecord {
	records, err := ts.Ledger.DepositRecords(account)
	require.NoError(ts.t, err)

	return records
}

func (ts *TestSuite) Height() uint64 {
	height, err := ts.Ledger.Height()
	require.NoError(ts.t, err)

	return height
}

// RatioStrings returns a func that renders the result of a ratio query as account -> ratio.
func RatioStrings(t *testing.T) func(ratios []*ledger.AccountRatio, err error) map[ledger.Address]string {
	return func(ratios []*ledger.AccountRatio, err error) map[ledger.Address]string {
		require.NoError(t, err)

		rendered := make(map[ledger.Address]string)
		for _, ratio := range ratios {
			rendered[ratio.Account] = ratio.Ratio.String()
		}

		return rendered
	}
}
