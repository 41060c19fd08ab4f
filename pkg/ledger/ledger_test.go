//nolint:forcetypeassert,varnamelen,revive,exhaustruct // we don't care about these linters in test cases
package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func TestLedger_Initialize(t *testing.T) {
	ts := NewTestSuite(t, nil)

	initialized, err := ts.Ledger.IsInitialized()
	require.NoError(t, err)
	require.False(t, initialized)

	_, err = ts.Ledger.Execute(owner, &ledger.Tick{})
	require.ErrorIs(t, err, ledger.ErrNotInitialized)

	require.ErrorIs(t, ts.Ledger.Initialize(&ledger.Config{Owner: "Owner"}), ledger.ErrMalformedInput)
	require.NoError(t, ts.Ledger.Initialize(defaultConfig()))
	require.ErrorIs(t, ts.Ledger.Initialize(defaultConfig()), ledger.ErrAlreadyInitialized)

	config, err := ts.Ledger.Config()
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), config)

	ts.AssertTotalLiquidStake(0)
	require.Zero(t, ts.Height())

	accounts, err := ts.Ledger.Accounts()
	require.NoError(t, err)
	require.Empty(t, accounts)
}

func TestLedger_Authorization(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	for _, operation := range []ledger.Operation{
		&ledger.SetMetadata{Account: alice, RewardsAddress: alice, LiquidityAddress: alice, RedemptionAddress: alice},
		&ledger.UpdateReward{Account: alice, Amount: ledger.NewAmount(1)},
		&ledger.BulkUpdateRewards{},
		&ledger.DistributeLiquidity{},
		&ledger.SetRedeemTokens{Account: alice, Amount: ledger.NewAmount(1)},
		&ledger.DistributeRedeemTokens{},
		&ledger.SubtractTotalLiquidStake{},
		&ledger.ResetCompletedRecords{},
		&ledger.ResetStakeRatios{},
		&ledger.ResetRedemptionRatios{},
		&ledger.EmitLiquidStakeEvent{},
		&ledger.EmitDistributeLiquidityEvent{},
	} {
		_, err := ts.Ledger.Execute(stranger, operation)
		require.ErrorIsf(t, err, ledger.ErrUnauthorized, "operation %s", operation.Type())
	}

	require.Zero(t, ts.Height())
	require.Empty(t, ts.Receipts)

	// the tick and adding stake are open to everyone
	ts.Execute(stranger, &ledger.Tick{})
	ts.Execute(stranger, &ledger.AddStake{Amount: ledger.NewAmount(500)})

	ts.AssertProvisionalStake(stranger, 500)
	require.EqualValues(t, 2, ts.Height())

	_, err := ts.Ledger.Execute("Invalid Sender", &ledger.Tick{})
	require.ErrorIs(t, err, ledger.ErrMalformedInput)

	_, err = ts.Ledger.Execute(owner, nil)
	require.ErrorIs(t, err, ledger.ErrMalformedInput)
}

func TestLedger_SetMetadata(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	_, err := ts.Ledger.Execute(owner, &ledger.SetMetadata{
		Account:           alice,
		RewardsAddress:    alice,
		LiquidityAddress:  alice,
		RedemptionAddress: alice,
		MinReward:         ledger.NewAmount(100),
		MaxReward:         ledger.NewAmount(99),
	})
	require.ErrorIs(t, err, ledger.ErrInvalidRewardRange)

	_, err = ts.Ledger.Metadata(alice)
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = ts.Ledger.Execute(owner, &ledger.SetMetadata{
		Account:           alice,
		RewardsAddress:    "x",
		LiquidityAddress:  alice,
		RedemptionAddress: alice,
	})
	require.ErrorIs(t, err, ledger.ErrMalformedInput)

	ts.SetMetadata(bob, 10, 20)
	ts.SetMetadata(alice, 50, 1000)

	metadata, err := ts.Ledger.Metadata(alice)
	require.NoError(t, err)
	require.Equal(t, alice+"lp", metadata.LiquidityAddress)
	require.Equal(t, "50", metadata.MinReward.String())
	require.Equal(t, "1000", metadata.MaxReward.String())

	accounts, err := ts.Ledger.Accounts()
	require.NoError(t, err)
	require.Equal(t, []ledger.Address{alice, bob}, accounts)
}

func TestLedger_Clamping(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	ts.SetMetadata(alice, 50, 1000)
	ts.SetMetadata(bob, 50, 1000)
	ts.UpdateReward(alice, 1500)
	ts.UpdateReward(bob, 30)

	ts.Advance(3600)
	receipt := ts.Tick()
	require.Equal(t, []ledger.TaskName{ledger.TaskRewardAccrual}, receipt.ExecutedTasks)

	records := ts.DepositRecords(alice)
	require.Len(t, records, 1)
	require.Equal(t, "1000", records[0].Amount.String())
	require.Equal(t, ledger.DepositStatusPending, records[0].Status)
	require.EqualValues(t, genesisTime.Unix()+3600, records[0].Timestamp)
	require.Equal(t, receipt.Height, records[0].Height)
	// the counter starts at 1 and is incremented before use
	require.EqualValues(t, 2, records[0].ID)
	require.Equal(t, []uint64{2}, receipt.CreatedRecords)

	ts.AssertRewardBalance(alice, 0)
	ts.AssertProvisionalStake(alice, 1000)

	require.Empty(t, ts.DepositRecords(bob))
	ts.AssertRewardBalance(bob, 30)
	ts.AssertProvisionalStake(bob, 0)

	ts.AssertTotalLiquidStake(0)
	require.Len(t, ts.CreatedRecords, 1)
}

func TestLedger_IdempotentGate(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	ts.SetMetadata(alice, 50, 1000)
	ts.UpdateReward(alice, 100)

	ts.Advance(3599)
	require.Empty(t, ts.Tick().ExecutedTasks)
	require.Empty(t, ts.DepositRecords(alice))

	ts.Advance(1)
	require.Equal(t, []ledger.TaskName{ledger.TaskRewardAccrual}, ts.Tick().ExecutedTasks)
	require.Len(t, ts.DepositRecords(alice), 1)

	// new rewards within the same window are not converted
	ts.UpdateReward(alice, 200)
	ts.Advance(10)
	require.Empty(t, ts.Tick().ExecutedTasks)
	require.Len(t, ts.DepositRecords(alice), 1)
	ts.AssertRewardBalance(alice, 200)

	// the window starts at the last run, not at the last tick
	ts.Advance(3590)
	require.Equal(t, []ledger.TaskName{ledger.TaskRewardAccrual, ledger.TaskMaturation}, ts.Tick().ExecutedTasks)
	require.Len(t, ts.DepositRecords(alice), 2)
}

func TestLedger_TwoPhaseMaturation(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 50, 1000)
	ts.UpdateReward(alice, 100)

	ts.Advance(2)
	receipt := ts.Tick()
	require.Equal(t, []ledger.TaskName{ledger.TaskRewardAccrual, ledger.TaskRewardsWithdrawal}, receipt.ExecutedTasks)

	records := ts.DepositRecords(alice)
	require.Len(t, records, 1)
	require.Equal(t, ledger.DepositStatusPending, records[0].Status)
	require.Equal(t, "100", records[0].Amount.String())
	ts.AssertTotalLiquidStake(0)
	ts.AssertProvisionalStake(alice, 100)

	ts.Advance(2)
	receipt = ts.Tick()
	require.Contains(t, receipt.ExecutedTasks, ledger.TaskMaturation)

	records = ts.DepositRecords(alice)
	require.Len(t, records, 1)
	require.Equal(t, ledger.DepositStatusCompleted, records[0].Status)
	ts.AssertCompletedStake(alice, 100)
	ts.AssertProvisionalStake(alice, 0)
	ts.AssertTotalLiquidStake(100)

	require.Len(t, ts.CompletedRecords, 1)
	require.Equal(t, records[0].ID, ts.CompletedRecords[0].ID)

	// completed records are never touched again
	ts.Advance(3)
	ts.Tick()
	require.Len(t, ts.CompletedRecords, 1)
	ts.AssertTotalLiquidStake(100)
	ts.AssertCompletedStake(alice, 100)
}

func TestLedger_MonotonicIDs(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 1, 1000)
	ts.SetMetadata(bob, 1, 1000)

	for i := 0; i < 5; i++ {
		ts.Execute(owner, &ledger.BulkUpdateRewards{Updates: []*ledger.RewardUpdate{
			{Account: alice, Amount: ledger.NewAmount(10)},
			{Account: bob, Amount: ledger.NewAmount(20)},
		}})

		ts.Advance(1)
		ts.Tick()
	}

	require.Len(t, ts.CreatedRecords, 10)

	seen := make(map[uint64]bool)
	var lastID uint64
	for _, record := range ts.CreatedRecords {
		require.Greater(t, record.ID, lastID)
		require.False(t, seen[record.ID])

		seen[record.ID] = true
		lastID = record.ID
	}

	for _, account := range []ledger.Address{alice, bob} {
		records := ts.DepositRecords(account)
		require.Len(t, records, 5)

		for i := 1; i < len(records); i++ {
			require.Greater(t, records[i].ID, records[i-1].ID)
		}
	}
}

func TestLedger_DistributeLiquidity(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 1, 1000)
	ts.SetMetadata(bob, 1, 1000)

	// no completed stake at all
	heightBefore := ts.Height()
	ts.Execute(owner, &ledger.DistributeLiquidity{})
	require.Empty(t, RatioStrings(t)(ts.Ledger.StakeRatios()))
	require.Empty(t, ts.StakeRatios)
	require.Equal(t, heightBefore+1, ts.Height())

	ts.UpdateReward(alice, 200)
	ts.UpdateReward(bob, 800)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()
	ts.AssertTotalLiquidStake(1000)

	ts.Execute(owner, &ledger.DistributeLiquidity{})
	require.Equal(t, map[ledger.Address]string{alice: "0.2", bob: "0.8"}, RatioStrings(t)(ts.Ledger.StakeRatios()))

	ratio, err := ts.Ledger.StakeRatio(alice)
	require.NoError(t, err)
	require.Equal(t, "0.2", ratio.String())

	ratio, err = ts.Ledger.StakeRatio(stranger)
	require.NoError(t, err)
	require.True(t, ratio.IsZero())

	require.Len(t, ts.StakeRatios, 2)
	require.Equal(t, alice, ts.StakeRatios[0].Account)
	require.Equal(t, alice+"lp", ts.StakeRatios[0].LiquidityAddress)
	require.Equal(t, "200", ts.StakeRatios[0].LiquidityAmount.String())
	require.Equal(t, "800", ts.StakeRatios[1].LiquidityAmount.String())

	ts.Execute(owner, &ledger.ResetStakeRatios{})
	require.Empty(t, RatioStrings(t)(ts.Ledger.StakeRatios()))
	ts.AssertCompletedStake(alice, 0)
	ts.AssertCompletedStake(bob, 0)
	// the total and the provisional stakes are left alone
	ts.AssertTotalLiquidStake(1000)

	// resets are idempotent
	ts.Execute(owner, &ledger.ResetStakeRatios{})
	ts.Execute(owner, &ledger.DistributeLiquidity{})
	require.Empty(t, RatioStrings(t)(ts.Ledger.StakeRatios()))
}

func TestLedger_RedistributeAfterReset(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 1, 1000)
	ts.SetMetadata(bob, 1, 1000)

	ts.UpdateReward(alice, 100)
	ts.UpdateReward(bob, 100)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()
	ts.Execute(owner, &ledger.DistributeLiquidity{})
	require.Equal(t, map[ledger.Address]string{alice: "0.5", bob: "0.5"}, RatioStrings(t)(ts.Ledger.StakeRatios()))

	// after the reset only alice contributes
	ts.Execute(owner, &ledger.ResetStakeRatios{})
	ts.UpdateReward(alice, 100)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()
	ts.Execute(owner, &ledger.DistributeLiquidity{})
	require.Equal(t, map[ledger.Address]string{alice: "1"}, RatioStrings(t)(ts.Ledger.StakeRatios()))
}

func TestLedger_TruncatingRatios(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	for _, account := range []ledger.Address{alice, bob, stranger} {
		ts.SetMetadata(account, 1, 1000)
		ts.Execute(owner, &ledger.SetRedeemTokens{Account: account, Amount: ledger.NewAmount(1)})
	}

	ts.Execute(owner, &ledger.DistributeRedeemTokens{})

	ratios, err := ts.Ledger.RedemptionRatios()
	require.NoError(t, err)
	require.Len(t, ratios, 3)

	var sum ledger.Ratio
	for _, ratio := range ratios {
		require.Equal(t, "0.333333333333333333", ratio.Ratio.String())
		sum = sum.Add(ratio.Ratio)
	}

	require.Equal(t, "0.999999999999999999", sum.String())
}

func TestLedger_RedemptionDistribution(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	_, err := ts.Ledger.Execute(owner, &ledger.SetRedeemTokens{Account: alice, Amount: ledger.NewAmount(200)})
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)

	ts.SetMetadata(alice, 1, 1000)
	ts.SetMetadata(bob, 1, 1000)

	_, err = ts.Ledger.Execute(owner, &ledger.DistributeRedeemTokens{})
	require.ErrorIs(t, err, ledger.ErrNoRedemptionRecords)

	ts.Execute(owner, &ledger.SetRedeemTokens{Account: alice, Amount: ledger.NewAmount(150)})
	ts.Execute(owner, &ledger.SetRedeemTokens{Account: alice, Amount: ledger.NewAmount(50)})
	ts.Execute(owner, &ledger.SetRedeemTokens{Account: bob, Amount: ledger.NewAmount(800)})

	balance, err := ts.Ledger.RedemptionBalance(alice)
	ts.AssertAmount(200, balance, err)

	ts.Execute(owner, &ledger.DistributeRedeemTokens{})
	require.Equal(t, map[ledger.Address]string{alice: "0.2", bob: "0.8"}, RatioStrings(t)(ts.Ledger.RedemptionRatios()))

	balance, err = ts.Ledger.RedemptionBalance(alice)
	ts.AssertAmount(0, balance, err)
	balance, err = ts.Ledger.RedemptionBalance(bob)
	ts.AssertAmount(0, balance, err)

	require.Len(t, ts.Redemptions, 2)
	require.Equal(t, alice+"redemption", ts.Redemptions[0].RedemptionAddress)
	require.Equal(t, "200", ts.Redemptions[0].Amount.String())

	// an empty distribution fails and keeps the ratios of the previous one
	_, err = ts.Ledger.Execute(owner, &ledger.DistributeRedeemTokens{})
	require.ErrorIs(t, err, ledger.ErrNoRedemptionRecords)
	require.Equal(t, map[ledger.Address]string{alice: "0.2", bob: "0.8"}, RatioStrings(t)(ts.Ledger.RedemptionRatios()))

	ts.Execute(owner, &ledger.ResetRedemptionRatios{})
	require.Empty(t, RatioStrings(t)(ts.Ledger.RedemptionRatios()))
	ts.Execute(owner, &ledger.ResetRedemptionRatios{})
}

func TestLedger_Rollback(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	ts.SetMetadata(alice, 1, 1000)
	heightBefore := ts.Height()
	stateBefore, err := ts.Ledger.StateSHA256Sum()
	require.NoError(t, err)
	receiptsBefore := len(ts.Receipts)

	// the second update is invalid, so the first one must not be applied either
	_, err = ts.Ledger.Execute(owner, &ledger.BulkUpdateRewards{Updates: []*ledger.RewardUpdate{
		{Account: alice, Amount: ledger.NewAmount(100)},
		{Account: "NotValid", Amount: ledger.NewAmount(100)},
	}})
	require.ErrorIs(t, err, ledger.ErrMalformedInput)

	maxAmount, err := ledger.AmountFromString("340282366920938463463374607431768211455")
	require.NoError(t, err)

	_, err = ts.Ledger.Execute(owner, &ledger.BulkUpdateRewards{Updates: []*ledger.RewardUpdate{
		{Account: alice, Amount: maxAmount},
		{Account: alice, Amount: ledger.NewAmount(1)},
	}})
	require.ErrorIs(t, err, ledger.ErrArithmeticOverflow)

	ts.AssertRewardBalance(alice, 0)
	require.Equal(t, heightBefore, ts.Height())
	require.Len(t, ts.Receipts, receiptsBefore)

	stateAfter, err := ts.Ledger.StateSHA256Sum()
	require.NoError(t, err)
	require.Equal(t, stateBefore, stateAfter)
}

func TestLedger_TickRollback(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 1, 1000)
	ts.UpdateReward(alice, 100)

	// the provisional stake of alice is full, so converting her reward overflows after the record was created
	maxAmount, err := ledger.AmountFromString("340282366920938463463374607431768211455")
	require.NoError(t, err)

	ts.Execute(alice, &ledger.AddStake{Amount: maxAmount})

	stateBefore, err := ts.Ledger.StateSHA256Sum()
	require.NoError(t, err)

	ts.Advance(2)
	_, err = ts.Ledger.Execute(owner, &ledger.Tick{})
	require.ErrorIs(t, err, ledger.ErrArithmeticOverflow)

	// neither the clock of the reward task nor the record counter moved
	stateAfter, err := ts.Ledger.StateSHA256Sum()
	require.NoError(t, err)
	require.Equal(t, stateBefore, stateAfter)
	require.Empty(t, ts.DepositRecords(alice))
	require.Empty(t, ts.CreatedRecords)
	ts.AssertRewardBalance(alice, 100)
}

func TestLedger_SubtractTotalLiquidStake(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 1, 1000)
	ts.UpdateReward(alice, 100)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()
	ts.AssertTotalLiquidStake(100)

	ts.Execute(owner, &ledger.SubtractTotalLiquidStake{Amount: ledger.NewAmount(40)})
	ts.AssertTotalLiquidStake(60)

	// the total is deliberately decoupled from the sum of the completed stakes
	ts.AssertCompletedStake(alice, 100)

	_, err := ts.Ledger.Execute(owner, &ledger.SubtractTotalLiquidStake{Amount: ledger.NewAmount(61)})
	require.ErrorIs(t, err, ledger.ErrArithmeticOverflow)
	ts.AssertTotalLiquidStake(60)

	// the liquidity amounts are derived from the decoupled total
	ts.Execute(owner, &ledger.DistributeLiquidity{})
	require.Len(t, ts.StakeRatios, 1)
	require.Equal(t, "1", ts.StakeRatios[0].Ratio.String())
	require.Equal(t, "60", ts.StakeRatios[0].LiquidityAmount.String())
}

func TestLedger_ResetCompletedRecords(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 10, 2000)
	ts.UpdateReward(alice, 100)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()

	ts.UpdateReward(alice, 300)
	ts.Advance(1)
	ts.Tick()

	records := ts.DepositRecords(alice)
	require.Len(t, records, 2)
	require.Equal(t, ledger.DepositStatusCompleted, records[0].Status)
	require.Equal(t, ledger.DepositStatusPending, records[1].Status)

	ts.Execute(owner, &ledger.ResetCompletedRecords{})

	records = ts.DepositRecords(alice)
	require.Len(t, records, 1)
	require.Equal(t, ledger.DepositStatusPending, records[0].Status)
	require.Equal(t, "300", records[0].Amount.String())

	ts.Execute(owner, &ledger.ResetCompletedRecords{})
	require.Len(t, ts.DepositRecords(alice), 1)

	// stakes are not affected by dropping the records
	ts.AssertCompletedStake(alice, 100)
	ts.AssertTotalLiquidStake(100)
}

func TestLedger_RewardSummaries(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 10, 2000)
	ts.SetMetadata(bob, 10, 2000)

	ts.UpdateReward(alice, 100)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()

	ts.UpdateReward(alice, 300)
	ts.Advance(1)
	ts.Tick()

	ts.UpdateReward(alice, 7)
	ts.UpdateReward(bob, 5)

	summaries, err := ts.Ledger.RewardSummaries()
	require.NoError(t, err)
	require.Len(t, summaries.Summaries, 2)

	aliceSummary := summaries.Summaries[0]
	require.Equal(t, alice, aliceSummary.Account)
	assert.Equal(t, "7", aliceSummary.PendingRewards.String())
	assert.Equal(t, "300", aliceSummary.PendingDeposits.String())
	assert.Equal(t, "100", aliceSummary.CompletedDeposits.String())

	bobSummary := summaries.Summaries[1]
	require.Equal(t, bob, bobSummary.Account)
	assert.Equal(t, "5", bobSummary.PendingRewards.String())
	assert.True(t, bobSummary.PendingDeposits.IsZero())

	assert.Equal(t, "12", summaries.TotalPendingRewards.String())
	assert.Equal(t, "300", summaries.TotalPendingDeposits.String())
	assert.Equal(t, "100", summaries.TotalCompletedDeposits.String())

	stake, err := ts.Ledger.Stake(alice)
	require.NoError(t, err)
	assert.Equal(t, "300", stake.Provisional.String())
	assert.Equal(t, "100", stake.Completed.String())
}

func TestLedger_EmitEvents(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	var liquidStakeEvents []*ledger.LiquidStakeEvent
	ts.Ledger.Events.LiquidStake.Hook(func(event *ledger.LiquidStakeEvent) {
		liquidStakeEvents = append(liquidStakeEvents, event)
	})

	var distributions [][]*ledger.LiquidityDistribution
	ts.Ledger.Events.LiquidityDistributed.Hook(func(event []*ledger.LiquidityDistribution) {
		distributions = append(distributions, event)
	})

	ts.Execute(owner, &ledger.EmitLiquidStakeEvent{
		TotalLiquidStake: ledger.NewAmount(1000),
		ObtainedAmount:   ledger.NewAmount(990),
		TxHash:           "0xabc",
	})
	require.Len(t, liquidStakeEvents, 1)
	require.Equal(t, "990", liquidStakeEvents[0].ObtainedAmount.String())
	require.Equal(t, "0xabc", liquidStakeEvents[0].TxHash)

	_, err := ts.Ledger.Execute(owner, &ledger.EmitDistributeLiquidityEvent{Distributions: []*ledger.LiquidityDistribution{
		{LiquidityAddress: "UPPER", Amount: ledger.NewAmount(1)},
	}})
	require.ErrorIs(t, err, ledger.ErrMalformedInput)
	require.Empty(t, distributions)

	ts.Execute(owner, &ledger.EmitDistributeLiquidityEvent{Distributions: []*ledger.LiquidityDistribution{
		{LiquidityAddress: alice, Amount: ledger.NewAmount(1)},
		{LiquidityAddress: bob, Amount: ledger.NewAmount(2)},
	}})
	require.Len(t, distributions, 1)
	require.Len(t, distributions[0], 2)

	// event-only operations leave the state untouched apart from the height
	ts.AssertTotalLiquidStake(0)
	require.EqualValues(t, 2, ts.Height())
}

func TestLedger_ClockNotSeeded(t *testing.T) {
	ts := NewTestSuite(t, defaultConfig())

	require.NoError(t, ts.Store.Delete(append([]byte{ledger.StoreKeyPrefixProcessingClock}, []byte(ledger.TaskMaturation)...)))

	_, err := ts.Ledger.Execute(owner, &ledger.Tick{})
	require.ErrorIs(t, err, ledger.ErrClockNotSeeded)
}

func TestLedger_DistributeLiquidityWithoutStake(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 1, 1000)
	ts.SetMetadata(bob, 1, 1000)
	ts.SetMetadata(stranger, 1, 1000)

	ts.UpdateReward(alice, 300)
	ts.UpdateReward(bob, 100)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()

	// accounts without completed stake neither get a ratio nor an event
	ts.Execute(owner, &ledger.DistributeLiquidity{})
	require.Equal(t, map[ledger.Address]string{alice: "0.75", bob: "0.25"}, RatioStrings(t)(ts.Ledger.StakeRatios()))
	require.Len(t, ts.StakeRatios, 2)

	ratio, err := ts.Ledger.StakeRatio(stranger)
	require.NoError(t, err)
	require.True(t, ratio.IsZero())
}

func TestLedger_ZeroMinReward(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 0, 1000)
	ts.SetMetadata(bob, 0, 1000)
	ts.UpdateReward(bob, 5)

	// a zero balance does not produce an empty deposit record, even if it is not below the min reward
	ts.Advance(2)
	receipt := ts.Tick()
	require.Contains(t, receipt.ExecutedTasks, ledger.TaskRewardAccrual)

	require.Empty(t, ts.DepositRecords(alice))
	ts.AssertProvisionalStake(alice, 0)

	records := ts.DepositRecords(bob)
	require.Len(t, records, 1)
	require.Equal(t, "5", records[0].Amount.String())
	require.Len(t, ts.CreatedRecords, 1)

	// the next run still finds nothing to convert for either account
	ts.Advance(1)
	ts.Tick()
	require.Empty(t, ts.DepositRecords(alice))
	require.Len(t, ts.DepositRecords(bob), 1)
}
