//nolint:forcetypeassert,varnamelen,revive,exhaustruct // we don't care about these linters in test cases
package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func TestLedger_ExportImport(t *testing.T) {
	ts := NewTestSuite(t, shortIntervalConfig())

	ts.SetMetadata(alice, 1, 1000)
	ts.SetMetadata(bob, 1, 1000)
	ts.UpdateReward(alice, 200)
	ts.UpdateReward(bob, 800)
	ts.Advance(2)
	ts.Tick()
	ts.Advance(2)
	ts.Tick()
	ts.Execute(owner, &ledger.DistributeLiquidity{})
	ts.Execute(owner, &ledger.SetRedeemTokens{Account: bob, Amount: ledger.NewAmount(5)})

	writer := stream.NewByteBuffer()
	require.NoError(t, ts.Ledger.Export(writer))

	imported := NewTestSuite(t, nil)
	require.NoError(t, imported.Ledger.Import(writer.Reader()))

	expectedSum, err := ts.Ledger.StateSHA256Sum()
	require.NoError(t, err)
	importedSum, err := imported.Ledger.StateSHA256Sum()
	require.NoError(t, err)
	require.Equal(t, expectedSum, importedSum)

	config, err := imported.Ledger.Config()
	require.NoError(t, err)
	require.Equal(t, shortIntervalConfig(), config)
	require.Equal(t, ts.Height(), imported.Height())
	require.Equal(t, ts.DepositRecords(alice), imported.DepositRecords(alice))
	require.Equal(t, map[ledger.Address]string{alice: "0.2", bob: "0.8"}, RatioStrings(t)(imported.Ledger.StakeRatios()))

	// the imported ledger continues where the exported one stopped
	imported.Clock.Advance(ts.Clock.Since(genesisTime))
	imported.UpdateReward(alice, 10)
	imported.Advance(1)
	imported.Tick()
	records := imported.DepositRecords(alice)
	require.Len(t, records, 2)
	require.Greater(t, records[1].ID, records[0].ID)

	// a second import would overwrite the state
	require.ErrorIs(t, imported.Ledger.Import(writer.Reader()), ledger.ErrAlreadyInitialized)
}

func TestLedger_ImportWithoutConfig(t *testing.T) {
	empty := NewTestSuite(t, nil)

	writer := stream.NewByteBuffer()
	require.NoError(t, empty.Ledger.Export(writer))

	target := NewTestSuite(t, nil)
	require.ErrorIs(t, target.Ledger.Import(writer.Reader()), ledger.ErrNotInitialized)

	initialized, err := target.Ledger.IsInitialized()
	require.NoError(t, err)
	require.False(t, initialized)
}
