package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func newTestLedger(t *testing.T) *ledger.Ledger {
	return ledger.New(mapdb.NewMapDB(), log.NewLogger().NewChildLogger(t.Name()))
}

func TestSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.bin")

	source := newTestLedger(t)
	require.NoError(t, source.Initialize(&ledger.Config{Owner: "wasm1ownerxyz", RewardAccrualInterval: 60}))

	imported, err := importSnapshot(newTestLedger(t), path)
	require.NoError(t, err)
	require.False(t, imported)

	require.NoError(t, exportSnapshot(source, path, true))
	_, err = os.Stat(path + backupSuffix)
	require.True(t, os.IsNotExist(err))

	_, err = source.Execute("wasm1ownerxyz", &ledger.SetMetadata{
		Account:           "wasm1alicexyz",
		RewardsAddress:    "wasm1alicexyz",
		LiquidityAddress:  "wasm1alicexyz",
		RedemptionAddress: "wasm1alicexyz",
		MaxReward:         ledger.NewAmount(10),
	})
	require.NoError(t, err)

	require.NoError(t, exportSnapshot(source, path, true))

	// the backup holds the state before the metadata was set
	backup := newTestLedger(t)
	imported, err = importSnapshot(backup, path+backupSuffix)
	require.NoError(t, err)
	require.True(t, imported)

	accounts, err := backup.Accounts()
	require.NoError(t, err)
	require.Empty(t, accounts)

	target := newTestLedger(t)
	imported, err = importSnapshot(target, path)
	require.NoError(t, err)
	require.True(t, imported)

	accounts, err = target.Accounts()
	require.NoError(t, err)
	require.Equal(t, []ledger.Address{"wasm1alicexyz"}, accounts)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestConfigFromParams(t *testing.T) {
	ParamsLedger.Owner = "Invalid"
	_, err := configFromParams()
	require.ErrorIs(t, err, ledger.ErrMalformedInput)

	ParamsLedger.Owner = "wasm1ownerxyz"
	ParamsLedger.Intervals.RewardAccrual = 90_500_000_000
	config, err := configFromParams()
	require.NoError(t, err)
	require.EqualValues(t, 90, config.RewardAccrualInterval)
}
