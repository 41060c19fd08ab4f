package ledger

import (
	"encoding/binary"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/lo"
)

// state gives typed access to the realms of a ledger store.
type state struct {
	store kvstore.KVStore

	config              *kvstore.TypedValue[*Config]
	processingClock     *kvstore.TypedStore[TaskName, uint64]
	rewardBalances      *accountStore[Amount]
	metadata            *accountStore[*Metadata]
	depositRecords      *kvstore.TypedStore[[]byte, *DepositRecord]
	provisionalStakes   *accountStore[Amount]
	completedStakes     *accountStore[Amount]
	totalLiquidStake    *kvstore.TypedValue[Amount]
	stakeRatios         *accountStore[Ratio]
	redemptionBalances  *accountStore[Amount]
	redemptionRatios    *accountStore[Ratio]
	nextDepositRecordID *kvstore.TypedValue[uint64]
	height              *kvstore.TypedValue[uint64]
}

func newState(store kvstore.KVStore) *state {
	return &state{
		store: store,

		config:              kvstore.NewTypedValue(store, []byte{StoreKeyPrefixConfig}, (*Config).Bytes, ConfigFromBytes),
		processingClock:     kvstore.NewTypedStore(realm(store, StoreKeyPrefixProcessingClock), TaskName.Bytes, TaskNameFromBytes, uint64Bytes, uint64FromBytes),
		rewardBalances:      newAccountStore("reward balance", realm(store, StoreKeyPrefixRewardBalance), Amount.Bytes, AmountFromBytes),
		metadata:            newAccountStore("metadata", realm(store, StoreKeyPrefixMetadata), (*Metadata).Bytes, MetadataFromBytes),
		depositRecords:      kvstore.NewTypedStore(realm(store, StoreKeyPrefixDepositRecord), rawBytes, rawBytesFromBytes, (*DepositRecord).Bytes, DepositRecordFromBytes),
		provisionalStakes:   newAccountStore("provisional stake", realm(store, StoreKeyPrefixProvisionalStake), Amount.Bytes, AmountFromBytes),
		completedStakes:     newAccountStore("completed stake", realm(store, StoreKeyPrefixCompletedStake), Amount.Bytes, AmountFromBytes),
		totalLiquidStake:    kvstore.NewTypedValue(store, []byte{StoreKeyPrefixTotalLiquidStake}, Amount.Bytes, AmountFromBytes),
		stakeRatios:         newAccountStore("stake ratio", realm(store, StoreKeyPrefixStakeRatio), Ratio.Bytes, RatioFromBytes),
		redemptionBalances:  newAccountStore("redemption balance", realm(store, StoreKeyPrefixRedemptionBalance), Amount.Bytes, AmountFromBytes),
		redemptionRatios:    newAccountStore("redemption ratio", realm(store, StoreKeyPrefixRedemptionRatio), Ratio.Bytes, RatioFromBytes),
		nextDepositRecordID: kvstore.NewTypedValue(store, []byte{StoreKeyPrefixNextDepositRecordID}, uint64Bytes, uint64FromBytes),
		height:              kvstore.NewTypedValue(store, []byte{StoreKeyPrefixHeight}, uint64Bytes, uint64FromBytes),
	}
}

func realm(store kvstore.KVStore, prefix byte) kvstore.KVStore {
	return lo.PanicOnErr(store.WithExtendedRealm(kvstore.Realm{prefix}))
}

func (s *state) loadConfig() (*Config, error) {
	config, err := s.config.Get()
	if err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrNotInitialized
		}

		return nil, ierrors.Wrap(err, "failed to load config")
	}

	return config, nil
}

// loadAmount returns the stored amount or zero if the account has no entry.
func loadAmount(store *accountStore[Amount], account Address) (Amount, error) {
	amount, _, err := store.Load(account)

	return amount, err
}

// addAmount adds delta to the amount stored for the account.
func addAmount(store *accountStore[Amount], account Address, delta Amount) (Amount, error) {
	current, err := loadAmount(store, account)
	if err != nil {
		return Amount{}, err
	}

	updated, err := current.Add(delta)
	if err != nil {
		return Amount{}, ierrors.Wrapf(err, "failed to add to %s of account %s", store.name, account)
	}

	return updated, store.Store(account, updated)
}

// subAmount subtracts delta from the amount stored for the account.
func subAmount(store *accountStore[Amount], account Address, delta Amount) (Amount, error) {
	current, err := loadAmount(store, account)
	if err != nil {
		return Amount{}, err
	}

	updated, err := current.Sub(delta)
	if err != nil {
		return Amount{}, ierrors.Wrapf(err, "failed to subtract from %s of account %s", store.name, account)
	}

	return updated, store.Store(account, updated)
}

func (s *state) loadTotalLiquidStake() (Amount, error) {
	total, err := s.totalLiquidStake.Get()
	if err != nil && !ierrors.Is(err, kvstore.ErrKeyNotFound) {
		return Amount{}, ierrors.Wrap(err, "failed to load total liquid stake")
	}

	return total, nil
}

func (s *state) loadHeight() (uint64, error) {
	height, err := s.height.Get()
	if err != nil && !ierrors.Is(err, kvstore.ErrKeyNotFound) {
		return 0, ierrors.Wrap(err, "failed to load height")
	}

	return height, nil
}

// accounts returns every account with metadata in ascending order.
func (s *state) accounts() ([]Address, error) {
	accounts := make([]Address, 0)
	if err := s.metadata.StreamKeys(func(account Address) error {
		accounts = append(accounts, account)

		return nil
	}); err != nil {
		return nil, err
	}

	return accounts, nil
}

// streamMetadata calls the consumer for every account with metadata in ascending order.
func (s *state) streamMetadata(consumer func(account Address, metadata *Metadata) error) error {
	return s.metadata.Stream(consumer)
}

func (s *state) requireMetadata(account Address) (*Metadata, error) {
	metadata, exists, err := s.metadata.Load(account)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, ierrors.WithMessagef(ErrAccountNotFound, "account %s", account)
	}

	return metadata, nil
}

func uint64Bytes(value uint64) ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, value), nil
}

func uint64FromBytes(b []byte) (uint64, int, error) {
	if len(b) < 8 {
		return 0, 0, ierrors.Errorf("not enough bytes to read uint64: %d < 8", len(b))
	}

	return binary.BigEndian.Uint64(b), 8, nil
}

func rawBytes(b []byte) ([]byte, error) {
	return b, nil
}

func rawBytesFromBytes(b []byte) ([]byte, int, error) {
	return b, len(b), nil
}
