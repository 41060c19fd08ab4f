package ledger

const (
	StoreKeyPrefixConfig byte = iota
	StoreKeyPrefixProcessingClock
	StoreKeyPrefixRewardBalance
	StoreKeyPrefixMetadata
	StoreKeyPrefixDepositRecord
	StoreKeyPrefixProvisionalStake
	StoreKeyPrefixCompletedStake
	StoreKeyPrefixTotalLiquidStake
	StoreKeyPrefixStakeRatio
	StoreKeyPrefixRedemptionBalance
	StoreKeyPrefixRedemptionRatio
	StoreKeyPrefixNextDepositRecordID
	StoreKeyPrefixHeight
)

// DatabaseVersion is the schema version persisted next to the ledger state.
const DatabaseVersion = 1
