package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// OperationType identifies a variant of Operation.
type OperationType byte

const (
	OperationTypeTick OperationType = iota
	OperationTypeSetMetadata
	OperationTypeAddStake
	OperationTypeUpdateReward
	OperationTypeBulkUpdateRewards
	OperationTypeDistributeLiquidity
	OperationTypeSetRedeemTokens
	OperationTypeDistributeRedeemTokens
	OperationTypeSubtractTotalLiquidStake
	OperationTypeResetCompletedRecords
	OperationTypeResetStakeRatios
	OperationTypeResetRedemptionRatios
	OperationTypeEmitLiquidStakeEvent
	OperationTypeEmitDistributeLiquidityEvent
)

var operationTypeNames = map[OperationType]string{
	OperationTypeTick:                         "tick",
	OperationTypeSetMetadata:                  "set_metadata",
	OperationTypeAddStake:                     "add_stake",
	OperationTypeUpdateReward:                 "update_reward",
	OperationTypeBulkUpdateRewards:            "bulk_update_rewards",
	OperationTypeDistributeLiquidity:          "distribute_liquidity",
	OperationTypeSetRedeemTokens:              "set_redeem_tokens",
	OperationTypeDistributeRedeemTokens:       "distribute_redeem_tokens",
	OperationTypeSubtractTotalLiquidStake:     "subtract_total_liquid_stake",
	OperationTypeResetCompletedRecords:        "reset_completed_records",
	OperationTypeResetStakeRatios:             "reset_stake_ratios",
	OperationTypeResetRedemptionRatios:        "reset_redemption_ratios",
	OperationTypeEmitLiquidStakeEvent:         "emit_liquid_stake_event",
	OperationTypeEmitDistributeLiquidityEvent: "emit_distribute_liquidity_event",
}

func OperationTypeFromString(name string) (OperationType, error) {
	for operationType, operationName := range operationTypeNames {
		if operationName == name {
			return operationType, nil
		}
	}

	return 0, ierrors.WithMessagef(ErrMalformedInput, "unknown operation type %q", name)
}

func (t OperationType) String() string {
	if name, exists := operationTypeNames[t]; exists {
		return name
	}

	return "unknown"
}

func (t OperationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *OperationType) UnmarshalText(text []byte) error {
	operationType, err := OperationTypeFromString(string(text))
	if err != nil {
		return err
	}

	*t = operationType

	return nil
}

// Operation is one of the closed set of mutating calls of the Ledger.
type Operation interface {
	Type() OperationType

	// ownerOnly reports whether only the owner may execute the operation.
	ownerOnly() bool
}

// NewOperation returns an empty operation of the given type, ready to be decoded into.
func NewOperation(operationType OperationType) (Operation, error) {
	switch operationType {
	case OperationTypeTick:
		return &Tick{}, nil
	case OperationTypeSetMetadata:
		return &SetMetadata{}, nil
	case OperationTypeAddStake:
		return &AddStake{}, nil
	case OperationTypeUpdateReward:
		return &UpdateReward{}, nil
	case OperationTypeBulkUpdateRewards:
		return &BulkUpdateRewards{}, nil
	case OperationTypeDistributeLiquidity:
		return &DistributeLiquidity{}, nil
	case OperationTypeSetRedeemTokens:
		return &SetRedeemTokens{}, nil
	case OperationTypeDistributeRedeemTokens:
		return &DistributeRedeemTokens{}, nil
	case OperationTypeSubtractTotalLiquidStake:
		return &SubtractTotalLiquidStake{}, nil
	case OperationTypeResetCompletedRecords:
		return &ResetCompletedRecords{}, nil
	case OperationTypeResetStakeRatios:
		return &ResetStakeRatios{}, nil
	case OperationTypeResetRedemptionRatios:
		return &ResetRedemptionRatios{}, nil
	case OperationTypeEmitLiquidStakeEvent:
		return &EmitLiquidStakeEvent{}, nil
	case OperationTypeEmitDistributeLiquidityEvent:
		return &EmitDistributeLiquidityEvent{}, nil
	default:
		return nil, ierrors.WithMessagef(ErrMalformedInput, "unknown operation type %d", operationType)
	}
}

// Tick runs every periodic task whose interval elapsed.
type Tick struct{}

func (*Tick) Type() OperationType { return OperationTypeTick }
func (*Tick) ownerOnly() bool     { return false }

type SetMetadata struct {
	Account           Address `json:"account"`
	RewardsAddress    Address `json:"rewardsAddress"`
	LiquidityAddress  Address `json:"liquidityAddress"`
	RedemptionAddress Address `json:"redemptionAddress"`
	MinReward         Amount  `json:"minReward"`
	MaxReward         Amount  `json:"maxReward"`
}

func (*SetMetadata) Type() OperationType { return OperationTypeSetMetadata }
func (*SetMetadata) ownerOnly() bool     { return true }

func (o *SetMetadata) metadata() *Metadata {
	return &Metadata{
		RewardsAddress:    o.RewardsAddress,
		LiquidityAddress:  o.LiquidityAddress,
		RedemptionAddress: o.RedemptionAddress,
		MinReward:         o.MinReward,
		MaxReward:         o.MaxReward,
	}
}

// AddStake adds to the provisional stake of the sender.
type AddStake struct {
	Amount Amount `json:"amount"`
}

func (*AddStake) Type() OperationType { return OperationTypeAddStake }
func (*AddStake) ownerOnly() bool     { return false }

type UpdateReward struct {
	Account Address `json:"account"`
	Amount  Amount  `json:"amount"`
}

func (*UpdateReward) Type() OperationType { return OperationTypeUpdateReward }
func (*UpdateReward) ownerOnly() bool     { return true }

type RewardUpdate struct {
	Account Address `json:"account"`
	Amount  Amount  `json:"amount"`
}

type BulkUpdateRewards struct {
	Updates []*RewardUpdate `json:"updates"`
}

func (*BulkUpdateRewards) Type() OperationType { return OperationTypeBulkUpdateRewards }
func (*BulkUpdateRewards) ownerOnly() bool     { return true }

type DistributeLiquidity struct{}

func (*DistributeLiquidity) Type() OperationType { return OperationTypeDistributeLiquidity }
func (*DistributeLiquidity) ownerOnly() bool     { return true }

type SetRedeemTokens struct {
	Account Address `json:"account"`
	Amount  Amount  `json:"amount"`
}

func (*SetRedeemTokens) Type() OperationType { return OperationTypeSetRedeemTokens }
func (*SetRedeemTokens) ownerOnly() bool     { return true }

type DistributeRedeemTokens struct{}

func (*DistributeRedeemTokens) Type() OperationType { return OperationTypeDistributeRedeemTokens }
func (*DistributeRedeemTokens) ownerOnly() bool     { return true }

// SubtractTotalLiquidStake only adjusts the global total, the completed stakes of the accounts stay as they are.
type SubtractTotalLiquidStake struct {
	Amount Amount `json:"amount"`
}

func (*SubtractTotalLiquidStake) Type() OperationType { return OperationTypeSubtractTotalLiquidStake }
func (*SubtractTotalLiquidStake) ownerOnly() bool     { return true }

type ResetCompletedRecords struct{}

func (*ResetCompletedRecords) Type() OperationType { return OperationTypeResetCompletedRecords }
func (*ResetCompletedRecords) ownerOnly() bool     { return true }

type ResetStakeRatios struct{}

func (*ResetStakeRatios) Type() OperationType { return OperationTypeResetStakeRatios }
func (*ResetStakeRatios) ownerOnly() bool     { return true }

type ResetRedemptionRatios struct{}

func (*ResetRedemptionRatios) Type() OperationType { return OperationTypeResetRedemptionRatios }
func (*ResetRedemptionRatios) ownerOnly() bool     { return true }

// EmitLiquidStakeEvent only triggers Events.LiquidStake.
type EmitLiquidStakeEvent struct {
	TotalLiquidStake Amount `json:"totalLiquidStake"`
	ObtainedAmount   Amount `json:"obtainedAmount"`
	TxHash           string `json:"txHash"`
}

func (*EmitLiquidStakeEvent) Type() OperationType { return OperationTypeEmitLiquidStakeEvent }
func (*EmitLiquidStakeEvent) ownerOnly() bool     { return true }

// EmitDistributeLiquidityEvent only triggers Events.LiquidityDistributed.
type EmitDistributeLiquidityEvent struct {
	Distributions []*LiquidityDistribution `json:"distributions"`
}

func (*EmitDistributeLiquidityEvent) Type() OperationType {
	return OperationTypeEmitDistributeLiquidityEvent
}
func (*EmitDistributeLiquidityEvent) ownerOnly() bool { return true }

// Receipt describes a committed operation.
type Receipt struct {
	Type      OperationType `json:"type"`
	Height    uint64        `json:"height"`
	Timestamp uint64        `json:"timestamp"`

	// ExecutedTasks lists the periodic tasks a Tick ran.
	ExecutedTasks []TaskName `json:"executedTasks,omitempty"`
	// CreatedRecords lists the ids of the deposit records created by the operation.
	CreatedRecords []uint64 `json:"createdRecords,omitempty"`
}
