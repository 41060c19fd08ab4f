package ledger

import (
	"github.com/iotaledger/hive.go/runtime/event"
)

// Events are triggered after the mutations of an operation were committed.
type Events struct {
	DepositRecordCreated    *event.Event1[*DepositRecord]
	DepositRecordCompleted  *event.Event1[*DepositRecord]
	TotalLiquidStakeUpdated *event.Event1[Amount]

	StakeRatioUpdated       *event.Event1[*StakeRatioUpdate]
	RedemptionRatioUpdated  *event.Event1[*RedemptionRatioUpdate]
	RedeemTokensDistributed *event.Event1[*RedemptionDistribution]

	LiquidStake          *event.Event1[*LiquidStakeEvent]
	LiquidityDistributed *event.Event1[[]*LiquidityDistribution]

	TaskExecuted      *event.Event1[TaskName]
	OperationExecuted *event.Event1[*Receipt]

	event.Group[Events, *Events]
}

var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		DepositRecordCreated:    event.New1[*DepositRecord](),
		DepositRecordCompleted:  event.New1[*DepositRecord](),
		TotalLiquidStakeUpdated: event.New1[Amount](),
		StakeRatioUpdated:       event.New1[*StakeRatioUpdate](),
		RedemptionRatioUpdated:  event.New1[*RedemptionRatioUpdate](),
		RedeemTokensDistributed: event.New1[*RedemptionDistribution](),
		LiquidStake:             event.New1[*LiquidStakeEvent](),
		LiquidityDistributed:    event.New1[[]*LiquidityDistribution](),
		TaskExecuted:            event.New1[TaskName](),
		OperationExecuted:       event.New1[*Receipt](),
	}
})

// StakeRatioUpdate is the share of an account in the completed stake.
type StakeRatioUpdate struct {
	Account          Address `json:"account"`
	Ratio            Ratio   `json:"ratio"`
	LiquidityAddress Address `json:"liquidityAddress"`
	// LiquidityAmount is floor(Ratio * TotalLiquidStake).
	LiquidityAmount Amount `json:"liquidityAmount"`
}

// RedemptionRatioUpdate is the share of an account in a redemption distribution.
type RedemptionRatioUpdate struct {
	Account           Address `json:"account"`
	Ratio             Ratio   `json:"ratio"`
	RedemptionAddress Address `json:"redemptionAddress"`
	Amount            Amount  `json:"amount"`
}

// RedemptionDistribution summarizes a redemption distribution.
type RedemptionDistribution struct {
	Total    Amount    `json:"total"`
	Accounts []Address `json:"accounts"`
}

type LiquidStakeEvent struct {
	TotalLiquidStake Amount `json:"totalLiquidStake"`
	ObtainedAmount   Amount `json:"obtainedAmount"`
	TxHash           string `json:"txHash"`
}

type LiquidityDistribution struct {
	LiquidityAddress Address `json:"liquidityAddress"`
	Amount           Amount  `json:"amount"`
}
