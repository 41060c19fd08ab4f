package ledger

import (
	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/stake-ledger/pkg/storage/database"
)

// unitOfWork collects the mutations and events of a single call. Nothing reaches the ledger store
// before commit and the events are only triggered after a successful commit.
type unitOfWork struct {
	*state
	log.Logger

	buffer *database.BufferedKVStore
	events *Events

	ledgerConfig  *Config
	now           uint64
	currentHeight uint64
	receipt       *Receipt

	triggers []func()
}

func (l *Ledger) newUnitOfWork(operationType OperationType) (*unitOfWork, error) {
	buffer := database.NewBufferedKVStore(l.store)
	s := newState(buffer)

	config, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	height, err := s.loadHeight()
	if err != nil {
		return nil, err
	}

	currentHeight, err := safemath.SafeAdd(height, 1)
	if err != nil {
		return nil, ierrors.WithMessagef(ErrArithmeticOverflow, "height %d can not be increased", height)
	}

	now := l.now()

	return &unitOfWork{
		state:         s,
		Logger:        l.Logger,
		buffer:        buffer,
		events:        l.Events,
		ledgerConfig:  config,
		now:           now,
		currentHeight: currentHeight,
		receipt: &Receipt{
			Type:      operationType,
			Height:    currentHeight,
			Timestamp: now,
		},
	}, nil
}

// apply dispatches the operation to its handler.
func (u *unitOfWork) apply(sender Address, operation Operation) error {
	switch op := operation.(type) {
	case *Tick:
		return u.tick()
	case *SetMetadata:
		return u.setMetadata(op.Account, op.metadata())
	case *AddStake:
		return u.addStake(sender, op.Amount)
	case *UpdateReward:
		return u.updateReward(op.Account, op.Amount)
	case *BulkUpdateRewards:
		return u.bulkUpdateRewards(op.Updates)
	case *DistributeLiquidity:
		return u.distributeLiquidity()
	case *SetRedeemTokens:
		return u.setRedeemTokens(op.Account, op.Amount)
	case *DistributeRedeemTokens:
		return u.distributeRedeemTokens()
	case *SubtractTotalLiquidStake:
		return u.subtractTotalLiquidStake(op.Amount)
	case *ResetCompletedRecords:
		return u.resetCompletedRecords()
	case *ResetStakeRatios:
		return u.resetStakeRatios()
	case *ResetRedemptionRatios:
		return u.resetRedemptionRatios()
	case *EmitLiquidStakeEvent:
		return u.emitLiquidStakeEvent(op)
	case *EmitDistributeLiquidityEvent:
		return u.emitDistributeLiquidityEvent(op.Distributions)
	default:
		return ierrors.WithMessagef(ErrMalformedInput, "unsupported operation %T", operation)
	}
}

func (u *unitOfWork) setMetadata(account Address, metadata *Metadata) error {
	if err := account.Validate(); err != nil {
		return err
	}

	if err := metadata.Validate(); err != nil {
		return err
	}

	if err := u.metadata.Store(account, metadata); err != nil {
		return err
	}

	u.LogDebug("metadata set", "account", account, "metadata", metadata)

	return nil
}

func (u *unitOfWork) emitLiquidStakeEvent(op *EmitLiquidStakeEvent) error {
	liquidStakeEvent := &LiquidStakeEvent{
		TotalLiquidStake: op.TotalLiquidStake,
		ObtainedAmount:   op.ObtainedAmount,
		TxHash:           op.TxHash,
	}

	u.queue(func() { u.events.LiquidStake.Trigger(liquidStakeEvent) })

	return nil
}

func (u *unitOfWork) emitDistributeLiquidityEvent(distributions []*LiquidityDistribution) error {
	for i, distribution := range distributions {
		if distribution == nil {
			return ierrors.WithMessagef(ErrMalformedInput, "distribution %d is empty", i)
		}

		if err := distribution.LiquidityAddress.Validate(); err != nil {
			return ierrors.Wrapf(err, "invalid liquidity address of distribution %d", i)
		}
	}

	u.queue(func() { u.events.LiquidityDistributed.Trigger(distributions) })

	return nil
}

// queue registers an event trigger that runs after the commit.
func (u *unitOfWork) queue(trigger func()) {
	u.triggers = append(u.triggers, trigger)
}

func (u *unitOfWork) commit() error {
	if err := u.height.Set(u.currentHeight); err != nil {
		u.buffer.Discard()

		return ierrors.Wrap(err, "failed to store height")
	}

	if err := u.buffer.Commit(); err != nil {
		u.buffer.Discard()

		return ierrors.Wrap(err, "failed to commit unit of work")
	}

	return nil
}

func (u *unitOfWork) discard() {
	u.buffer.Discard()
	u.triggers = nil
}

func (u *unitOfWork) triggerEvents() {
	for _, trigger := range u.triggers {
		trigger()
	}

	u.events.OperationExecuted.Trigger(u.receipt)
}
