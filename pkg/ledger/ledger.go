package ledger

import (
	"github.com/jonboulle/clockwork"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/stake-ledger/pkg/storage/database"
)

// Ledger tracks rewards, deposits, stakes and redemptions of a set of accounts. Every call to Execute
// is applied atomically.
type Ledger struct {
	Events *Events

	store kvstore.KVStore
	mutex syncutils.RWMutex

	optsClock clockwork.Clock

	log.Logger
}

func New(store kvstore.KVStore, logger log.Logger, opts ...options.Option[Ledger]) *Ledger {
	return options.Apply(&Ledger{
		Events:    NewEvents(),
		store:     store,
		optsClock: clockwork.NewRealClock(),
		Logger:    logger,
	}, opts)
}

// KVStore returns the underlying KVStore.
func (l *Ledger) KVStore() kvstore.KVStore {
	return l.store
}

// Initialize stores the config, seeds the processing clock of every task with the current time and
// resets the counters.
func (l *Ledger) Initialize(config *Config) error {
	if config == nil {
		return ierrors.WithMessage(ErrMalformedInput, "config is nil")
	}

	if err := config.Validate(); err != nil {
		return err
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	buffer := database.NewBufferedKVStore(l.store)
	s := newState(buffer)

	_, err := s.loadConfig()
	if err == nil {
		return ErrAlreadyInitialized
	}
	if !ierrors.Is(err, ErrNotInitialized) {
		return err
	}

	now := l.now()

	if err := l.initialize(s, config, now); err != nil {
		buffer.Discard()

		return ierrors.Wrap(err, "failed to initialize ledger")
	}

	if err := buffer.Commit(); err != nil {
		return ierrors.Wrap(err, "failed to commit initial ledger state")
	}

	l.LogInfo("ledger initialized", "owner", config.Owner, "timestamp", now)

	return nil
}

func (l *Ledger) initialize(s *state, config *Config, now uint64) error {
	if err := database.CheckVersion(s.store, DatabaseVersion); err != nil {
		return err
	}

	if err := s.config.Set(config); err != nil {
		return ierrors.Wrap(err, "failed to store config")
	}

	for _, task := range TaskNames {
		if err := s.processingClock.Set(task, now); err != nil {
			return ierrors.Wrapf(err, "failed to seed clock of task %s", task)
		}
	}

	if err := s.totalLiquidStake.Set(Amount{}); err != nil {
		return ierrors.Wrap(err, "failed to store total liquid stake")
	}

	if err := s.nextDepositRecordID.Set(1); err != nil {
		return ierrors.Wrap(err, "failed to store deposit record counter")
	}

	return s.height.Set(0)
}

// IsInitialized returns true if the ledger holds a config.
func (l *Ledger) IsInitialized() (bool, error) {
	if _, err := l.Config(); err != nil {
		if ierrors.Is(err, ErrNotInitialized) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Execute applies the operation on behalf of the sender. Either all of its mutations are committed
// or none are, and the events are triggered after the commit.
func (l *Ledger) Execute(sender Address, operation Operation) (*Receipt, error) {
	if operation == nil {
		return nil, ierrors.WithMessage(ErrMalformedInput, "operation is nil")
	}

	if err := sender.Validate(); err != nil {
		return nil, ierrors.Wrap(err, "invalid sender")
	}

	work, err := l.execute(sender, operation)
	if err != nil {
		l.LogDebug("operation failed", "type", operation.Type(), "sender", sender, "err", err)

		return nil, ierrors.Wrapf(err, "failed to execute %s", operation.Type())
	}

	work.triggerEvents()

	return work.receipt, nil
}

func (l *Ledger) execute(sender Address, operation Operation) (*unitOfWork, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	work, err := l.newUnitOfWork(operation.Type())
	if err != nil {
		return nil, err
	}

	if operation.ownerOnly() && sender != work.ledgerConfig.Owner {
		return nil, ierrors.WithMessagef(ErrUnauthorized, "%s is restricted to the owner", operation.Type())
	}

	if err = work.apply(sender, operation); err != nil {
		work.discard()

		return nil, err
	}

	if err = work.commit(); err != nil {
		return nil, err
	}

	l.LogDebug("operation executed", "type", operation.Type(), "sender", sender, "height", work.currentHeight)

	return work, nil
}

func (l *Ledger) now() uint64 {
	unix := l.optsClock.Now().Unix()
	if unix < 0 {
		return 0
	}

	return uint64(unix)
}

// WithClock sets the time source of the ledger.
func WithClock(clock clockwork.Clock) options.Option[Ledger] {
	return func(l *Ledger) {
		l.optsClock = clock
	}
}
