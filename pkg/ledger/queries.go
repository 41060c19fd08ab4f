package ledger

import (
	"github.com/iotaledger/stake-ledger/pkg/storage/database"
)

// AccountRatio is the ratio stored for an account.
type AccountRatio struct {
	Account Address `json:"account"`
	Ratio   Ratio   `json:"ratio"`
}

// Stake is the provisional and completed stake of an account.
type Stake struct {
	Provisional Amount `json:"provisional"`
	Completed   Amount `json:"completed"`
}

// RewardSummary is the reward and deposit overview of an account.
type RewardSummary struct {
	Account           Address `json:"account"`
	PendingRewards    Amount  `json:"pendingRewards"`
	PendingDeposits   Amount  `json:"pendingDeposits"`
	CompletedDeposits Amount  `json:"completedDeposits"`
}

// RewardSummaries holds a RewardSummary per account with metadata and the sums over all of them.
type RewardSummaries struct {
	Summaries              []*RewardSummary `json:"summaries"`
	TotalPendingRewards    Amount           `json:"totalPendingRewards"`
	TotalPendingDeposits   Amount           `json:"totalPendingDeposits"`
	TotalCompletedDeposits Amount           `json:"totalCompletedDeposits"`
}

// readState returns a view on the committed state. Iterations of the view are ordered by key
// regardless of the underlying store.
func (l *Ledger) readState() *state {
	return newState(database.NewBufferedKVStore(l.store))
}

func (l *Ledger) Config() (*Config, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.readState().loadConfig()
}

func (l *Ledger) Height() (uint64, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.readState().loadHeight()
}

func (l *Ledger) TotalLiquidStake() (Amount, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.readState().loadTotalLiquidStake()
}

// DepositRecords returns the deposit records of the account in id order.
func (l *Ledger) DepositRecords(account Address) ([]*DepositRecord, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.readState().depositRecordsOf(account)
}

// StakeRatio returns the stake ratio of the account or zero if none is stored.
func (l *Ledger) StakeRatio(account Address) (Ratio, error) {
	if err := account.Validate(); err != nil {
		return Ratio{}, err
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	ratio, _, err := l.readState().stakeRatios.Load(account)

	return ratio, err
}

func (l *Ledger) StakeRatios() ([]*AccountRatio, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return accountRatios(l.readState().stakeRatios)
}

func (l *Ledger) RedemptionRatios() ([]*AccountRatio, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return accountRatios(l.readState().redemptionRatios)
}

func (l *Ledger) RewardBalance(account Address) (Amount, error) {
	return l.accountAmount(account, func(s *state) *accountStore[Amount] { return s.rewardBalances })
}

func (l *Ledger) RedemptionBalance(account Address) (Amount, error) {
	return l.accountAmount(account, func(s *state) *accountStore[Amount] { return s.redemptionBalances })
}

func (l *Ledger) ProvisionalStake(account Address) (Amount, error) {
	return l.accountAmount(account, func(s *state) *accountStore[Amount] { return s.provisionalStakes })
}

func (l *Ledger) CompletedStake(account Address) (Amount, error) {
	return l.accountAmount(account, func(s *state) *accountStore[Amount] { return s.completedStakes })
}

func (l *Ledger) Stake(account Address) (*Stake, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	s := l.readState()

	provisional, err := loadAmount(s.provisionalStakes, account)
	if err != nil {
		return nil, err
	}

	completed, err := loadAmount(s.completedStakes, account)
	if err != nil {
		return nil, err
	}

	return &Stake{Provisional: provisional, Completed: completed}, nil
}

// Metadata returns the metadata of the account or ErrAccountNotFound.
func (l *Ledger) Metadata(account Address) (*Metadata, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.readState().requireMetadata(account)
}

// Accounts returns every account with metadata in ascending order.
func (l *Ledger) Accounts() ([]Address, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.readState().accounts()
}

func (l *Ledger) RewardSummaries() (*RewardSummaries, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	s := l.readState()
	summaries := &RewardSummaries{
		Summaries: make([]*RewardSummary, 0),
	}

	if err := s.metadata.StreamKeys(func(account Address) error {
		summary, err := s.rewardSummary(account)
		if err != nil {
			return err
		}

		if summaries.TotalPendingRewards, err = summaries.TotalPendingRewards.Add(summary.PendingRewards); err != nil {
			return err
		}
		if summaries.TotalPendingDeposits, err = summaries.TotalPendingDeposits.Add(summary.PendingDeposits); err != nil {
			return err
		}
		if summaries.TotalCompletedDeposits, err = summaries.TotalCompletedDeposits.Add(summary.CompletedDeposits); err != nil {
			return err
		}

		summaries.Summaries = append(summaries.Summaries, summary)

		return nil
	}); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (s *state) rewardSummary(account Address) (*RewardSummary, error) {
	pendingRewards, err := loadAmount(s.rewardBalances, account)
	if err != nil {
		return nil, err
	}

	records, err := s.depositRecordsOf(account)
	if err != nil {
		return nil, err
	}

	summary := &RewardSummary{
		Account:        account,
		PendingRewards: pendingRewards,
	}

	for _, record := range records {
		if record.IsPending() {
			summary.PendingDeposits, err = summary.PendingDeposits.Add(record.Amount)
		} else {
			summary.CompletedDeposits, err = summary.CompletedDeposits.Add(record.Amount)
		}

		if err != nil {
			return nil, err
		}
	}

	return summary, nil
}

func (l *Ledger) accountAmount(account Address, storeFunc func(s *state) *accountStore[Amount]) (Amount, error) {
	if err := account.Validate(); err != nil {
		return Amount{}, err
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return loadAmount(storeFunc(l.readState()), account)
}

func accountRatios(store *accountStore[Ratio]) ([]*AccountRatio, error) {
	ratios := make([]*AccountRatio, 0)
	if err := store.Stream(func(account Address, ratio Ratio) error {
		ratios = append(ratios, &AccountRatio{Account: account, Ratio: ratio})

		return nil
	}); err != nil {
		return nil, err
	}

	return ratios, nil
}
