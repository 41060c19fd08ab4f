package prometheus

import (
	"github.com/shopspring/decimal"

	"github.com/iotaledger/stake-ledger/components/prometheus/collector"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

const (
	ledgerNamespace = "ledger"

	height                 = "height"
	totalLiquidStake       = "total_liquid_stake"
	accounts               = "accounts"
	pendingDeposits        = "pending_deposits"
	completedDeposits      = "completed_deposits"
	pendingRewards         = "pending_rewards"
	stakeRatio             = "stake_ratio"
	operationsTotal        = "operations_total"
	depositRecordsCreated  = "deposit_records_created_total"
	depositRecordsComplete = "deposit_records_completed_total"
)

func newLedgerMetrics(l *ledger.Ledger, c *collector.Collector) *collector.Collection {
	summary := func() *ledger.RewardSummaries {
		summaries, err := l.RewardSummaries()
		if err != nil {
			return &ledger.RewardSummaries{}
		}

		return summaries
	}

	return collector.NewCollection(ledgerNamespace,
		collector.WithMetric(collector.NewMetric(height,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Number of committed operations."),
			collector.WithCollectFunc(func() []collector.Sample {
				currentHeight, err := l.Height()
				if err != nil {
					return nil
				}

				return collector.Single(float64(currentHeight))
			}),
		)),
		collector.WithMetric(collector.NewMetric(totalLiquidStake,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Total liquid stake."),
			collector.WithCollectFunc(func() []collector.Sample {
				total, err := l.TotalLiquidStake()
				if err != nil {
					return nil
				}

				return collector.Single(amountValue(total))
			}),
		)),
		collector.WithMetric(collector.NewMetric(accounts,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Number of accounts with metadata."),
			collector.WithCollectFunc(func() []collector.Sample {
				return collector.Single(float64(len(summary().Summaries)))
			}),
		)),
		collector.WithMetric(collector.NewMetric(pendingRewards,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Sum of the rewards not converted into deposit records yet."),
			collector.WithCollectFunc(func() []collector.Sample {
				return collector.Single(amountValue(summary().TotalPendingRewards))
			}),
		)),
		collector.WithMetric(collector.NewMetric(pendingDeposits,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Sum of the pending deposit records."),
			collector.WithCollectFunc(func() []collector.Sample {
				return collector.Single(amountValue(summary().TotalPendingDeposits))
			}),
		)),
		collector.WithMetric(collector.NewMetric(completedDeposits,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Sum of the completed deposit records."),
			collector.WithCollectFunc(func() []collector.Sample {
				return collector.Single(amountValue(summary().TotalCompletedDeposits))
			}),
		)),
		collector.WithMetric(collector.NewMetric(stakeRatio,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Stake ratio per account."),
			collector.WithLabels("account"),
			collector.WithResetBeforeCollecting(true),
			collector.WithCollectFunc(func() []collector.Sample {
				ratios, err := l.StakeRatios()
				if err != nil {
					return nil
				}

				samples := make([]collector.Sample, 0, len(ratios))
				for _, ratio := range ratios {
					value, _ := ratio.Ratio.Decimal().Float64()
					samples = append(samples, collector.Sample{Value: value, LabelValues: []string{ratio.Account.String()}})
				}

				return samples
			}),
		)),
		collector.WithMetric(collector.NewMetric(operationsTotal,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of committed operations per type."),
			collector.WithLabels("type"),
			collector.WithInitFunc(func() {
				l.Events.OperationExecuted.Hook(func(receipt *ledger.Receipt) {
					_ = c.Increment(ledgerNamespace, operationsTotal, receipt.Type.String())
				})
			}),
		)),
		collector.WithMetric(collector.NewMetric(depositRecordsCreated,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of created deposit records."),
			collector.WithInitFunc(func() {
				l.Events.DepositRecordCreated.Hook(func(_ *ledger.DepositRecord) {
					_ = c.Increment(ledgerNamespace, depositRecordsCreated)
				})
			}),
		)),
		collector.WithMetric(collector.NewMetric(depositRecordsComplete,
			collector.WithType(collector.Counter),
			collector.WithHelp("Number of completed deposit records."),
			collector.WithInitFunc(func() {
				l.Events.DepositRecordCompleted.Hook(func(_ *ledger.DepositRecord) {
					_ = c.Increment(ledgerNamespace, depositRecordsComplete)
				})
			}),
		)),
	)
}

func amountValue(amount ledger.Amount) float64 {
	return decimal.NewFromBigInt(amount.BigInt(), 0).InexactFloat64()
}
