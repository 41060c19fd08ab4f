package daemon

// Please add the dependencies if you add your own priority here.
// Otherwise investigating deadlocks at shutdown is much more complicated.

const (
	PriorityCloseDatabase = iota // no dependencies
	PriorityLedger               // depends on CloseDatabase, writes the final snapshot
	PriorityTicker               // depends on Ledger
	PriorityRestAPI              // depends on Ledger
	PriorityMetrics
)
