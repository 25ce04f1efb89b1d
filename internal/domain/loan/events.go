package loan

// Redis stream and event types emitted after a workflow write commits.
const (
	EventStream  = "loans.events"
	EventApplied = "loan.applied"
	EventDecided = "loan.decided"
)
