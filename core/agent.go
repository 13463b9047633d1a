package core

// Agent is the unit of work driven by a workflow execution. Implementations
// receive a RunContext carrying the user input, the scratch session and the
// record emission channel, and must:
//   - Respect context cancellation for graceful shutdown
//   - Emit progress records through the provided RunContext
//   - Stage any named outputs in the session scratch state
type Agent interface {
	Name() string
	Description() string
	Run(rc *RunContext) error
}
