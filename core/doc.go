// Package core defines the shared primitives of the orchestration backend:
// the Agent contract, the per-run execution context, the ephemeral scratch
// Session used for inter-step data passing, and the Record type that forms a
// workflow execution trace.
//
// Higher-level packages build on these primitives: agent provides concrete
// role, sequential and parallel implementations; workflow drives a full agent
// execution and extracts results; orchestrator sequences workflows into a
// protocol event stream.
package core
