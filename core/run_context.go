package core

import (
	"context"

	"github.com/pyaichatbot/adk-demo/logging"
)

// RunContext carries execution state and helpers for an agent run. It
// encapsulates the per-execution scope passed to an Agent's Run method:
//   - The ambient cancellation Context
//   - Identifiers (SessionID, RunID) plus a Branch label for parallel fan-out
//   - The raw user input for this execution
//   - The scratch Session shared by the steps of one workflow
//   - The record emission channel feeding the execution trace
type RunContext struct {
	Context   context.Context
	SessionID string
	RunID     string
	Input     string
	Session   *Session
	Emit      chan<- Record
	Branch    string
	Logger    logging.Logger
}

// NewRunContext constructs a RunContext bound to a fresh scratch session.
func NewRunContext(
	ctx context.Context,
	sessionID, runID string,
	input string,
	sess *Session,
	emit chan<- Record,
	logger logging.Logger,
) *RunContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	return &RunContext{
		Context:   ctx,
		SessionID: sessionID,
		RunID:     runID,
		Input:     input,
		Session:   sess,
		Emit:      emit,
		Logger:    logger,
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// GetState returns a value from the scratch session state.
func (rc *RunContext) GetState(key string) (string, bool) {
	if rc.Session == nil {
		return "", false
	}
	return rc.Session.GetState(key)
}

// SetState writes a key/value pair into the scratch session state.
func (rc *RunContext) SetState(key, value string) {
	if rc.Session != nil {
		rc.Session.SetState(key, value)
	}
}

// EmitRecord delivers a progress record to the execution trace, honoring
// context cancellation.
func (rc *RunContext) EmitRecord(rec Record) error {
	select {
	case <-rc.Context.Done():
		return rc.Context.Err()
	case rc.Emit <- rec:
		return nil
	}
}

// EmitText is a convenience wrapper emitting a text record authored by the
// given agent.
func (rc *RunContext) EmitText(author, text string) error {
	return rc.EmitRecord(NewTextRecord(author, text))
}

// WithBranch returns a shallow copy of the context carrying a branch label.
// The session and emission channel stay shared; branch labels only identify
// which parallel lane produced a record.
func (rc *RunContext) WithBranch(branch string) *RunContext {
	c := *rc
	c.Branch = branch
	return &c
}
