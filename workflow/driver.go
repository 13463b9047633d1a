package workflow

import (
	"context"
	"fmt"

	"github.com/pyaichatbot/adk-demo/core"
	"github.com/pyaichatbot/adk-demo/logging"
	"github.com/pyaichatbot/adk-demo/session"
)

// NoResponse is the fallback output when no trace record carries text.
const NoResponse = "No response received."

// Result is the structured outcome of driving one workflow execution.
type Result struct {
	// Output is the last textual payload observed in the execution trace, or
	// NoResponse if the trace carried no text.
	Output string `json:"output"`
	// Trace is a short human-readable execution summary.
	Trace string `json:"trace"`
	// Artifacts maps each declared output key that was actually written to
	// its scratch-state value. Keys the workflow never wrote are absent.
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

// Options configures a Driver.
type Options struct {
	SessionStore core.SessionStore
	Logger       logging.Logger
	RecordBuffer int
}

// Driver executes agents inside fresh scratch sessions. It is safe for
// concurrent use; concurrent invocations never share state because every
// invocation creates its own session scope.
type Driver struct {
	store  core.SessionStore
	logger logging.Logger
	buffer int
}

// NewDriver constructs a Driver with in-memory session scopes and a no-op
// logger unless overridden.
func NewDriver(optFns ...func(o *Options)) *Driver {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
		RecordBuffer: 64,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Driver{store: opts.SessionStore, logger: opts.Logger, buffer: opts.RecordBuffer}
}

// Run executes the agent against the prompt inside a fresh session scope and
// returns the terminal output plus any artifacts found under outputKeys.
//
// The trace is consumed as it is produced: the last record carrying text wins
// as the terminal output. If the agent fails mid-execution the error is
// surfaced with the original prompt in context and no partial result is
// returned.
func (d *Driver) Run(ctx context.Context, ag core.Agent, prompt string, outputKeys []string) (*Result, error) {
	sess, err := d.store.Create(core.NewID())
	if err != nil {
		return nil, fmt.Errorf("creating session scope: %w", err)
	}

	runID := core.NewID()
	emit := make(chan core.Record, d.buffer)
	rc := core.NewRunContext(ctx, sess.ID, runID, prompt, sess, emit, d.logger)

	errCh := make(chan error, 1)
	go func() {
		defer close(emit)
		if runErr := ag.Run(rc); runErr != nil {
			errCh <- runErr
		}
	}()

	final := ""
	for rec := range emit {
		if rec.HasText() {
			final = rec.Text
		}
	}

	select {
	case runErr := <-errCh:
		return nil, fmt.Errorf("workflow %s failed for prompt %q: %w", ag.Name(), prompt, runErr)
	default:
	}

	if final == "" {
		final = NoResponse
	}

	artifacts := make(map[string]string, len(outputKeys))
	for _, key := range outputKeys {
		if v, ok := sess.GetState(key); ok && v != "" {
			artifacts[key] = v
		}
	}

	d.logger.Debug("workflow completed",
		"workflow", ag.Name(), "run_id", runID, "session_id", sess.ID, "artifacts", len(artifacts))

	return &Result{
		Output:    final,
		Trace:     fmt.Sprintf("%s execution completed", ag.Name()),
		Artifacts: artifacts,
	}, nil
}

// RunOnce executes a single-shot agent and returns only its normalized final
// text. No artifacts are extracted; the session scope is still created fresh
// so single-shot calls stay isolated from each other.
func (d *Driver) RunOnce(ctx context.Context, ag core.Agent, prompt string) (string, error) {
	res, err := d.Run(ctx, ag, prompt, nil)
	if err != nil {
		return "", err
	}

	return NormalizeText(res.Output), nil
}
