// Package agent provides the concrete agent implementations used by the demo
// workflows: ModelAgent wraps a language model behind a role instruction,
// SequentialAgent chains children passing scratch state between steps, and
// ParallelAgent fans children out concurrently against the same input.
package agent
