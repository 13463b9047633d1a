// Package workflow drives agent executions to completion and extracts
// structured results from their traces.
//
// A Driver creates a fresh, uniquely identified scratch session per
// invocation, runs the agent, scans the emitted record trace for the terminal
// text and reads back the declared output keys as named artifacts. RunOnce is
// the single-shot variant used for classification: it returns only the
// normalized final text.
package workflow
