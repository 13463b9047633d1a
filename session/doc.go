// Package session provides scratch-state storage implementations.
//
// Workflow drivers create one uniquely identified session per execution and
// discard it afterwards; the in-memory store exists so concurrent executions
// stay isolated and so tests can inspect state after a run.
package session
