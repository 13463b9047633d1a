// Package model defines the normalized language model contract used by
// agents, plus a deterministic mock implementation for tests. Provider
// adapters live in the openai and anthropic subpackages.
//
// The contract is intentionally text-in/text-out: a Request carries the
// resolved instruction and the user input, and Response chunks carry plain
// text. Any provider-specific structural or debug formatting is stripped by
// the adapter so downstream consumers (the router in particular) never parse
// provider representations themselves.
package model
