package agent

import (
	"fmt"

	"github.com/pyaichatbot/adk-demo/core"
)

// SequentialAgent coordinates the execution of multiple child agents in
// sequence. The same RunContext is passed to every child, so the scratch
// state written by one step (via its output key) is visible to the next
// step's instruction provider. Execution stops at the first error.
type SequentialAgent struct {
	BaseAgent
	children []core.Agent
}

// NewSequentialAgent creates a new sequential execution coordinator. Children
// execute in the order they are specified.
func NewSequentialAgent(name string, children ...core.Agent) *SequentialAgent {
	return &SequentialAgent{
		BaseAgent: NewBaseAgent(name),
		children:  children,
	}
}

// Children returns the child agents in execution order.
func (s *SequentialAgent) Children() []core.Agent {
	out := make([]core.Agent, len(s.children))
	copy(out, s.children)
	return out
}

// Run implements core.Agent. It executes each child agent in order; errors
// stop further processing immediately.
func (s *SequentialAgent) Run(rc *core.RunContext) error {
	for _, child := range s.children {
		if err := child.Run(rc); err != nil {
			return fmt.Errorf("sequential execution failed at agent %s: %w", child.Name(), err)
		}
	}

	return nil
}
