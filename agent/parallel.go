package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pyaichatbot/adk-demo/core"
)

// DefaultParallelTimeout bounds a parallel fan-out when no explicit timeout
// is configured.
const DefaultParallelTimeout = 2 * time.Minute

// ParallelAgent coordinates the concurrent execution of multiple child
// agents. Every child runs against the same run input in its own branch;
// children write independent scratch-state keys, so no ordering is defined
// between them. Successful children continue even if siblings fail; the
// first error encountered is returned after all complete.
type ParallelAgent struct {
	BaseAgent
	children []core.Agent
	timeout  time.Duration
}

// NewParallelAgent creates a new parallel execution coordinator.
func NewParallelAgent(name string, timeout time.Duration, children ...core.Agent) *ParallelAgent {
	if timeout <= 0 {
		timeout = DefaultParallelTimeout
	}

	return &ParallelAgent{
		BaseAgent: NewBaseAgent(name),
		children:  children,
		timeout:   timeout,
	}
}

// Children returns the child agents.
func (p *ParallelAgent) Children() []core.Agent {
	return append([]core.Agent(nil), p.children...)
}

// Run implements core.Agent launching all children concurrently, each under
// a branch label of the form "Parent.Child". Run never returns while a child
// is still executing: on timeout or cancellation the children are cancelled
// through their branch contexts and awaited, so the caller's emit channel
// stays valid for the lifetime of every child.
func (p *ParallelAgent) Run(rc *core.RunContext) error {
	ctx, cancel := context.WithCancel(rc.Context)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(p.children))

	for _, child := range p.children {
		wg.Add(1)
		go func(c core.Agent) {
			defer wg.Done()

			branchCtx := rc.WithBranch(fmt.Sprintf("%s.%s", p.Name(), c.Name()))
			branchCtx.Context = ctx
			if err := c.Run(branchCtx); err != nil {
				errCh <- fmt.Errorf("parallel execution failed for agent %s: %w", c.Name(), err)
			}
		}(child)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-rc.Done():
		cancel()
		<-done
		return rc.Err()
	case <-time.After(p.timeout):
		cancel()
		<-done
		return fmt.Errorf("parallel agent %s timed out after %s", p.Name(), p.timeout)
	}

	close(errCh)
	if len(errCh) > 0 {
		return <-errCh
	}

	return nil
}
