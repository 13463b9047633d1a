package agent

import (
	"fmt"

	"github.com/pyaichatbot/adk-demo/core"
	"github.com/pyaichatbot/adk-demo/model"
)

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	Instruction     Instruction
	OutputKey       string
	EnableStreaming bool
}

// ModelAgent wraps a language model behind a role instruction. On each run it
// resolves its instruction (which may read scratch state written by earlier
// steps), sends the run input to the model, emits the response as a text
// record and, when an output key is configured, stages the response in the
// scratch state for later steps or artifact extraction.
type ModelAgent struct {
	BaseAgent
	llm             model.Model
	instruction     Instruction
	outputKey       string
	enableStreaming bool
}

// NewModelAgent creates a new model-backed agent. By default the agent has a
// generic assistant instruction, no output key and streaming disabled.
func NewModelAgent(name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
		Instruction: NewInstructionFromText(fmt.Sprintf("You are %s, a helpful AI assistant.", name)),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &ModelAgent{
		BaseAgent:       NewBaseAgent(name),
		llm:             llm,
		instruction:     opts.Instruction,
		outputKey:       opts.OutputKey,
		enableStreaming: opts.EnableStreaming,
	}
}

// OutputKey returns the scratch-state key this agent writes its output to,
// or "" when the agent produces no named artifact.
func (a *ModelAgent) OutputKey() string { return a.outputKey }

// Run implements core.Agent. It resolves the instruction, drives one model
// generation and records the terminal text. The last non-partial response
// wins; partial chunks are forwarded as partial-free text records only when
// streaming is enabled.
func (a *ModelAgent) Run(rc *core.RunContext) error {
	instructions, err := a.instruction.Resolve(rc)
	if err != nil {
		return fmt.Errorf("agent %s: resolving instruction: %w", a.Name(), err)
	}

	req := model.Request{
		Instructions: instructions,
		Input:        rc.Input,
		Stream:       a.enableStreaming,
	}

	respCh, errCh := a.llm.Generate(rc.Context, req)

	var final string
	for respCh != nil || errCh != nil {
		select {
		case <-rc.Done():
			return rc.Err()
		case resp, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			if resp.Partial {
				continue
			}
			final = resp.Text
		case genErr, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if genErr != nil {
				return fmt.Errorf("agent %s: model generation failed: %w", a.Name(), genErr)
			}
		}
	}

	if a.outputKey != "" {
		rc.SetState(a.outputKey, final)
	}

	if final != "" {
		if err := rc.EmitText(a.Name(), final); err != nil {
			return err
		}
	}

	rc.Logger.Debug("model agent completed", "agent", a.Name(), "output_key", a.outputKey)

	return nil
}
