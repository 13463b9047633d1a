package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyaichatbot/adk-demo/core"
	"github.com/pyaichatbot/adk-demo/model"
)

func TestModelAgent_EmitsResponseAndStagesOutputKey(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.AddResponse("Research Go channels", "Channels synchronize goroutines.")

	ag := NewModelAgent("researcher", llm, func(o *ModelAgentOptions) {
		o.OutputKey = "research_summary"
	})

	rc, emit := newTestRunContext(t, "Research Go channels")

	require.NoError(t, ag.Run(rc))

	v, ok := rc.GetState("research_summary")
	require.True(t, ok)
	assert.Equal(t, "Channels synchronize goroutines.", v)

	recs := drain(emit)
	require.Len(t, recs, 1)
	assert.Equal(t, "researcher", recs[0].Author)
	assert.Equal(t, "Channels synchronize goroutines.", recs[0].Text)
}

func TestModelAgent_NoOutputKey(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	ag := NewModelAgent("assistant", llm)

	rc, emit := newTestRunContext(t, "hello")

	require.NoError(t, ag.Run(rc))

	assert.Empty(t, rc.Session.StateSnapshot())

	recs := drain(emit)
	require.Len(t, recs, 1)
	assert.Equal(t, "Mock response to: hello", recs[0].Text)
}

func TestModelAgent_StreamingLastNonPartialWins(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.AddResponse("hello", "final answer")

	ag := NewModelAgent("assistant", llm, func(o *ModelAgentOptions) {
		o.EnableStreaming = true
		o.OutputKey = "final_output"
	})

	rc, emit := newTestRunContext(t, "hello")

	require.NoError(t, ag.Run(rc))

	v, _ := rc.GetState("final_output")
	assert.Equal(t, "final answer", v)

	recs := drain(emit)
	require.Len(t, recs, 1)
	assert.Equal(t, "final answer", recs[0].Text)
}

func TestModelAgent_InstructionProviderError(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	ag := NewModelAgent("writer", llm, func(o *ModelAgentOptions) {
		o.Instruction = NewInstructionFromFunc(func(*core.RunContext) (string, error) {
			return "", errors.New("missing upstream state")
		})
	})

	rc, _ := newTestRunContext(t, "hello")

	err := ag.Run(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving instruction")
}

func TestModelAgent_DynamicInstructionReadsState(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	var resolved string

	ag := NewModelAgent("writer", llm, func(o *ModelAgentOptions) {
		o.Instruction = NewInstructionFromFunc(func(rc *core.RunContext) (string, error) {
			summary, _ := rc.GetState("research_summary")
			resolved = "Base your writing on: " + summary
			return resolved, nil
		})
	})

	rc, _ := newTestRunContext(t, "write it up")
	rc.SetState("research_summary", "key findings")

	require.NoError(t, ag.Run(rc))
	assert.Equal(t, "Base your writing on: key findings", resolved)
}
