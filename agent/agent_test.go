package agent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pyaichatbot/adk-demo/core"
)

// MockAgent is a mock implementation of core.Agent for testing coordinators.
type MockAgent struct {
	mock.Mock
	name string
}

func NewMockAgent(name string) *MockAgent {
	return &MockAgent{name: name}
}

func (m *MockAgent) Name() string { return m.name }

func (m *MockAgent) Description() string { return "Mock agent " + m.name }

func (m *MockAgent) Run(rc *core.RunContext) error {
	args := m.Called(rc)
	return args.Error(0)
}

func newTestRunContext(t *testing.T, input string) (*core.RunContext, chan core.Record) {
	t.Helper()
	sess := core.NewSession("test-session")
	emit := make(chan core.Record, 32)
	return core.NewRunContext(context.Background(), sess.ID, "test-run", input, sess, emit, nil), emit
}

func drain(emit chan core.Record) []core.Record {
	close(emit)
	var out []core.Record
	for rec := range emit {
		out = append(out, rec)
	}
	return out
}

func TestSequentialAgent_RunsChildrenInOrder(t *testing.T) {
	rc, emit := newTestRunContext(t, "input")

	var order []string
	first := NewMockAgent("first")
	first.On("Run", rc).Run(func(_ mock.Arguments) {
		order = append(order, "first")
	}).Return(nil)

	second := NewMockAgent("second")
	second.On("Run", rc).Run(func(_ mock.Arguments) {
		order = append(order, "second")
	}).Return(nil)

	seq := NewSequentialAgent("pipeline", first, second)

	require.NoError(t, seq.Run(rc))
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Empty(t, drain(emit))

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestSequentialAgent_StopsAtFirstError(t *testing.T) {
	rc, _ := newTestRunContext(t, "input")

	failing := NewMockAgent("failing")
	failing.On("Run", rc).Return(errors.New("boom"))

	never := NewMockAgent("never")

	seq := NewSequentialAgent("pipeline", failing, never)

	err := seq.Run(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")

	never.AssertNotCalled(t, "Run", rc)
}

func TestSequentialAgent_StateFlowsBetweenSteps(t *testing.T) {
	rc, _ := newTestRunContext(t, "input")

	writer := NewMockAgent("writer")
	writer.On("Run", rc).Run(func(args mock.Arguments) {
		args.Get(0).(*core.RunContext).SetState("research_summary", "findings")
	}).Return(nil)

	reader := NewMockAgent("reader")
	reader.On("Run", rc).Run(func(args mock.Arguments) {
		v, ok := args.Get(0).(*core.RunContext).GetState("research_summary")
		assert.True(t, ok)
		assert.Equal(t, "findings", v)
	}).Return(nil)

	seq := NewSequentialAgent("pipeline", writer, reader)
	require.NoError(t, seq.Run(rc))
}

func TestParallelAgent_RunsAllChildren(t *testing.T) {
	rc, _ := newTestRunContext(t, "input")

	analyst := NewMockAgent("analyst")
	analyst.On("Run", mock.AnythingOfType("*core.RunContext")).Run(func(args mock.Arguments) {
		branched := args.Get(0).(*core.RunContext)
		assert.Equal(t, "team.analyst", branched.Branch)
		branched.SetState("analysis", "a")
	}).Return(nil)

	critic := NewMockAgent("critic")
	critic.On("Run", mock.AnythingOfType("*core.RunContext")).Run(func(args mock.Arguments) {
		args.Get(0).(*core.RunContext).SetState("critique", "b")
	}).Return(nil)

	team := NewParallelAgent("team", time.Minute, analyst, critic)

	require.NoError(t, team.Run(rc))

	analysis, _ := rc.GetState("analysis")
	critique, _ := rc.GetState("critique")
	assert.Equal(t, "a", analysis)
	assert.Equal(t, "b", critique)

	analyst.AssertExpectations(t)
	critic.AssertExpectations(t)
}

func TestParallelAgent_SiblingsContinueOnError(t *testing.T) {
	rc, _ := newTestRunContext(t, "input")

	failing := NewMockAgent("failing")
	failing.On("Run", mock.AnythingOfType("*core.RunContext")).Return(errors.New("boom"))

	healthy := NewMockAgent("healthy")
	healthy.On("Run", mock.AnythingOfType("*core.RunContext")).Run(func(args mock.Arguments) {
		args.Get(0).(*core.RunContext).SetState("healthy_output", "ok")
	}).Return(nil)

	team := NewParallelAgent("team", time.Minute, failing, healthy)

	err := team.Run(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")

	v, ok := rc.GetState("healthy_output")
	assert.True(t, ok)
	assert.Equal(t, "ok", v)
}

func TestParallelAgent_Timeout(t *testing.T) {
	rc, _ := newTestRunContext(t, "input")

	slow := NewMockAgent("slow")
	slow.On("Run", mock.AnythingOfType("*core.RunContext")).Run(func(_ mock.Arguments) {
		time.Sleep(200 * time.Millisecond)
	}).Return(nil)

	team := NewParallelAgent("team", 20*time.Millisecond, slow)

	err := team.Run(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

// On timeout the coordinator cancels the children's branch contexts and
// awaits them; it must not return while a child goroutine is still running.
func TestParallelAgent_TimeoutWaitsForChildren(t *testing.T) {
	rc, _ := newTestRunContext(t, "input")

	var finished atomic.Bool
	slow := NewMockAgent("slow")
	slow.On("Run", mock.AnythingOfType("*core.RunContext")).Run(func(args mock.Arguments) {
		branched := args.Get(0).(*core.RunContext)
		time.Sleep(100 * time.Millisecond)
		assert.ErrorIs(t, branched.Err(), context.Canceled)
		finished.Store(true)
	}).Return(nil)

	team := NewParallelAgent("team", 20*time.Millisecond, slow)

	err := team.Run(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.True(t, finished.Load())
}

func TestInstruction_Resolve(t *testing.T) {
	rc, _ := newTestRunContext(t, "input")
	rc.SetState("research_summary", "findings")

	static := NewInstructionFromText("You are a writer.")
	assert.True(t, static.IsStatic())

	text, err := static.Resolve(rc)
	require.NoError(t, err)
	assert.Equal(t, "You are a writer.", text)

	dynamic := NewInstructionFromFunc(func(rc *core.RunContext) (string, error) {
		summary, _ := rc.GetState("research_summary")
		return "Write using: " + summary, nil
	})
	assert.False(t, dynamic.IsStatic())

	text, err = dynamic.Resolve(rc)
	require.NoError(t, err)
	assert.Equal(t, "Write using: findings", text)
}

func TestBaseAgent_Identity(t *testing.T) {
	b := NewBaseAgent("researcher")

	assert.Equal(t, "researcher", b.Name())
	assert.Equal(t, "Agent researcher", b.Description())

	b.SetDescription("Researches topics")
	assert.Equal(t, "Researches topics", b.Description())
}
