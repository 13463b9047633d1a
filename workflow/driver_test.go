package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyaichatbot/adk-demo/agent"
	"github.com/pyaichatbot/adk-demo/core"
)

// funcAgent adapts a function to core.Agent for driver tests.
type funcAgent struct {
	name string
	run  func(rc *core.RunContext) error
}

func (a funcAgent) Name() string                  { return a.name }
func (a funcAgent) Description() string           { return "test agent " + a.name }
func (a funcAgent) Run(rc *core.RunContext) error { return a.run(rc) }

func TestDriver_LastTextWins(t *testing.T) {
	d := NewDriver()

	ag := funcAgent{name: "pipeline", run: func(rc *core.RunContext) error {
		if err := rc.EmitText("researcher", "intermediate findings"); err != nil {
			return err
		}
		return rc.EmitText("writer", "final document")
	}}

	res, err := d.Run(context.Background(), ag, "prompt", nil)
	require.NoError(t, err)
	assert.Equal(t, "final document", res.Output)
	assert.Equal(t, "pipeline execution completed", res.Trace)
}

func TestDriver_NoResponseFallback(t *testing.T) {
	d := NewDriver()

	silent := funcAgent{name: "silent", run: func(*core.RunContext) error { return nil }}

	res, err := d.Run(context.Background(), silent, "prompt", nil)
	require.NoError(t, err)
	assert.Equal(t, NoResponse, res.Output)
}

func TestDriver_ArtifactExtraction(t *testing.T) {
	d := NewDriver()

	ag := funcAgent{name: "pipeline", run: func(rc *core.RunContext) error {
		rc.SetState("research_summary", "findings")
		rc.SetState("final_output", "document")
		rc.SetState("unrelated", "ignored")
		return rc.EmitText("writer", "document")
	}}

	res, err := d.Run(context.Background(), ag, "prompt", []string{"research_summary", "final_output", "never_written"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"research_summary": "findings",
		"final_output":     "document",
	}, res.Artifacts)
	assert.NotContains(t, res.Artifacts, "never_written")
	assert.NotContains(t, res.Artifacts, "unrelated")
}

func TestDriver_ErrorCarriesPromptContext(t *testing.T) {
	d := NewDriver()

	failing := funcAgent{name: "broken", run: func(*core.RunContext) error {
		return errors.New("model unavailable")
	}}

	_, err := d.Run(context.Background(), failing, "the prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, err.Error(), `"the prompt"`)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestDriver_FreshSessionPerRun(t *testing.T) {
	d := NewDriver()

	var firstSession string
	ag := funcAgent{name: "probe", run: func(rc *core.RunContext) error {
		if v, ok := rc.GetState("seen"); ok {
			return errors.New("stale state leaked: " + v)
		}
		rc.SetState("seen", rc.SessionID)
		if firstSession == "" {
			firstSession = rc.SessionID
		} else {
			assert.NotEqual(t, firstSession, rc.SessionID)
		}
		return rc.EmitText("probe", "ok")
	}}

	_, err := d.Run(context.Background(), ag, "one", nil)
	require.NoError(t, err)
	_, err = d.Run(context.Background(), ag, "two", nil)
	require.NoError(t, err)
}

// A parallel child that outlives its team's timeout must still be able to
// emit safely: the run surfaces the timeout as an error, never a panic on the
// trace channel.
func TestDriver_ParallelTimeoutWithLateEmit(t *testing.T) {
	d := NewDriver()

	slow := funcAgent{name: "slow", run: func(rc *core.RunContext) error {
		time.Sleep(150 * time.Millisecond)
		return rc.EmitText("slow", "late output")
	}}
	team := agent.NewParallelAgent("team", 20*time.Millisecond, slow)

	_, err := d.Run(context.Background(), team, "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestDriver_RunOnceNormalizes(t *testing.T) {
	d := NewDriver()

	ag := funcAgent{name: "classifier", run: func(rc *core.RunContext) error {
		return rc.EmitText("classifier", `{"text": "WEATHER_ROUTE"}`)
	}}

	out, err := d.RunOnce(context.Background(), ag, "Weather in Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "WEATHER_ROUTE", out)
}

func TestDriver_RunOnceError(t *testing.T) {
	d := NewDriver()

	failing := funcAgent{name: "broken", run: func(*core.RunContext) error {
		return errors.New("boom")
	}}

	out, err := d.RunOnce(context.Background(), failing, "prompt")
	require.Error(t, err)
	assert.Empty(t, out)
}
