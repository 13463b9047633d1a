package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunStarted(t *testing.T) {
	ev := NewRunStarted("t1", "r1")

	assert.Equal(t, EventRunStarted, ev.Type)
	assert.Equal(t, "t1", ev.ThreadID)
	assert.Equal(t, "r1", ev.RunID)
}

func TestNewRunFinished(t *testing.T) {
	ev := NewRunFinished("t1", "r1")

	assert.Equal(t, EventRunFinished, ev.Type)
	assert.Equal(t, "t1", ev.ThreadID)
	assert.Equal(t, "r1", ev.RunID)
}

func TestNewRunError(t *testing.T) {
	ev := NewRunError("t1", "r1", "boom")

	assert.Equal(t, EventRunError, ev.Type)
	assert.Equal(t, "t1", ev.ThreadID)
	assert.Equal(t, "r1", ev.RunID)
	assert.Equal(t, "boom", ev.Error)
}

func TestTextTripleConstructors(t *testing.T) {
	start := NewTextStart("m1", "router")
	content := NewTextContent("m1", "hello")
	end := NewTextEnd("m1")

	assert.Equal(t, EventTextMessageStart, start.Type)
	assert.Equal(t, "m1", start.MessageID)
	assert.Equal(t, AssistantRole, start.Role)
	assert.Equal(t, "router", start.AgentName)

	assert.Equal(t, EventTextMessageContent, content.Type)
	assert.Equal(t, "m1", content.MessageID)
	assert.Equal(t, "hello", content.Delta)

	assert.Equal(t, EventTextMessageEnd, end.Type)
	assert.Equal(t, "m1", end.MessageID)
}

func TestNewToolResult(t *testing.T) {
	ok := NewToolResult("WeatherTool", true, map[string]any{"temperature": 21.5}, "")
	assert.Equal(t, EventToolResult, ok.Type)
	assert.NotNil(t, ok.OK)
	assert.True(t, *ok.OK)
	assert.Equal(t, 21.5, ok.Data["temperature"])

	failed := NewToolResult("WeatherTool", false, nil, "City not found: Nowhereistan")
	assert.NotNil(t, failed.OK)
	assert.False(t, *failed.OK)
	assert.Equal(t, "City not found: Nowhereistan", failed.Error)
}

func TestNewMessageID_Unique(t *testing.T) {
	assert.NotEqual(t, NewMessageID(), NewMessageID())
}
