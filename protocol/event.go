// Package protocol defines the event vocabulary streamed to clients and the
// codec that frames events as newline-delimited JSON or Server-Sent-Events
// text depending on content negotiation.
package protocol

import "github.com/google/uuid"

// EventType tags one discriminated unit of the output stream.
type EventType string

const (
	// EventRunStarted opens every run's event sequence.
	EventRunStarted EventType = "RUN_STARTED"
	// EventRunFinished closes a successful run.
	EventRunFinished EventType = "RUN_FINISHED"
	// EventRunError replaces RUN_FINISHED when a workflow fails.
	EventRunError EventType = "RUN_ERROR"
	// EventTextMessageStart opens an assistant text message.
	EventTextMessageStart EventType = "TEXT_MESSAGE_START"
	// EventTextMessageContent carries an incremental text delta.
	EventTextMessageContent EventType = "TEXT_MESSAGE_CONTENT"
	// EventTextMessageEnd closes an assistant text message.
	EventTextMessageEnd EventType = "TEXT_MESSAGE_END"
	// EventToolCall announces an external tool invocation.
	EventToolCall EventType = "TOOL_CALL"
	// EventToolResult reports the outcome of a tool invocation.
	EventToolResult EventType = "TOOL_RESULT"
	// EventWeatherCard is a UI-renderable current-conditions card.
	EventWeatherCard EventType = "WEATHER_CARD"
	// EventResearchCard is a UI-renderable research summary card.
	EventResearchCard EventType = "RESEARCH_CARD"
	// EventTechnicalCard is a UI-renderable technical insights card.
	EventTechnicalCard EventType = "TECHNICAL_CARD"
)

// AssistantRole is the fixed role carried by TEXT_MESSAGE_START events.
const AssistantRole = "assistant"

// Event is one discriminated record of the output stream. Type is always
// set; the remaining fields are populated per type by the constructors
// below, which guarantee the required fields for each event kind.
type Event struct {
	Type      EventType      `json:"type"`
	ThreadID  string         `json:"thread_id,omitempty"`
	RunID     string         `json:"run_id,omitempty"`
	MessageID string         `json:"message_id,omitempty"`
	Role      string         `json:"role,omitempty"`
	AgentName string         `json:"agent_name,omitempty"`
	Delta     string         `json:"delta,omitempty"`
	Tool      string         `json:"tool,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
	OK        *bool          `json:"ok,omitempty"`
	Error     string         `json:"error,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewMessageID mints a fresh message identifier for a text triple.
func NewMessageID() string { return uuid.NewString() }

// NewRunStarted builds the lifecycle event opening a run.
func NewRunStarted(threadID, runID string) Event {
	return Event{Type: EventRunStarted, ThreadID: threadID, RunID: runID}
}

// NewRunFinished builds the lifecycle event closing a successful run.
func NewRunFinished(threadID, runID string) Event {
	return Event{Type: EventRunFinished, ThreadID: threadID, RunID: runID}
}

// NewRunError builds the terminal error event replacing RUN_FINISHED.
func NewRunError(threadID, runID, message string) Event {
	return Event{Type: EventRunError, ThreadID: threadID, RunID: runID, Error: message}
}

// NewTextStart opens an assistant text message. The role is always the
// assistant role; agentName optionally identifies the producing agent.
func NewTextStart(messageID, agentName string) Event {
	return Event{Type: EventTextMessageStart, MessageID: messageID, Role: AssistantRole, AgentName: agentName}
}

// NewTextContent carries one incremental text delta for a message.
func NewTextContent(messageID, delta string) Event {
	return Event{Type: EventTextMessageContent, MessageID: messageID, Delta: delta}
}

// NewTextEnd closes an assistant text message.
func NewTextEnd(messageID string) Event {
	return Event{Type: EventTextMessageEnd, MessageID: messageID}
}

// NewToolCall announces an invocation of the named tool.
func NewToolCall(tool string, args map[string]any) Event {
	return Event{Type: EventToolCall, Tool: tool, Args: args}
}

// NewToolResult reports a tool outcome. On success data carries the result
// payload; on failure errMsg explains what went wrong.
func NewToolResult(tool string, ok bool, data map[string]any, errMsg string) Event {
	return Event{Type: EventToolResult, Tool: tool, OK: &ok, Data: data, Error: errMsg}
}

// NewWeatherCard builds a current-conditions card.
func NewWeatherCard(data map[string]any) Event {
	return Event{Type: EventWeatherCard, Data: data}
}

// NewResearchCard builds a research summary card.
func NewResearchCard(data map[string]any) Event {
	return Event{Type: EventResearchCard, Data: data}
}

// NewTechnicalCard builds a technical insights card.
func NewTechnicalCard(data map[string]any) Event {
	return Event{Type: EventTechnicalCard, Data: data}
}
