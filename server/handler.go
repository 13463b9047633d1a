package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pyaichatbot/adk-demo/logging"
	"github.com/pyaichatbot/adk-demo/orchestrator"
	"github.com/pyaichatbot/adk-demo/protocol"
	"github.com/pyaichatbot/adk-demo/workflow"
)

type handler struct {
	orc    *orchestrator.Orchestrator
	logger logging.Logger
}

func newHandler(orc *orchestrator.Orchestrator, logger logging.Logger) *handler {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &handler{orc: orc, logger: logger}
}

// message is one entry of the protocol-style request message list.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// runRequest accepts both request shapes of the streaming endpoint: a full
// protocol body with ids and a message list, or a bare prompt.
type runRequest struct {
	ThreadID string    `json:"thread_id"`
	RunID    string    `json:"run_id"`
	Messages []message `json:"messages"`
	Prompt   string    `json:"prompt"`
}

// toRun extracts the orchestrator Run, generating ids when absent. The
// prompt is the space-joined content of all user/system messages, or the
// bare prompt field.
func (req runRequest) toRun() orchestrator.Run {
	run := orchestrator.Run{ThreadID: req.ThreadID, RunID: req.RunID}

	if run.ThreadID == "" {
		run.ThreadID = uuid.NewString()
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	if len(req.Messages) > 0 {
		var parts []string
		for _, m := range req.Messages {
			if (m.Role == "user" || m.Role == "system") && m.Content != "" {
				parts = append(parts, m.Content)
			}
		}
		run.Prompt = strings.Join(parts, " ")
		return run
	}

	run.Prompt = req.Prompt
	return run
}

// streamRun is the streaming ingress: it negotiates the event framing from
// the Accept header and writes one frame per orchestrator event, flushing
// after each so the client observes events as they are produced.
func (h *handler) streamRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run := req.toRun()
	enc := protocol.NewEncoder(r.Header.Get("Accept"))

	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	for ev := range h.orc.Stream(r.Context(), run) {
		if _, err := w.Write(enc.Encode(ev)); err != nil {
			h.logger.Warn("client write failed, aborting stream", "run_id", run.RunID, "error", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

func (h *handler) runSequential(w http.ResponseWriter, r *http.Request) {
	h.runWorkflow(w, r, h.orc.RunSequential)
}

func (h *handler) runCollab(w http.ResponseWriter, r *http.Request) {
	h.runWorkflow(w, r, h.orc.RunCollab)
}

// runWorkflow serves the non-streaming convenience endpoints: one JSON
// object with the output, the trace and the route-specific artifact keys
// flattened in.
func (h *handler) runWorkflow(
	w http.ResponseWriter,
	r *http.Request,
	run func(context.Context, string) (*workflow.Result, error),
) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := run(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("workflow run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "workflow execution failed")
		return
	}

	body := map[string]any{
		"output": res.Output,
		"trace":  res.Trace,
	}
	for k, v := range res.Artifacts {
		body[k] = v
	}

	writeJSON(w, http.StatusOK, body)
}

// classify serves the classification-only endpoint.
func (h *handler) classify(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision := h.orc.Classify(r.Context(), req.Prompt)

	writeJSON(w, http.StatusOK, map[string]any{
		"route_type":       decision.Route,
		"city":             decision.City,
		"original_query":   decision.OriginalQuery,
		"routing_decision": decision.RoutingDecision,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
