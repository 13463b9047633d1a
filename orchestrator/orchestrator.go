// Package orchestrator sequences routing, workflow execution and external
// lookups into an ordered protocol event stream describing one end-to-end
// run. It also exposes non-streaming entry points returning the same
// workflow results as single structured values.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/pyaichatbot/adk-demo/core"
	"github.com/pyaichatbot/adk-demo/logging"
	"github.com/pyaichatbot/adk-demo/model"
	"github.com/pyaichatbot/adk-demo/protocol"
	"github.com/pyaichatbot/adk-demo/router"
	"github.com/pyaichatbot/adk-demo/weather"
	"github.com/pyaichatbot/adk-demo/workflow"
)

// WeatherToolName identifies the weather lookup in TOOL_CALL / TOOL_RESULT events.
const WeatherToolName = "WeatherTool"

const generalCapabilities = "I can help you with three things: current weather for a city " +
	"(try \"Weather in Tokyo\"), researching a topic or URL into an executive summary, and " +
	"merging multiple perspectives on a question into a single answer. What would you like to do?"

// Run identifies one end-to-end interaction. It lives only for the duration
// of one streamed response and is never persisted.
type Run struct {
	ThreadID string
	RunID    string
	Prompt   string
}

// Options configures an Orchestrator.
type Options struct {
	SessionStore   core.SessionStore
	Weather        *weather.Client
	Logger         logging.Logger
	CollabTimeout  time.Duration
	WorkflowDriver *workflow.Driver
}

// Orchestrator owns the demo agent roster and composes protocol event
// streams. It is stateless across runs: every run gets fresh identifiers and
// a fresh scratch scope from the workflow driver.
type Orchestrator struct {
	router     *router.Router
	weather    *weather.Client
	driver     *workflow.Driver
	sequential core.Agent
	collab     core.Agent
	logger     logging.Logger
}

// New builds an Orchestrator around the given model. The weather client,
// session store and logger default to production-ready instances unless
// overridden.
func New(llm model.Model, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		Weather:       weather.NewClient(),
		Logger:        logging.NoOpLogger{},
		CollabTimeout: 2 * time.Minute,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	driver := opts.WorkflowDriver
	if driver == nil {
		driver = workflow.NewDriver(func(o *workflow.Options) {
			if opts.SessionStore != nil {
				o.SessionStore = opts.SessionStore
			}
			o.Logger = opts.Logger
		})
	}

	return &Orchestrator{
		router:     router.New(driver, llm, func(o *router.Options) { o.Logger = opts.Logger }),
		weather:    opts.Weather,
		driver:     driver,
		sequential: newResearchPipeline(llm),
		collab:     newCollabTeam(llm, opts.CollabTimeout),
		logger:     opts.Logger,
	}
}

// Classify exposes the routing decision without running a workflow.
func (o *Orchestrator) Classify(ctx context.Context, query string) router.Decision {
	return o.router.Classify(ctx, query)
}

// RunSequential drives the research pipeline to completion and returns its
// structured result (non-streaming entry point).
func (o *Orchestrator) RunSequential(ctx context.Context, prompt string) (*workflow.Result, error) {
	return o.driver.Run(ctx, o.sequential, prompt, []string{StateResearchSummary, StateFinalOutput})
}

// RunCollab drives the parallel collaboration team to completion and returns
// its structured result (non-streaming entry point).
func (o *Orchestrator) RunCollab(ctx context.Context, prompt string) (*workflow.Result, error) {
	return o.driver.Run(ctx, o.collab, prompt, []string{StateCollabResearchSummary, StateCollabFinalOutput})
}

// Stream composes the full event sequence for one run. Events are delivered
// over an unbuffered channel so the producer suspends between events until
// the transport has consumed the previous one. The channel is closed after
// the terminal lifecycle event (RUN_FINISHED, or RUN_ERROR on workflow
// failure).
func (o *Orchestrator) Stream(ctx context.Context, run Run) <-chan protocol.Event {
	out := make(chan protocol.Event)

	go func() {
		defer close(out)

		emit := func(ev protocol.Event) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- ev:
				return true
			}
		}

		if !emit(protocol.NewRunStarted(run.ThreadID, run.RunID)) {
			return
		}

		decision := o.router.Classify(ctx, run.Prompt)
		o.logger.Info("run classified",
			"run_id", run.RunID, "route", decision.Route, "city", decision.City)

		if !emitTextTriple(emit, "router", decision.RoutingDecision) {
			return
		}

		var failed bool
		switch decision.Route {
		case router.RouteWeather:
			failed = !o.streamWeather(ctx, emit, decision)
		case router.RouteResearch:
			failed = !o.streamWorkflow(ctx, emit, run, o.sequential, "Research pipeline completed.",
				StateResearchSummary, StateFinalOutput)
		case router.RouteCollaboration:
			failed = !o.streamWorkflow(ctx, emit, run, o.collab, "Collaboration completed.",
				StateCollabResearchSummary, StateCollabFinalOutput)
		default:
			failed = !emitTextTriple(emit, "assistant", generalCapabilities)
		}

		if failed {
			return
		}

		emit(protocol.NewRunFinished(run.ThreadID, run.RunID))
	}()

	return out
}

// streamWeather handles the weather branch: tool call, lookup, result and
// card or apology. Lookup failures never abort the run.
func (o *Orchestrator) streamWeather(ctx context.Context, emit func(protocol.Event) bool, decision router.Decision) bool {
	if decision.City == "" {
		if !emit(protocol.NewToolResult(WeatherToolName, false, nil, "could not determine a city from the request")) {
			return false
		}
		return emitTextTriple(emit, "weather",
			"Sorry, I couldn't tell which city you meant. Could you try again with a city name, like \"Weather in Tokyo\"?")
	}

	if !emit(protocol.NewToolCall(WeatherToolName, map[string]any{"city": decision.City})) {
		return false
	}

	loc, err := o.weather.Geocode(ctx, decision.City)
	if err != nil {
		o.logger.Warn("weather lookup failed", "city", decision.City, "error", err)
		if !emit(protocol.NewToolResult(WeatherToolName, false, nil, fmt.Sprintf("City not found: %s", decision.City))) {
			return false
		}
		return emitTextTriple(emit, "weather",
			fmt.Sprintf("Sorry, I couldn't find weather data for %q. Could you try a different city name?", decision.City))
	}

	cond, err := o.weather.CurrentConditions(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		o.logger.Warn("conditions lookup failed", "city", decision.City, "error", err)
		if !emit(protocol.NewToolResult(WeatherToolName, false, nil, fmt.Sprintf("City not found: %s", decision.City))) {
			return false
		}
		return emitTextTriple(emit, "weather",
			fmt.Sprintf("Sorry, I couldn't find weather data for %q. Could you try a different city name?", decision.City))
	}

	card := map[string]any{
		"location":      fmt.Sprintf("%s, %s", loc.Name, loc.Country),
		"temperature":   cond.Temperature,
		"windspeed":     cond.Windspeed,
		"winddirection": cond.Winddirection,
		"weathercode":   cond.Weathercode,
		"time":          cond.Time,
	}

	if !emit(protocol.NewToolResult(WeatherToolName, true, card, "")) {
		return false
	}
	if !emit(protocol.NewWeatherCard(card)) {
		return false
	}

	summary := fmt.Sprintf("Current weather in %s, %s: %.1f°C, wind %.1f km/h (as of %s).",
		loc.Name, loc.Country, cond.Temperature, cond.Windspeed, cond.Time)

	return emitTextTriple(emit, "weather", summary)
}

// streamWorkflow drives a workflow and emits its cards. When both named
// artifacts are present a research card, a technical card and a short
// completion triple are emitted; otherwise the full output degrades to a
// single text triple. A workflow error terminates the run with RUN_ERROR.
func (o *Orchestrator) streamWorkflow(
	ctx context.Context,
	emit func(protocol.Event) bool,
	run Run,
	ag core.Agent,
	completion string,
	summaryKey, outputKey string,
) bool {
	res, err := o.driver.Run(ctx, ag, run.Prompt, []string{summaryKey, outputKey})
	if err != nil {
		o.logger.Error("workflow failed", "run_id", run.RunID, "workflow", ag.Name(), "error", err)
		emit(protocol.NewRunError(run.ThreadID, run.RunID, err.Error()))
		return false
	}

	summary, haveSummary := res.Artifacts[summaryKey]
	output, haveOutput := res.Artifacts[outputKey]

	if haveSummary && haveOutput {
		if !emit(protocol.NewResearchCard(map[string]any{"content": summary})) {
			return false
		}
		if !emit(protocol.NewTechnicalCard(map[string]any{"content": output})) {
			return false
		}
		return emitTextTriple(emit, ag.Name(), completion)
	}

	return emitTextTriple(emit, ag.Name(), res.Output)
}

// emitTextTriple sends the START/CONTENT/END message sequence for one text.
func emitTextTriple(emit func(protocol.Event) bool, agentName, text string) bool {
	msgID := protocol.NewMessageID()

	if !emit(protocol.NewTextStart(msgID, agentName)) {
		return false
	}
	if !emit(protocol.NewTextContent(msgID, text)) {
		return false
	}
	return emit(protocol.NewTextEnd(msgID))
}
