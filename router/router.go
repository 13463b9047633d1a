// Package router classifies free-text queries into execution routes and, for
// the weather route, extracts the target city from the original query.
//
// Classification is delegated to an LLM-backed single-shot collaborator and
// is best-effort by design: any output that is not one of the four known
// route tokens degrades to the general route. The router never fails a
// request because of unexpected model output.
package router

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pyaichatbot/adk-demo/agent"
	"github.com/pyaichatbot/adk-demo/core"
	"github.com/pyaichatbot/adk-demo/logging"
	"github.com/pyaichatbot/adk-demo/model"
	"github.com/pyaichatbot/adk-demo/workflow"
)

// Route is the classification bucket deciding which workflow handles a prompt.
type Route string

const (
	// RouteWeather handles current-conditions lookups for a city.
	RouteWeather Route = "WEATHER_ROUTE"
	// RouteResearch handles research/summarization requests via the sequential pipeline.
	RouteResearch Route = "RESEARCH_ROUTE"
	// RouteCollaboration handles multi-perspective requests via the parallel team.
	RouteCollaboration Route = "COLLABORATION_ROUTE"
	// RouteGeneral is the fail-safe default for everything else.
	RouteGeneral Route = "GENERAL_ROUTE"
)

// Valid reports whether the route is one of the four known tokens.
func (r Route) Valid() bool {
	switch r {
	case RouteWeather, RouteResearch, RouteCollaboration, RouteGeneral:
		return true
	default:
		return false
	}
}

// Decision is the outcome of classifying one query.
type Decision struct {
	Route Route `json:"route_type"`
	// City is the extracted city for the weather route, "" when unresolved
	// or when the route does not need one.
	City string `json:"city,omitempty"`
	// OriginalQuery echoes the classified input.
	OriginalQuery string `json:"original_query"`
	// RoutingDecision is a human-readable explanation of the branch taken.
	RoutingDecision string `json:"routing_decision"`
}

const classifierInstruction = `You are a routing classifier. Read the user query and answer with exactly one of these tokens and nothing else:

WEATHER_ROUTE - the user asks about weather, temperature or climate conditions somewhere.
RESEARCH_ROUTE - the user asks to research, summarize or analyze a topic or URL.
COLLABORATION_ROUTE - the user asks to combine, compare or merge perspectives on something.
GENERAL_ROUTE - anything else: greetings, capability questions, small talk.

Examples:
"Weather in Tokyo" -> WEATHER_ROUTE
"What's the temperature in Berlin?" -> WEATHER_ROUTE
"Summarize https://example.com" -> RESEARCH_ROUTE
"Research the history of container orchestration" -> RESEARCH_ROUTE
"Combine the best arguments for and against microservices" -> COLLABORATION_ROUTE
"Hello" -> GENERAL_ROUTE
"What can you do?" -> GENERAL_ROUTE`

// Ordered city extraction attempts against the original query. The first
// pattern targets the "weather in <city>" phrasing (including "weather like
// in"); the second is the broader keyword/preposition fallback.
var (
	cityPrimary  = regexp.MustCompile(`(?i)weather\s+(?:like\s+in|in)\s+([A-Za-z][A-Za-z\s\-]*)`)
	cityFallback = regexp.MustCompile(`(?i)(?:weather|temperature|climate)\s+(?:in|for|at)\s+([A-Za-z][A-Za-z\s\-]*)`)
)

// Router classifies queries via an LLM-backed single-shot collaborator.
type Router struct {
	driver     *workflow.Driver
	classifier core.Agent
	logger     logging.Logger
}

// Options configures a Router.
type Options struct {
	Logger logging.Logger
}

// New constructs a Router backed by the given model and driver.
func New(driver *workflow.Driver, llm model.Model, optFns ...func(o *Options)) *Router {
	opts := Options{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	classifier := agent.NewModelAgent("route_classifier", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(classifierInstruction)
	})

	return &Router{driver: driver, classifier: classifier, logger: opts.Logger}
}

// Classify maps a free-text query to a Decision. Classification never fails:
// collaborator errors and unrecognized tokens both degrade to the general
// route, surfaced only through the routing-decision text.
func (r *Router) Classify(ctx context.Context, query string) Decision {
	d := Decision{Route: RouteGeneral, OriginalQuery: query}

	raw, err := r.driver.RunOnce(ctx, r.classifier, query)
	if err != nil {
		r.logger.Warn("route classification failed, defaulting to general", "error", err)
		d.RoutingDecision = "Classifier unavailable; defaulting to GENERAL_ROUTE"
		return d
	}

	route, recognized := parseRoute(raw)
	d.Route = route
	if !recognized {
		r.logger.Debug("unrecognized route token, defaulting to general", "raw", raw)
		d.RoutingDecision = fmt.Sprintf("Unrecognized classifier output; defaulting to %s", RouteGeneral)
		return d
	}

	if route == RouteWeather {
		d.City = ExtractCity(query)
		if d.City == "" {
			d.RoutingDecision = fmt.Sprintf("Routed to %s but no city could be determined", route)
			return d
		}
		d.RoutingDecision = fmt.Sprintf("Routed to %s (city: %s)", route, d.City)
		return d
	}

	d.RoutingDecision = fmt.Sprintf("Routed to %s", route)
	return d
}

// parseRoute validates a normalized classifier output against the known
// route tokens. The collaborator contract already strips provider wrapping,
// so only membership is checked here; failure falls back to RouteGeneral.
func parseRoute(raw string) (Route, bool) {
	token := Route(strings.ToUpper(strings.TrimSpace(raw)))
	if token.Valid() {
		return token, true
	}

	// Tolerate tokens embedded in a short sentence ("The route is WEATHER_ROUTE.").
	for _, known := range []Route{RouteWeather, RouteResearch, RouteCollaboration, RouteGeneral} {
		if strings.Contains(strings.ToUpper(raw), string(known)) {
			return known, true
		}
	}

	return RouteGeneral, false
}

// ExtractCity pulls a city name out of the original query using the two
// ordered pattern attempts. The result is trimmed and stripped of trailing
// punctuation; "" means the city is not available.
func ExtractCity(query string) string {
	for _, re := range []*regexp.Regexp{cityPrimary, cityFallback} {
		if m := re.FindStringSubmatch(query); m != nil {
			return cleanCity(m[1])
		}
	}

	return ""
}

func cleanCity(raw string) string {
	city := strings.TrimSpace(raw)
	city = strings.TrimRight(city, ".,!?;:")
	return strings.TrimSpace(city)
}
