package orchestrator

import (
	"fmt"
	"time"

	"github.com/pyaichatbot/adk-demo/agent"
	"github.com/pyaichatbot/adk-demo/core"
	"github.com/pyaichatbot/adk-demo/model"
)

// Scratch-state keys written by the workflow steps. Sequential and parallel
// teams use separate keys so their artifacts never collide.
const (
	StateResearchSummary       = "research_summary"
	StateFinalOutput           = "final_output"
	StateCollabResearchSummary = "collab_research_summary"
	StateCollabFinalOutput     = "collab_final_output"
)

const researcherInstruction = "You are a senior web researcher. If the user gives a URL or topic, " +
	"produce a structured summary with key facts, sources (if provided), and caveats. " +
	"Prefer concise bullets."

const writerInstruction = "You are a crisp technical writer. Turn the research summary into an executive summary " +
	"and 3-5 actionable insights for engineering managers. Keep it precise."

const collabWriterInstruction = "You are a crisp technical writer. Turn structured notes into an executive summary " +
	"and 3-5 actionable insights for engineering managers. Keep it precise."

// newResearchPipeline builds the sequential team: the researcher writes
// research_summary, then the writer folds that summary into its instruction
// and writes final_output.
func newResearchPipeline(llm model.Model) core.Agent {
	researcher := agent.NewModelAgent("web_researcher", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(researcherInstruction)
		o.OutputKey = StateResearchSummary
	})

	writer := agent.NewModelAgent("technical_writer", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromFunc(func(rc *core.RunContext) (string, error) {
			summary, ok := rc.GetState(StateResearchSummary)
			if !ok || summary == "" {
				return writerInstruction, nil
			}
			return fmt.Sprintf("%s\n\n**Research Summary to Process:**\n%s", writerInstruction, summary), nil
		})
		o.OutputKey = StateFinalOutput
	})

	return agent.NewSequentialAgent("sequential_orchestrator", researcher, writer)
}

// newCollabTeam builds the parallel team: both roles run against the raw
// prompt concurrently and write independent keys.
func newCollabTeam(llm model.Model, timeout time.Duration) core.Agent {
	researcher := agent.NewModelAgent("web_researcher_collab", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(researcherInstruction)
		o.OutputKey = StateCollabResearchSummary
	})

	writer := agent.NewModelAgent("technical_writer_collab", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(collabWriterInstruction)
		o.OutputKey = StateCollabFinalOutput
	})

	return agent.NewParallelAgent("collab_orchestrator", timeout, researcher, writer)
}
