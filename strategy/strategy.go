package strategy

import (
	"context"

	"github.com/hupe1980/agentloop/core"
)

// Step is one planned tool invocation: the tool name plus the parameters it
// should be called with. Params may be nil for tools without required
// parameters.
type Step struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params,omitempty"`
}

// Plan is the planner's output: the interpreted intent and the ordered steps
// to execute. An empty Steps slice means "no tool needed"; the controller
// records a synthetic no-op result in that case.
type Plan struct {
	Intent string `json:"intent"`
	Steps  []Step `json:"steps"`
}

// ToolNames returns the planned tool names in execution order.
func (p Plan) ToolNames() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Tool
	}
	return names
}

// Planner produces an ordered tool plan for a goal. Returned tool names are
// not required to exist in the registry; an unknown name surfaces later as a
// normal failed tool result, not as a controller fault.
type Planner interface {
	Plan(ctx context.Context, goal string) (Plan, error)
}

// Evaluator judges whether the accumulated tool results satisfy the goal.
type Evaluator interface {
	Evaluate(ctx context.Context, goal string, results []core.ToolResult) (core.Evaluation, error)
}

// Generator produces the final response for a run. It must produce some
// response even when the verdict is insufficient, e.g. a best-effort or
// failure-explaining one.
type Generator interface {
	Generate(ctx context.Context, goal string, results []core.ToolResult, eval core.Evaluation) (string, error)
}
