package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/agentloop/core"
	"github.com/hupe1980/agentloop/model"
)

// ModelPlanner delegates planning to a model completion. The model is shown
// the available tool names and asked for a JSON plan; a non-JSON answer is
// parsed as a comma separated list of tool names.
type ModelPlanner struct {
	model model.Model
	tools []string
}

// NewModelPlanner constructs a ModelPlanner. availableTools is typically
// registry.Names().
func NewModelPlanner(m model.Model, availableTools []string) *ModelPlanner {
	return &ModelPlanner{model: m, tools: availableTools}
}

// Plan implements Planner.
func (p *ModelPlanner) Plan(ctx context.Context, goal string) (Plan, error) {
	instructions := fmt.Sprintf(
		"You plan tool usage for an agent. Available tools: %s. "+
			"Respond with a single JSON object of the form "+
			`{"intent": string, "steps": [{"tool": string, "params": object}]} `+
			"and nothing else. Use an empty steps array if no tool is needed.",
		strings.Join(p.tools, ", "),
	)

	resp, err := p.model.Complete(ctx, model.Request{Instructions: instructions, Prompt: goal})
	if err != nil {
		return Plan{}, fmt.Errorf("planning failed: %w", err)
	}

	if plan, ok := parsePlanJSON(resp.Text); ok {
		return plan, nil
	}

	return parsePlanList(resp.Text), nil
}

// parsePlanJSON extracts the first {...} span from the completion and decodes
// it as a plan. Models frequently wrap JSON in prose or code fences.
func parsePlanJSON(text string) (Plan, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Plan{}, false
	}

	var plan Plan
	if err := json.Unmarshal([]byte(text[start:end+1]), &plan); err != nil {
		return Plan{}, false
	}

	return plan, true
}

// parsePlanList treats the completion as a comma or newline separated list of
// tool names.
func parsePlanList(text string) Plan {
	var plan Plan
	for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' }) {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		plan.Steps = append(plan.Steps, Step{Tool: name})
	}
	return plan
}

// ModelEvaluator delegates the sufficiency verdict to a model completion.
type ModelEvaluator struct {
	model model.Model
}

// NewModelEvaluator constructs a ModelEvaluator.
func NewModelEvaluator(m model.Model) *ModelEvaluator {
	return &ModelEvaluator{model: m}
}

// Evaluate implements Evaluator. An unparseable answer counts as
// insufficient so the loop retries rather than terminating on noise.
func (e *ModelEvaluator) Evaluate(ctx context.Context, goal string, results []core.ToolResult) (core.Evaluation, error) {
	instructions := "Judge whether the tool results satisfy the goal. " +
		"Answer with exactly one word: sufficient or insufficient."

	prompt := fmt.Sprintf("Goal: %s\n\nTool results:\n%s", goal, formatResults(results))

	resp, err := e.model.Complete(ctx, model.Request{Instructions: instructions, Prompt: prompt})
	if err != nil {
		return core.EvaluationUnset, fmt.Errorf("evaluation failed: %w", err)
	}

	answer := strings.ToLower(resp.Text)
	switch {
	case strings.Contains(answer, "insufficient"):
		return core.EvaluationInsufficient, nil
	case strings.Contains(answer, "sufficient"):
		return core.EvaluationSufficient, nil
	default:
		return core.EvaluationInsufficient, nil
	}
}

// ModelGenerator delegates response generation to a model completion.
type ModelGenerator struct {
	model model.Model
}

// NewModelGenerator constructs a ModelGenerator.
func NewModelGenerator(m model.Model) *ModelGenerator {
	return &ModelGenerator{model: m}
}

// Generate implements Generator.
func (g *ModelGenerator) Generate(ctx context.Context, goal string, results []core.ToolResult, eval core.Evaluation) (string, error) {
	instructions := "Write the final response for the goal using the tool results. " +
		"If the results are insufficient, say so and explain what is missing."

	prompt := fmt.Sprintf(
		"Goal: %s\nVerdict: %s\n\nTool results:\n%s",
		goal, eval, formatResults(results),
	)

	resp, err := g.model.Complete(ctx, model.Request{Instructions: instructions, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("response generation failed: %w", err)
	}

	return resp.Text, nil
}

// formatResults renders tool results as a compact prompt fragment.
func formatResults(results []core.ToolResult) string {
	if len(results) == 0 {
		return "(none)"
	}

	var sb strings.Builder
	for _, r := range results {
		if r.OK {
			data, _ := json.Marshal(r.Data)
			fmt.Fprintf(&sb, "- %s: ok %s\n", r.ToolName, data)
		} else {
			fmt.Fprintf(&sb, "- %s: failed (%s)\n", r.ToolName, r.Error)
		}
	}
	return sb.String()
}
