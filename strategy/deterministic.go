package strategy

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/hupe1980/agentloop/core"
)

// FixedPlanner always returns the same plan regardless of the goal. Useful
// for tests and for hosts that hard-wire a single capability.
type FixedPlanner struct {
	intent string
	steps  []Step
}

// NewFixedPlanner constructs a FixedPlanner.
func NewFixedPlanner(intent string, steps ...Step) *FixedPlanner {
	return &FixedPlanner{intent: intent, steps: steps}
}

// Plan implements Planner.
func (p *FixedPlanner) Plan(_ context.Context, _ string) (Plan, error) {
	return Plan{Intent: p.intent, Steps: copySteps(p.steps)}, nil
}

// Rule maps goal keywords to a plan fragment. The first rule with any
// keyword contained in the lowercased goal wins.
type Rule struct {
	Keywords []string
	Intent   string
	Steps    []Step
}

// RulePlannerOptions configures a RulePlanner.
type RulePlannerOptions struct {
	// GoalParam, when non-empty, names a parameter that is filled with the
	// goal text on every planned step that does not already set it. This
	// lets keyword rules produce invocable steps without repeating the goal.
	GoalParam string
}

// RulePlanner plans by matching goal keywords against a fixed rule table.
// Deterministic within a call, as the planning contract requires.
type RulePlanner struct {
	rules     []Rule
	fallback  Plan
	goalParam string
}

// NewRulePlanner constructs a RulePlanner with a rule table and a fallback
// plan used when no rule matches. An empty fallback means "no tool needed".
func NewRulePlanner(rules []Rule, fallback Plan, optFns ...func(o *RulePlannerOptions)) *RulePlanner {
	opts := RulePlannerOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &RulePlanner{rules: rules, fallback: fallback, goalParam: opts.GoalParam}
}

// Plan implements Planner.
func (p *RulePlanner) Plan(_ context.Context, goal string) (Plan, error) {
	lower := strings.ToLower(goal)

	for _, r := range p.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return p.materialize(Plan{Intent: r.Intent, Steps: r.Steps}, goal), nil
			}
		}
	}

	return p.materialize(p.fallback, goal), nil
}

// materialize copies the plan fragment and injects the goal parameter where
// configured, so rule tables stay free of per-goal state.
func (p *RulePlanner) materialize(plan Plan, goal string) Plan {
	steps := copySteps(plan.Steps)
	if p.goalParam != "" {
		for i := range steps {
			if steps[i].Params == nil {
				steps[i].Params = map[string]any{}
			}
			if _, ok := steps[i].Params[p.goalParam]; !ok {
				steps[i].Params[p.goalParam] = goal
			}
		}
	}
	return Plan{Intent: plan.Intent, Steps: steps}
}

func copySteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = Step{Tool: s.Tool}
		if s.Params != nil {
			out[i].Params = make(map[string]any, len(s.Params))
			for k, v := range s.Params {
				out[i].Params[k] = v
			}
		}
	}
	return out
}

// StaticEvaluator always returns the same verdict. Useful for tests and for
// reproducing the single-pass behavior of a loop without retries.
type StaticEvaluator struct {
	verdict core.Evaluation
}

// NewStaticEvaluator constructs a StaticEvaluator.
func NewStaticEvaluator(verdict core.Evaluation) *StaticEvaluator {
	return &StaticEvaluator{verdict: verdict}
}

// Evaluate implements Evaluator.
func (e *StaticEvaluator) Evaluate(_ context.Context, _ string, _ []core.ToolResult) (core.Evaluation, error) {
	return e.verdict, nil
}

// ResultEvaluator reports sufficiency from the tool results alone: sufficient
// iff at least one result exists and none of them failed.
type ResultEvaluator struct{}

// NewResultEvaluator constructs a ResultEvaluator.
func NewResultEvaluator() *ResultEvaluator { return &ResultEvaluator{} }

// Evaluate implements Evaluator.
func (e *ResultEvaluator) Evaluate(_ context.Context, _ string, results []core.ToolResult) (core.Evaluation, error) {
	if len(results) == 0 {
		return core.EvaluationInsufficient, nil
	}
	for _, r := range results {
		if !r.OK {
			return core.EvaluationInsufficient, nil
		}
	}
	return core.EvaluationSufficient, nil
}

// DefaultResponseTemplate is the response produced by TemplateGenerator when
// no custom template is configured.
const DefaultResponseTemplate = `Goal: {{.Goal}}
{{- if .Sufficient}}
Completed with {{.OKCount}} successful tool result(s).
{{- else}}
Best effort: {{.OKCount}} of {{len .Results}} tool invocation(s) succeeded.
{{- range .Failed}}
- {{.ToolName}} failed: {{.Error}}
{{- end}}
{{- end}}`

// TemplateGeneratorOptions configures a TemplateGenerator.
type TemplateGeneratorOptions struct {
	// Template overrides DefaultResponseTemplate. It is rendered with
	// text/template against a data struct exposing Goal, Results, Failed,
	// OKCount, Sufficient and Evaluation.
	Template string
}

// TemplateGenerator renders the final response from a text/template. It is
// fully deterministic and always produces a response, also after exhausted
// retries.
type TemplateGenerator struct {
	text string
}

// NewTemplateGenerator constructs a TemplateGenerator.
func NewTemplateGenerator(optFns ...func(o *TemplateGeneratorOptions)) *TemplateGenerator {
	opts := TemplateGeneratorOptions{Template: DefaultResponseTemplate}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &TemplateGenerator{text: opts.Template}
}

// Generate implements Generator.
func (g *TemplateGenerator) Generate(_ context.Context, goal string, results []core.ToolResult, eval core.Evaluation) (string, error) {
	tmpl, err := template.New("response").Parse(g.text)
	if err != nil {
		return "", err
	}

	okCount := 0
	var failed []core.ToolResult
	for _, r := range results {
		if r.OK {
			okCount++
		} else {
			failed = append(failed, r)
		}
	}

	data := struct {
		Goal       string
		Results    []core.ToolResult
		Failed     []core.ToolResult
		OKCount    int
		Sufficient bool
		Evaluation string
	}{
		Goal:       goal,
		Results:    results,
		Failed:     failed,
		OKCount:    okCount,
		Sufficient: eval == core.EvaluationSufficient,
		Evaluation: eval.String(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
