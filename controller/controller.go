package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentloop/core"
	"github.com/hupe1980/agentloop/logging"
	"github.com/hupe1980/agentloop/strategy"
	"github.com/hupe1980/agentloop/tool"
)

// State identifies a controller state.
type State string

const (
	// StateEntry validates the goal before any run mutation.
	StateEntry State = "ENTRY"
	// StatePlan asks the planner for an ordered tool plan.
	StatePlan State = "PLAN"
	// StateExecuteTool dispatches the current plan position to the executor.
	StateExecuteTool State = "EXECUTE_TOOL"
	// StateEvaluate asks the evaluator for a sufficiency verdict.
	StateEvaluate State = "EVALUATE"
	// StateReflect decides between retrying and finalizing.
	StateReflect State = "REFLECT"
	// StateGenerate produces the final response.
	StateGenerate State = "GENERATE"
	// StateEnd is terminal.
	StateEnd State = "END"
)

// DefaultMaxRetries bounds the retry loop when no override is configured.
const DefaultMaxRetries = 1

// Options configures a Controller.
type Options struct {
	// MaxRetries bounds how often REFLECT may route back to EXECUTE_TOOL.
	MaxRetries int
	// Logger receives structured state machine events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Controller sequences a run through the fixed state machine. A Controller
// is stateless across runs and safe for concurrent use; each run owns its
// own AgentContext and no run mutates another run's context.
type Controller struct {
	executor   *tool.Executor
	planner    strategy.Planner
	evaluator  strategy.Evaluator
	generator  strategy.Generator
	maxRetries int
	logger     logging.Logger
}

// New constructs a Controller over an executor and the three decision
// strategies.
func New(
	executor *tool.Executor,
	planner strategy.Planner,
	evaluator strategy.Evaluator,
	generator strategy.Generator,
	optFns ...func(o *Options),
) *Controller {
	opts := Options{
		MaxRetries: DefaultMaxRetries,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	return &Controller{
		executor:   executor,
		planner:    planner,
		evaluator:  evaluator,
		generator:  generator,
		maxRetries: opts.MaxRetries,
		logger:     opts.Logger,
	}
}

// Run drives a goal through the state machine to END and returns the final
// context. It fails fast with *core.InvalidGoalError for an empty goal and
// with a wrapped error when a strategy fails or ctx is cancelled; tool
// failures never surface here.
//
// The loop is bounded: REFLECT can route back to EXECUTE_TOOL at most
// MaxRetries times, so Run terminates even if evaluation never reports
// sufficiency.
func (c *Controller) Run(ctx context.Context, goal string) (*core.AgentContext, error) {
	r := &run{
		controller: c,
		agent:      core.NewAgentContext(goal, c.maxRetries),
	}

	c.logger.Info("controller.run.start", "run_id", r.agent.RunID, "goal", goal)

	state := StateEntry
	for state != StateEnd {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled in state %s: %w", state, err)
		}

		if err := r.step(ctx, state); err != nil {
			return nil, err
		}

		next := r.transition(state)
		c.logger.Debug("controller.state.transition", "run_id", r.agent.RunID, "from", state, "to", next)
		state = next
	}

	c.logger.Info("controller.run.end",
		"run_id", r.agent.RunID,
		"evaluation", r.agent.Evaluation.String(),
		"retries", r.agent.Retries,
		"tool_results", len(r.agent.ToolResults),
	)

	return r.agent, nil
}

// run holds the per-run mutable state: the public AgentContext plus the
// planned steps (which carry parameters the context's name-only plan does
// not) and the REFLECT decision for the next transition.
type run struct {
	controller *Controller
	agent      *core.AgentContext
	steps      []strategy.Step
	retrying   bool
}

// step performs the side effects of the current state before the transition
// function is evaluated.
func (r *run) step(ctx context.Context, state State) error {
	switch state {
	case StateEntry:
		return r.entry()
	case StatePlan:
		return r.plan(ctx)
	case StateExecuteTool:
		r.executeTool(ctx)
		return nil
	case StateEvaluate:
		return r.evaluate(ctx)
	case StateReflect:
		r.reflect()
		return nil
	case StateGenerate:
		return r.generate(ctx)
	case StateEnd:
		return nil
	default:
		return fmt.Errorf("unknown state: %s", state)
	}
}

// transition returns the next state. It is a pure function of the current
// state and the decisions recorded by step.
func (r *run) transition(state State) State {
	switch state {
	case StateEntry:
		return StatePlan
	case StatePlan:
		return StateExecuteTool
	case StateExecuteTool:
		return StateEvaluate
	case StateEvaluate:
		return StateReflect
	case StateReflect:
		if r.agent.Evaluation == core.EvaluationSufficient {
			return StateGenerate
		}
		if r.retrying {
			return StateExecuteTool
		}
		return StateGenerate
	case StateGenerate:
		return StateEnd
	default:
		return StateEnd
	}
}

func (r *run) entry() error {
	if strings.TrimSpace(r.agent.Goal) == "" {
		return &core.InvalidGoalError{Reason: "goal must be non-empty"}
	}
	return nil
}

func (r *run) plan(ctx context.Context) error {
	plan, err := r.controller.planner.Plan(ctx, r.agent.Goal)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	r.steps = plan.Steps
	r.agent.Intent = plan.Intent
	r.agent.Plan = plan.ToolNames()

	r.controller.logger.Info("controller.plan",
		"run_id", r.agent.RunID,
		"intent", plan.Intent,
		"tools", r.agent.Plan,
	)

	return nil
}

// executeTool runs one plan position and appends exactly one result. The
// plan advances one position per visit until every planned step has a
// result; retries beyond that re-execute the final plan position. An empty
// plan records a synthetic no-op result so the evaluate/reflect cycle still
// sees one result per pass.
func (r *run) executeTool(ctx context.Context) {
	if len(r.steps) == 0 {
		r.agent.ToolResults = append(r.agent.ToolResults,
			core.SuccessResult(core.NoToolPlanned, map[string]any{"note": "no tool planned"}),
		)
		return
	}

	idx := len(r.agent.ToolResults)
	if idx >= len(r.steps) {
		idx = len(r.steps) - 1
	}
	step := r.steps[idx]

	result := r.controller.executor.Execute(ctx, core.ToolRequest{
		ToolName: step.Tool,
		Params:   step.Params,
	})

	r.agent.ToolResults = append(r.agent.ToolResults, result)
}

func (r *run) evaluate(ctx context.Context) error {
	verdict, err := r.controller.evaluator.Evaluate(ctx, r.agent.Goal, r.agent.ToolResults)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	r.agent.Evaluation = verdict

	r.controller.logger.Debug("controller.evaluate",
		"run_id", r.agent.RunID,
		"verdict", verdict.String(),
	)

	return nil
}

// reflect decides whether another EXECUTE_TOOL pass happens. The retry
// counter only advances when a retry is actually taken, which keeps
// Retries <= MaxRetries and yields MaxRetries+1 execution passes in the
// worst case.
func (r *run) reflect() {
	r.retrying = false

	if r.agent.Evaluation == core.EvaluationSufficient {
		return
	}

	if r.agent.Retries < r.agent.MaxRetries {
		r.agent.Retries++
		r.retrying = true
		r.controller.logger.Info("controller.retry",
			"run_id", r.agent.RunID,
			"retry", r.agent.Retries,
			"max_retries", r.agent.MaxRetries,
		)
	}
}

func (r *run) generate(ctx context.Context) error {
	response, err := r.controller.generator.Generate(ctx, r.agent.Goal, r.agent.ToolResults, r.agent.Evaluation)
	if err != nil {
		return fmt.Errorf("response generation failed: %w", err)
	}

	r.agent.Response = response

	return nil
}
