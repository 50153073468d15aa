package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentloop/core"
	"github.com/hupe1980/agentloop/strategy"
	"github.com/hupe1980/agentloop/tool"
)

type plannerFunc func(ctx context.Context, goal string) (strategy.Plan, error)

func (f plannerFunc) Plan(ctx context.Context, goal string) (strategy.Plan, error) {
	return f(ctx, goal)
}

type evaluatorFunc func(ctx context.Context, goal string, results []core.ToolResult) (core.Evaluation, error)

func (f evaluatorFunc) Evaluate(ctx context.Context, goal string, results []core.ToolResult) (core.Evaluation, error) {
	return f(ctx, goal, results)
}

type generatorFunc func(ctx context.Context, goal string, results []core.ToolResult, eval core.Evaluation) (string, error)

func (f generatorFunc) Generate(ctx context.Context, goal string, results []core.ToolResult, eval core.Evaluation) (string, error) {
	return f(ctx, goal, results, eval)
}

func staticPlanner(steps ...strategy.Step) strategy.Planner {
	return plannerFunc(func(ctx context.Context, goal string) (strategy.Plan, error) {
		return strategy.Plan{Intent: "test", Steps: steps}, nil
	})
}

func staticEvaluator(verdict core.Evaluation) strategy.Evaluator {
	return evaluatorFunc(func(ctx context.Context, goal string, results []core.ToolResult) (core.Evaluation, error) {
		return verdict, nil
	})
}

func staticGenerator(response string) strategy.Generator {
	return generatorFunc(func(ctx context.Context, goal string, results []core.ToolResult, eval core.Evaluation) (string, error) {
		return response, nil
	})
}

// echoExecutor returns an executor whose single tool succeeds and records the
// number of invocations through the counter pointer.
func echoExecutor(t *testing.T, counter *int) *tool.Executor {
	t.Helper()

	registry := tool.NewRegistry()
	registry.MustRegister(tool.NewFuncTool("echo", "echoes its input", tool.Schema{}, nil,
		func(ctx context.Context, params map[string]any) (map[string]any, error) {
			*counter++
			return map[string]any{"echo": true}, nil
		},
	))

	return tool.NewExecutor(registry)
}

func TestControllerRun(t *testing.T) {
	t.Run("terminates with response when sufficient", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(strategy.Step{Tool: "echo"}),
			staticEvaluator(core.EvaluationSufficient),
			staticGenerator("done"),
		)

		agent, err := c.Run(context.Background(), "echo something")
		require.NoError(t, err)

		assert.Equal(t, "done", agent.Response)
		assert.Equal(t, core.EvaluationSufficient, agent.Evaluation)
		assert.Equal(t, 0, agent.Retries)
		assert.Equal(t, 1, calls)
		require.Len(t, agent.ToolResults, 1)
		assert.True(t, agent.ToolResults[0].OK)
	})

	t.Run("empty goal fails before any work", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(strategy.Step{Tool: "echo"}),
			staticEvaluator(core.EvaluationSufficient),
			staticGenerator("done"),
		)

		agent, err := c.Run(context.Background(), "   ")
		require.Error(t, err)

		var invalidGoal *core.InvalidGoalError
		require.ErrorAs(t, err, &invalidGoal)
		assert.Nil(t, agent)
		assert.Equal(t, 0, calls)
	})

	t.Run("retries are bounded by max retries", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(strategy.Step{Tool: "echo"}),
			staticEvaluator(core.EvaluationInsufficient),
			staticGenerator("best effort"),
			func(o *Options) { o.MaxRetries = 3 },
		)

		agent, err := c.Run(context.Background(), "never enough")
		require.NoError(t, err)

		assert.Equal(t, 3, agent.Retries)
		assert.Equal(t, 4, calls)
		assert.Equal(t, "best effort", agent.Response)
		assert.Equal(t, core.EvaluationInsufficient, agent.Evaluation)
	})

	t.Run("single retry with default max retries", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(strategy.Step{Tool: "echo"}),
			staticEvaluator(core.EvaluationInsufficient),
			staticGenerator("best effort"),
		)

		agent, err := c.Run(context.Background(), "never enough")
		require.NoError(t, err)

		assert.Equal(t, 1, agent.Retries)
		assert.Equal(t, 2, calls)
		assert.NotEmpty(t, agent.Response)
	})

	t.Run("plan advances one step per pass then repeats the last", func(t *testing.T) {
		registry := tool.NewRegistry()
		var order []string
		for _, name := range []string{"first", "second"} {
			name := name
			registry.MustRegister(tool.NewFuncTool(name, "test tool", tool.Schema{}, nil,
				func(ctx context.Context, params map[string]any) (map[string]any, error) {
					order = append(order, name)
					return nil, nil
				},
			))
		}

		c := New(
			tool.NewExecutor(registry),
			staticPlanner(strategy.Step{Tool: "first"}, strategy.Step{Tool: "second"}),
			staticEvaluator(core.EvaluationInsufficient),
			staticGenerator("best effort"),
			func(o *Options) { o.MaxRetries = 2 },
		)

		agent, err := c.Run(context.Background(), "two step goal")
		require.NoError(t, err)

		assert.Equal(t, []string{"first", "second", "second"}, order)
		assert.Equal(t, []string{"first", "second"}, agent.Plan)
		assert.Len(t, agent.ToolResults, 3)
	})

	t.Run("empty plan records a synthetic no-op result", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(),
			staticEvaluator(core.EvaluationSufficient),
			staticGenerator("nothing to do"),
		)

		agent, err := c.Run(context.Background(), "a goal needing no tool")
		require.NoError(t, err)

		assert.Equal(t, 0, calls)
		require.Len(t, agent.ToolResults, 1)
		assert.Equal(t, core.NoToolPlanned, agent.ToolResults[0].ToolName)
		assert.True(t, agent.ToolResults[0].OK)
	})

	t.Run("unknown planned tool becomes a failed result", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(strategy.Step{Tool: "missing"}),
			staticEvaluator(core.EvaluationSufficient),
			staticGenerator("done anyway"),
		)

		agent, err := c.Run(context.Background(), "use the missing tool")
		require.NoError(t, err)

		require.Len(t, agent.ToolResults, 1)
		assert.False(t, agent.ToolResults[0].OK)
		assert.Equal(t, "tool not found: missing", agent.ToolResults[0].Error)
		assert.Equal(t, "done anyway", agent.Response)
	})

	t.Run("planner error aborts the run", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			plannerFunc(func(ctx context.Context, goal string) (strategy.Plan, error) {
				return strategy.Plan{}, errors.New("planner down")
			}),
			staticEvaluator(core.EvaluationSufficient),
			staticGenerator("done"),
		)

		agent, err := c.Run(context.Background(), "anything")
		require.Error(t, err)
		assert.ErrorContains(t, err, "planning failed")
		assert.Nil(t, agent)
		assert.Equal(t, 0, calls)
	})

	t.Run("context cancellation stops the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(strategy.Step{Tool: "echo"}),
			staticEvaluator(core.EvaluationSufficient),
			staticGenerator("done"),
		)

		agent, err := c.Run(ctx, "cancelled goal")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, agent)
		assert.Equal(t, 0, calls)
	})

	t.Run("negative max retries is clamped to zero", func(t *testing.T) {
		var calls int
		c := New(
			echoExecutor(t, &calls),
			staticPlanner(strategy.Step{Tool: "echo"}),
			staticEvaluator(core.EvaluationInsufficient),
			staticGenerator("best effort"),
			func(o *Options) { o.MaxRetries = -5 },
		)

		agent, err := c.Run(context.Background(), "goal")
		require.NoError(t, err)

		assert.Equal(t, 0, agent.Retries)
		assert.Equal(t, 1, calls)
	})
}
