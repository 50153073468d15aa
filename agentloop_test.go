package agentloop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentloop/core"
	"github.com/hupe1980/agentloop/strategy"
	"github.com/hupe1980/agentloop/tool"
)

func TestAgentLoop(t *testing.T) {
	t.Run("defaults run a goal end to end", func(t *testing.T) {
		registry := tool.NewRegistry()
		registry.MustRegister(tool.NewMockSQLTool())

		loop := New(registry, func(o *Options) {
			o.Planner = strategy.NewRulePlanner([]strategy.Rule{
				{
					Keywords: []string{"orders"},
					Intent:   "query order data",
					Steps:    []strategy.Step{{Tool: "mock_sql"}},
				},
			}, strategy.Plan{Intent: "no matching rule"}, func(o *strategy.RulePlannerOptions) {
				o.GoalParam = "query"
			})
		})

		agent, err := loop.Run(context.Background(), "count the orders")
		require.NoError(t, err)

		assert.Equal(t, core.EvaluationSufficient, agent.Evaluation)
		assert.Equal(t, []string{"mock_sql"}, agent.Plan)
		assert.NotEmpty(t, agent.Response)
		require.Len(t, agent.ToolResults, 1)
		assert.True(t, agent.ToolResults[0].OK)
	})

	t.Run("identical goals produce identical transcripts", func(t *testing.T) {
		newLoop := func() *AgentLoop {
			registry := tool.NewRegistry()
			registry.MustRegister(tool.NewMockSQLTool())
			return New(registry, func(o *Options) {
				o.Planner = strategy.NewRulePlanner(nil, strategy.Plan{
					Intent: "default lookup",
					Steps: []strategy.Step{{
						Tool:   "mock_sql",
						Params: map[string]any{"query": "SELECT id FROM items"},
					}},
				})
			})
		}

		first, err := newLoop().Run(context.Background(), "look something up")
		require.NoError(t, err)
		second, err := newLoop().Run(context.Background(), "look something up")
		require.NoError(t, err)

		assert.Equal(t, first.Plan, second.Plan)
		assert.Equal(t, first.ToolResults, second.ToolResults)
		assert.Equal(t, first.Evaluation, second.Evaluation)
		assert.Equal(t, first.Response, second.Response)
	})

	t.Run("empty fallback plan still produces a response", func(t *testing.T) {
		registry := tool.NewRegistry()

		loop := New(registry)

		agent, err := loop.Run(context.Background(), "a goal no rule matches")
		require.NoError(t, err)

		require.Len(t, agent.ToolResults, 1)
		assert.Equal(t, core.NoToolPlanned, agent.ToolResults[0].ToolName)
		assert.NotEmpty(t, agent.Response)
	})

	t.Run("registry accessor exposes registered tools", func(t *testing.T) {
		registry := tool.NewRegistry()
		registry.MustRegister(tool.NewMockSQLTool())
		registry.MustRegister(tool.NewMockVectorSearchTool())

		loop := New(registry)

		assert.Equal(t, []string{"mock_sql", "mock_vector_search"}, loop.Registry().Names())
	})
}
