package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentloop"
	"github.com/hupe1980/agentloop/config"
	"github.com/hupe1980/agentloop/logging"
	"github.com/hupe1980/agentloop/model"
	"github.com/hupe1980/agentloop/model/anthropic"
	"github.com/hupe1980/agentloop/model/openai"
	"github.com/hupe1980/agentloop/strategy"
	"github.com/hupe1980/agentloop/tool"
)

func newRunCmd(configPath *string) *cobra.Command {
	var showResults bool

	cmd := &cobra.Command{
		Use:   "run -- <goal>",
		Short: "Run a goal through the agent loop",
		Long: `Run a goal through the plan/execute/evaluate loop using the built-in
mock tools. Everything after "--" is treated as the goal text.`,
		Example: `  agentloop run -- "query the orders table"
  agentloop run --results -- "search the docs for setup instructions"
  agentloop run -c agentloop.yaml -- "summarize recent signups"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("goal required: agentloop run -- \"your goal here\"")
			}
			goal := strings.Join(args, " ")

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			loop, err := buildLoop(cfg)
			if err != nil {
				return err
			}

			agent, err := loop.Run(cmd.Context(), goal)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Intent:     %s\n", agent.Intent)
			fmt.Fprintf(out, "Plan:       %s\n", strings.Join(agent.Plan, ", "))
			fmt.Fprintf(out, "Evaluation: %s (retries: %d)\n", agent.Evaluation, agent.Retries)
			fmt.Fprintf(out, "Response:   %s\n", agent.Response)

			if showResults {
				fmt.Fprintln(out, "Tool results:")
				for _, r := range agent.ToolResults {
					if r.OK {
						data, _ := json.Marshal(r.Data)
						fmt.Fprintf(out, "  - %s: ok %s\n", r.ToolName, data)
					} else {
						fmt.Fprintf(out, "  - %s: failed (%s)\n", r.ToolName, r.Error)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showResults, "results", false, "Print individual tool results")

	return cmd
}

// buildLoop wires registry, strategies and logger from the effective config.
func buildLoop(cfg *config.Config) (*agentloop.AgentLoop, error) {
	registry := newToolRegistry()

	logger := logging.New(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})

	planner, evaluator, generator, err := buildStrategies(cfg, registry)
	if err != nil {
		return nil, err
	}

	return agentloop.New(registry, func(o *agentloop.Options) {
		o.MaxRetries = cfg.MaxRetries
		o.Logger = logger
		o.Planner = planner
		o.Evaluator = evaluator
		o.Generator = generator
	}), nil
}

// newToolRegistry returns a registry populated with the built-in mock tools.
func newToolRegistry() *tool.Registry {
	registry := tool.NewRegistry()
	registry.MustRegister(tool.NewMockSQLTool())
	registry.MustRegister(tool.NewMockVectorSearchTool())
	return registry
}

func buildStrategies(cfg *config.Config, registry *tool.Registry) (strategy.Planner, strategy.Evaluator, strategy.Generator, error) {
	switch cfg.Strategy.Planner {
	case "model":
		m, err := buildModel(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return strategy.NewModelPlanner(m, registry.Names()),
			strategy.NewModelEvaluator(m),
			strategy.NewModelGenerator(m),
			nil
	default:
		planner := strategy.NewRulePlanner(defaultRules(), strategy.Plan{Intent: "no matching rule"},
			func(o *strategy.RulePlannerOptions) {
				o.GoalParam = cfg.Strategy.GoalParam
			},
		)
		return planner, strategy.NewResultEvaluator(), strategy.NewTemplateGenerator(), nil
	}
}

func buildModel(cfg *config.Config) (model.Model, error) {
	switch cfg.Model.Provider {
	case "mock":
		return model.NewMockModel("mock"), nil
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
			o.Temperature = cfg.Model.Temperature
			o.MaxCompletionTokens = int64(cfg.Model.MaxTokens)
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Model.Name)
			}
			o.Temperature = cfg.Model.Temperature
			o.MaxTokens = int64(cfg.Model.MaxTokens)
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Model.Provider)
	}
}

// defaultRules routes common data goals to the built-in mock tools.
func defaultRules() []strategy.Rule {
	return []strategy.Rule{
		{
			Keywords: []string{"sql", "table", "query", "orders", "count"},
			Intent:   "run a database query",
			Steps:    []strategy.Step{{Tool: "mock_sql"}},
		},
		{
			Keywords: []string{"search", "find", "docs", "similar"},
			Intent:   "search the document index",
			Steps:    []strategy.Step{{Tool: "mock_vector_search"}},
		},
	}
}
