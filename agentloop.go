// Package agentloop provides a high-level façade over the controller state
// machine and the tool registry/executor pair, enabling construction of a
// complete goal-driven agent loop in a few lines. Most applications interact
// with this package by:
//  1. Creating a tool.Registry and registering tools
//  2. Creating an AgentLoop via New() (optionally overriding the default
//     planner, evaluator, generator or retry bound)
//  3. Running goals with Run()
//
// The façade delegates orchestration to controller.Controller while keeping
// setup ergonomics concise. The defaults are fully deterministic: a
// rule-based planner, a result-based evaluator and a template generator, so
// two runs over the same goal and tool set produce identical transcripts.
// Model-backed strategies from the strategy package can be swapped in for
// non-deterministic planning and evaluation.
package agentloop

import (
	"context"

	"github.com/hupe1980/agentloop/controller"
	"github.com/hupe1980/agentloop/core"
	"github.com/hupe1980/agentloop/logging"
	"github.com/hupe1980/agentloop/strategy"
	"github.com/hupe1980/agentloop/tool"
)

// Options configures the AgentLoop instance.
type Options struct {
	// MaxRetries bounds how many times an insufficient evaluation may trigger
	// another tool execution pass.
	MaxRetries int

	// Planner, Evaluator and Generator override the deterministic defaults.
	Planner   strategy.Planner
	Evaluator strategy.Evaluator
	Generator strategy.Generator

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentLoop is the high-level façade aggregating the registry, executor and
// controller.
type AgentLoop struct {
	registry   *tool.Registry
	controller *controller.Controller
}

// New creates a new AgentLoop over a tool registry with optional overrides.
// Any unset strategy is initialized with its deterministic default.
func New(registry *tool.Registry, optFns ...func(o *Options)) *AgentLoop {
	opts := Options{
		MaxRetries: controller.DefaultMaxRetries,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Planner == nil {
		opts.Planner = strategy.NewRulePlanner(nil, strategy.Plan{Intent: "no matching rule"})
	}

	if opts.Evaluator == nil {
		opts.Evaluator = strategy.NewResultEvaluator()
	}

	if opts.Generator == nil {
		opts.Generator = strategy.NewTemplateGenerator()
	}

	executor := tool.NewExecutor(registry, func(o *tool.ExecutorOptions) {
		o.Logger = opts.Logger
	})

	c := controller.New(executor, opts.Planner, opts.Evaluator, opts.Generator, func(o *controller.Options) {
		o.MaxRetries = opts.MaxRetries
		o.Logger = opts.Logger
	})

	return &AgentLoop{registry: registry, controller: c}
}

// Registry returns the underlying tool registry.
func (l *AgentLoop) Registry() *tool.Registry { return l.registry }

// Run drives a goal through the state machine and returns the final context
// with the response, tool results and evaluation recorded.
func (l *AgentLoop) Run(ctx context.Context, goal string) (*core.AgentContext, error) {
	return l.controller.Run(ctx, goal)
}
