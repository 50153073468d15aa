package tool

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/agentloop/core"
	"github.com/hupe1980/agentloop/internal/util"
	"github.com/hupe1980/agentloop/logging"
)

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	// Logger receives structured execution events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Executor validates and dispatches tool invocations against a Registry.
//
// Execute never returns an error: unknown tools, schema violations, tool
// errors and tool panics are all converted into a failed core.ToolResult so
// the controller's evaluate/reflect cycle can treat them as ordinary data.
// The Executor holds no mutable state across calls and is safe for
// concurrent use.
type Executor struct {
	registry *Registry
	logger   logging.Logger
}

// NewExecutor constructs an Executor over a registry.
func NewExecutor(registry *Registry, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Executor{registry: registry, logger: opts.Logger}
}

// Execute looks up the requested tool, validates the parameters against its
// schema and invokes it inside a fault boundary. Each step short-circuits
// into a failed result:
//
//  1. unknown tool            -> "tool not found: <name>"
//  2. unexpected parameter    -> "unexpected parameter: <key>"
//     missing required        -> "missing required parameter: <key>"
//     type mismatch           -> "invalid type for <key>: expected <type>"
//  3. tool error or panic     -> the fault message
//
// Validation stops at the first violation; map keys are considered in sorted
// order so the reported violation is deterministic.
func (e *Executor) Execute(ctx context.Context, req core.ToolRequest) core.ToolResult {
	e.logger.Debug("tool.execute.start", "tool", req.ToolName)

	t, err := e.registry.Get(req.ToolName)
	if err != nil {
		e.logger.Warn("tool.execute.unknown", "tool", req.ToolName)
		return core.FailureResult(req.ToolName, err.Error())
	}

	if err := validateParams(req.Params, t.Schema(), t.Required()); err != nil {
		e.logger.Warn("tool.execute.invalid_params", "tool", req.ToolName, "error", err.Error())
		return core.FailureResult(req.ToolName, err.Error())
	}

	start := time.Now()
	data, err := e.invoke(ctx, t, req.Params)
	if err != nil {
		e.logger.Warn("tool.execute.failed",
			"tool", req.ToolName,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		return core.FailureResult(req.ToolName, err.Error())
	}

	e.logger.Info("tool.execute.ok",
		"tool", req.ToolName,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return core.SuccessResult(req.ToolName, data)
}

// invoke runs the tool body behind a recover boundary so a panicking tool
// surfaces as a failed result instead of taking down the run.
func (e *Executor) invoke(ctx context.Context, t Tool, params map[string]any) (data map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("%v", r)
			e.logger.Error("tool.execute.panic", "tool", t.Name(), "recover", r)
		}
	}()

	return t.Run(ctx, params)
}

// validateParams checks params against the declared schema. It stops at the
// first violation, checking unexpected keys, then missing required keys, then
// value types. Map keys are visited in sorted order; required keys in their
// declared order.
func validateParams(params map[string]any, schema Schema, required []string) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := schema[k]; !ok {
			return fmt.Errorf("unexpected parameter: %s", k)
		}
	}

	for _, k := range required {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("missing required parameter: %s", k)
		}
	}

	for _, k := range keys {
		expected := schema[k]
		if !util.TypeMatches(params[k], string(expected)) {
			return fmt.Errorf("invalid type for %s: expected %s", k, expected)
		}
	}

	return nil
}
