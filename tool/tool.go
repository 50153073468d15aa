package tool

import (
	"context"

	"github.com/hupe1980/agentloop/internal/util"
)

// ParamType names the expected runtime type of a tool parameter. The values
// follow JSON schema type naming so schemas translate directly to function
// calling declarations.
type ParamType string

const (
	// TypeString expects a string value.
	TypeString ParamType = "string"
	// TypeInteger expects an integral value. JSON decoding produces float64
	// for all numbers, so integral float64 values are accepted.
	TypeInteger ParamType = "integer"
	// TypeNumber expects any numeric value.
	TypeNumber ParamType = "number"
	// TypeBoolean expects a bool value.
	TypeBoolean ParamType = "boolean"
	// TypeArray expects a []any value.
	TypeArray ParamType = "array"
	// TypeObject expects a map[string]any value.
	TypeObject ParamType = "object"
)

// Schema maps parameter names to their expected types.
type Schema map[string]ParamType

// Tool is a named capability the agent can invoke. Implementations must be
// safe for concurrent use; the executor may be shared across runs.
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case
	// recommended).
	Name() string

	// Description returns a human-readable description of what this tool
	// does, used for planning and diagnostics.
	Description() string

	// Schema returns the declared parameter types.
	Schema() Schema

	// Required returns the parameter names that must be present on every
	// invocation. Must be a subset of the schema keys.
	Required() []string

	// Run executes the tool with already-validated parameters and returns
	// its result data. Any error (or panic) is captured by the executor and
	// converted into a failed result; it never reaches the controller as an
	// error value.
	Run(ctx context.Context, params map[string]any) (map[string]any, error)
}

// RunFunc is the signature of a plain function exposed as a tool.
type RunFunc func(ctx context.Context, params map[string]any) (map[string]any, error)

// FuncTool is a generic adapter that exposes a plain Go function as a Tool.
// It has no internal mutable state after construction and is safe for
// concurrent use.
type FuncTool struct {
	name        string
	description string
	schema      Schema
	required    []string
	fn          RunFunc
}

// NewFuncTool constructs a FuncTool from an explicit schema and function.
//
// Example:
//
//	echo := tool.NewFuncTool(
//	  "echo",
//	  "Echo the given text back",
//	  tool.Schema{"text": tool.TypeString},
//	  []string{"text"},
//	  func(_ context.Context, params map[string]any) (map[string]any, error) {
//	    return map[string]any{"text": params["text"]}, nil
//	  },
//	)
func NewFuncTool(name, description string, schema Schema, required []string, fn RunFunc) *FuncTool {
	return &FuncTool{
		name:        name,
		description: description,
		schema:      schema,
		required:    required,
		fn:          fn,
	}
}

// NewFuncToolFromStruct derives the parameter schema from a struct using
// reflection. Pointer fields and fields tagged omitempty become optional.
//
// Example:
//
//	type SearchArgs struct {
//	  Query string `json:"query"`
//	  Limit *int   `json:"limit"`
//	}
//
//	search := tool.NewFuncToolFromStruct("search", "Search documents", SearchArgs{}, fn)
func NewFuncToolFromStruct(name, description string, structType any, fn RunFunc) *FuncTool {
	raw, required := util.SchemaFromStruct(structType)
	schema := make(Schema, len(raw))
	for k, v := range raw {
		schema[k] = ParamType(v)
	}
	return NewFuncTool(name, description, schema, required, fn)
}

// Name returns the unique tool name.
func (t *FuncTool) Name() string { return t.name }

// Description returns the short description of the tool.
func (t *FuncTool) Description() string { return t.description }

// Schema returns the declared parameter types.
func (t *FuncTool) Schema() Schema { return t.schema }

// Required returns the required parameter names.
func (t *FuncTool) Required() []string { return t.required }

// Run invokes the wrapped function.
func (t *FuncTool) Run(ctx context.Context, params map[string]any) (map[string]any, error) {
	return t.fn(ctx, params)
}
