package core

import "github.com/google/uuid"

// NoToolPlanned is the tool name recorded when the planner decides that no
// tool invocation is needed for a goal. The controller appends a synthetic
// successful ToolResult under this name so that the evaluate/reflect cycle
// still sees exactly one result per execution pass.
const NoToolPlanned = "none"

// Evaluation is the verdict produced by the evaluation capability on whether
// the accumulated tool results satisfy the goal.
type Evaluation int

const (
	// EvaluationUnset means no evaluation has happened yet.
	EvaluationUnset Evaluation = iota
	// EvaluationSufficient means the results satisfy the goal.
	EvaluationSufficient
	// EvaluationInsufficient means the results do not satisfy the goal.
	EvaluationInsufficient
)

// String returns the lower-case name of the verdict.
func (e Evaluation) String() string {
	switch e {
	case EvaluationSufficient:
		return "sufficient"
	case EvaluationInsufficient:
		return "insufficient"
	default:
		return "unset"
	}
}

// AgentContext is the mutable record of a single run. It is created by the
// controller at run start, mutated only by the state handler currently
// executing, and returned to the caller when the run reaches its terminal
// state. It must not be shared between concurrent runs.
type AgentContext struct {
	// RunID uniquely identifies this run for logging and tracing.
	RunID string
	// Goal is the caller-provided objective. Immutable after creation.
	Goal string
	// Intent is the planner's interpretation of the goal, set once by the
	// PLAN state.
	Intent string
	// Plan holds the planned tool names in execution order, written once by
	// the PLAN state.
	Plan []string
	// ToolResults accumulates one entry per executed tool, in execution
	// order. Append-only.
	ToolResults []ToolResult
	// Evaluation is the most recent verdict from the EVALUATE state.
	Evaluation Evaluation
	// Retries counts completed retry cycles. Never exceeds MaxRetries.
	Retries int
	// MaxRetries bounds the retry loop.
	MaxRetries int
	// Response is the final answer, set exactly once by the GENERATE state.
	Response string
}

// NewAgentContext constructs the run record for a goal.
func NewAgentContext(goal string, maxRetries int) *AgentContext {
	return &AgentContext{
		RunID:      NewID(),
		Goal:       goal,
		MaxRetries: maxRetries,
	}
}

// FailedResults returns the subset of tool results that reported a failure.
func (a *AgentContext) FailedResults() []ToolResult {
	var failed []ToolResult
	for _, r := range a.ToolResults {
		if !r.OK {
			failed = append(failed, r)
		}
	}
	return failed
}

// ToolRequest is the ephemeral envelope handed to the executor: which tool to
// invoke and with which parameters. It is not retained after dispatch.
type ToolRequest struct {
	ToolName string
	Params   map[string]any
}

// ToolResult is the structured outcome of one tool invocation. Exactly one of
// Data (on success) or Error (on failure) is populated. Values are immutable
// once constructed.
type ToolResult struct {
	// ToolName echoes the requested tool name.
	ToolName string
	// OK reports whether the invocation succeeded.
	OK bool
	// Data holds the tool's returned mapping. Present iff OK.
	Data map[string]any
	// Error holds the failure message. Present iff not OK.
	Error string
}

// SuccessResult wraps a tool's returned data as a successful result.
func SuccessResult(toolName string, data map[string]any) ToolResult {
	return ToolResult{ToolName: toolName, OK: true, Data: data}
}

// FailureResult converts a failure message into a structured result.
func FailureResult(toolName, msg string) ToolResult {
	return ToolResult{ToolName: toolName, OK: false, Error: msg}
}

// NewID generates a unique identifier for runs.
func NewID() string { return uuid.NewString() }
