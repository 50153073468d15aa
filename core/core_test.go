package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluationString(t *testing.T) {
	assert.Equal(t, "unset", EvaluationUnset.String())
	assert.Equal(t, "sufficient", EvaluationSufficient.String())
	assert.Equal(t, "insufficient", EvaluationInsufficient.String())
}

func TestNewAgentContext(t *testing.T) {
	ctx := NewAgentContext("find recent orders", 2)
	assert.NotEmpty(t, ctx.RunID)
	assert.Equal(t, "find recent orders", ctx.Goal)
	assert.Equal(t, 2, ctx.MaxRetries)
	assert.Zero(t, ctx.Retries)
	assert.Equal(t, EvaluationUnset, ctx.Evaluation)
	assert.Empty(t, ctx.Plan)
	assert.Empty(t, ctx.ToolResults)
	assert.Empty(t, ctx.Response)
}

func TestFailedResults(t *testing.T) {
	ctx := NewAgentContext("goal", 1)
	ctx.ToolResults = append(ctx.ToolResults,
		SuccessResult("a", map[string]any{"x": 1}),
		FailureResult("b", "boom"),
		SuccessResult("c", nil),
	)
	failed := ctx.FailedResults()
	assert.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].ToolName)
}

func TestResultConstructors(t *testing.T) {
	ok := SuccessResult("sql", map[string]any{"rows": 2})
	assert.True(t, ok.OK)
	assert.Equal(t, "sql", ok.ToolName)
	assert.Empty(t, ok.Error)

	fail := FailureResult("sql", "missing required parameter: query")
	assert.False(t, fail.OK)
	assert.Nil(t, fail.Data)
	assert.Equal(t, "missing required parameter: query", fail.Error)
}

func TestInvalidGoalError(t *testing.T) {
	err := &InvalidGoalError{Reason: "goal must be non-empty"}
	assert.Contains(t, err.Error(), "invalid goal")
	assert.Contains(t, err.Error(), "non-empty")
}
