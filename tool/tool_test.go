package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentloop/internal/util"
)

type searchArgs struct {
	Query string `json:"query" description:"Search query"`
	TopK  *int   `json:"top_k" description:"Optional result cap"`
	Debug bool   `json:"debug,omitempty"`
}

func TestSchemaFromStruct(t *testing.T) {
	schema, required := util.SchemaFromStruct(searchArgs{})

	assert.Equal(t, "string", schema["query"])
	assert.Equal(t, "integer", schema["top_k"])
	assert.Equal(t, "boolean", schema["debug"])
	// Pointer and omitempty fields are optional.
	assert.Equal(t, []string{"query"}, required)
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, util.TypeMatches("hi", "string"))
	assert.False(t, util.TypeMatches(1, "string"))
	assert.True(t, util.TypeMatches(3, "integer"))
	assert.True(t, util.TypeMatches(float64(3), "integer"))
	assert.False(t, util.TypeMatches(3.5, "integer"))
	assert.True(t, util.TypeMatches(3.5, "number"))
	assert.True(t, util.TypeMatches(true, "boolean"))
	assert.True(t, util.TypeMatches([]any{1}, "array"))
	assert.True(t, util.TypeMatches(map[string]any{}, "object"))
	// nil is valid for any type
	assert.True(t, util.TypeMatches(nil, "string"))
}

func TestNewFuncToolFromStruct(t *testing.T) {
	search := NewFuncToolFromStruct("search", "Search documents", searchArgs{},
		func(_ context.Context, params map[string]any) (map[string]any, error) {
			return map[string]any{"echo": params["query"]}, nil
		},
	)

	assert.Equal(t, "search", search.Name())
	assert.Equal(t, "Search documents", search.Description())
	assert.Equal(t, TypeString, search.Schema()["query"])
	assert.Equal(t, []string{"query"}, search.Required())

	data, err := search.Run(context.Background(), map[string]any{"query": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", data["echo"])
}

func TestToolErrorsFormatting(t *testing.T) {
	assert.Equal(t, "tool already registered: mock_sql", (&DuplicateToolError{Name: "mock_sql"}).Error())
	assert.Equal(t, "tool not found: mock_sql", (&ToolNotFoundError{Name: "mock_sql"}).Error())
}
