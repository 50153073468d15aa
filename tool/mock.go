package tool

import (
	"context"
	"fmt"
)

// MockSQLDefaultLimit bounds the row count returned by the mock SQL tool when
// no limit parameter is supplied.
const MockSQLDefaultLimit = 10

// NewMockSQLTool returns a tool that simulates a safe, predefined SQL query.
// No SQL parsing or database access happens; it exists for demos and for
// exercising the executor's validation path.
//
// Parameters: query (string, required), limit (integer, optional).
func NewMockSQLTool() *FuncTool {
	return NewFuncTool(
		"mock_sql",
		"Simulate a safe, predefined SQL query execution",
		Schema{
			"query": TypeString,
			"limit": TypeInteger,
		},
		[]string{"query"},
		func(_ context.Context, params map[string]any) (map[string]any, error) {
			rows := []map[string]any{
				{"id": 1},
				{"id": 2},
			}

			limit := MockSQLDefaultLimit
			if v, ok := params["limit"]; ok {
				limit = intValue(v)
			}
			if limit < 0 {
				return nil, fmt.Errorf("limit must be non-negative, got %d", limit)
			}
			if limit < len(rows) {
				rows = rows[:limit]
			}

			return map[string]any{
				"rows":  rows,
				"count": len(rows),
			}, nil
		},
	)
}

// NewMockVectorSearchTool returns a tool that simulates a vector similarity
// search. No embeddings or vector math involved.
//
// Parameters: query (string, required), top_k (integer, optional).
func NewMockVectorSearchTool() *FuncTool {
	return NewFuncTool(
		"mock_vector_search",
		"Simulate a vector similarity search",
		Schema{
			"query": TypeString,
			"top_k": TypeInteger,
		},
		[]string{"query"},
		func(_ context.Context, params map[string]any) (map[string]any, error) {
			matches := []map[string]any{
				{"doc_id": "doc-1", "score": 0.92},
				{"doc_id": "doc-2", "score": 0.87},
			}

			if v, ok := params["top_k"]; ok {
				topK := intValue(v)
				if topK < 0 {
					return nil, fmt.Errorf("top_k must be non-negative, got %d", topK)
				}
				if topK < len(matches) {
					matches = matches[:topK]
				}
			}

			return map[string]any{
				"matches": matches,
				"count":   len(matches),
			}, nil
		},
	)
}

// intValue narrows an already type-checked integer parameter. JSON decoding
// delivers numbers as float64.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
