package tool

import "fmt"

// DuplicateToolError is returned by Registry.Register when a tool with the
// same name is already present. The first registration is retained.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.Name)
}

// ToolNotFoundError is returned by Registry.Get for an unknown tool name. The
// executor converts it into a failed result; callers hitting it directly
// should treat it as a construction-time fault.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}
