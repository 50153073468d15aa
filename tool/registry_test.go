package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopTool(name string) *FuncTool {
	return NewFuncTool(name, "noop", Schema{}, nil,
		func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return map[string]any{"tool": name}, nil
		},
	)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(noopTool("alpha")))

	got, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name())
	assert.Equal(t, 1, r.Len())
}

func TestRegistryDuplicateKeepsFirst(t *testing.T) {
	r := NewRegistry()
	first := NewFuncTool("dup", "first registration", Schema{}, nil,
		func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return nil, nil
		},
	)
	require.NoError(t, r.Register(first))

	err := r.Register(noopTool("dup"))
	require.Error(t, err)

	var dupErr *DuplicateToolError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dup", dupErr.Name)

	got, err := r.Get("dup")
	require.NoError(t, err)
	assert.Equal(t, "first registration", got.Description())
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("ghost")
	require.Error(t, err)

	var nfErr *ToolNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "ghost", nfErr.Name)
	assert.Equal(t, "tool not found: ghost", err.Error())
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mu"} {
		require.NoError(t, r.Register(noopTool(name)))
	}

	assert.Equal(t, []string{"alpha", "mu", "zeta"}, r.Names())
}

func TestRegistryMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(noopTool("once"))

	assert.Panics(t, func() { r.MustRegister(noopTool("once")) })
}
