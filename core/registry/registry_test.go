package registry_test

import (
	"fmt"
	"testing"

	"github.com/dmitrymomot/execkit/core/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer1 struct{ v string }

func (s stringer1) String() string { return s.v }

func TestRegistry_GetAll_Join(t *testing.T) {
	t.Parallel()

	t.Run("child overlays parent", func(t *testing.T) {
		t.Parallel()

		parent := registry.New("p1", "p2")
		child := registry.New("c1")
		joined := parent.Join(child)

		got, ok := registry.First(joined, func(s string) (string, bool) { return s, true })
		require.True(t, ok)
		assert.Equal(t, "c1", got)

		assert.Equal(t, []string{"c1", "p1", "p2"}, registry.GetAll[string](joined))
	})

	t.Run("getAll concatenates child then parent", func(t *testing.T) {
		t.Parallel()

		parent := registry.New(1, 2)
		child := registry.New(3)
		joined := parent.Join(child)

		assert.Equal(t, []int{3, 1, 2}, registry.GetAll[int](joined))
	})

	t.Run("join with empty registry is identity", func(t *testing.T) {
		t.Parallel()

		parent := registry.New("p1")
		joined := parent.Join(registry.Empty)
		assert.Equal(t, parent, joined)

		child := registry.New("c1")
		joined = registry.Empty.Join(child)
		assert.Equal(t, child, joined)
	})

	t.Run("behavioral supertype lookup", func(t *testing.T) {
		t.Parallel()

		r := registry.New(stringer1{v: "hello"})
		v, ok := registry.Get[fmt.Stringer](r)
		require.True(t, ok)
		assert.Equal(t, "hello", v.String())
	})

	t.Run("maybeGet returns zero value when absent", func(t *testing.T) {
		t.Parallel()

		r := registry.New("only-a-string")
		assert.Equal(t, 0, registry.MaybeGet[int](r))
	})
}
