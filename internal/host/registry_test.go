package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Latest()
	assert.False(t, ok)

	a := &fakeSurface{id: "a"}
	b := &fakeSurface{id: "b"}
	r.Add(a)
	r.Add(b)
	r.Add(a)

	assert.Equal(t, 2, r.Count())

	latest, ok := r.Latest()
	assert.True(t, ok)
	assert.Equal(t, SurfaceID("b"), latest.ID())

	assert.Equal(t, 1, r.Remove("b"))
	assert.Equal(t, 1, r.Remove("unknown"))

	got, ok := r.Get("a")
	assert.True(t, ok)
	assert.Same(t, a, got)

	assert.Equal(t, 0, r.Remove("a"))
	_, ok = r.Get("a")
	assert.False(t, ok)
}
