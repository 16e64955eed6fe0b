package traceid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "parent", Resolve("", "  ", " parent "))
	assert.Equal(t, "first", Resolve("first", "second"))

	generated := Resolve("", " ")
	assert.Len(t, generated, 32)
	assert.Len(t, Resolve(), 32)
}
