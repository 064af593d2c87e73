package district

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexOf(t *testing.T) {
	reg := Default()

	assert.Equal(t, 1, reg.IndexOf("Baksa"))
	assert.Equal(t, 17, reg.IndexOf("Kamrup"))
	assert.Equal(t, 16, reg.IndexOf("Kamrup Metropolitan"))
	assert.Equal(t, reg.Len(), reg.IndexOf("Tamulpur"))
	assert.Equal(t, 0, reg.IndexOf("Guwahati"))
	assert.Equal(t, 0, reg.IndexOf(""))
}

func TestNameAt(t *testing.T) {
	reg := Default()

	name, ok := reg.NameAt(17)
	require.True(t, ok)
	assert.Equal(t, "Kamrup", name)

	_, ok = reg.NameAt(0)
	assert.False(t, ok)

	_, ok = reg.NameAt(reg.Len() + 1)
	assert.False(t, ok)

	name, ok = reg.NameAt(reg.Len())
	require.True(t, ok)
	assert.Equal(t, "Tamulpur", name)
}

func TestRegistryIsolation(t *testing.T) {
	names := []string{"Alpha", "Beta"}
	reg := NewRegistry(names)
	names[0] = "mutated"

	got, ok := reg.NameAt(1)
	require.True(t, ok)
	assert.Equal(t, "Alpha", got)

	out := reg.Names()
	out[1] = "mutated"
	got, ok = reg.NameAt(2)
	require.True(t, ok)
	assert.Equal(t, "Beta", got)
}
