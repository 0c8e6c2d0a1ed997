package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringInput(t *testing.T) {
	t.Parallel()
	in := NewStringInput("ab")

	assert.Equal(t, byte('a'), in.Peek())
	assert.Equal(t, 0, in.Tell())
	assert.Equal(t, byte('a'), in.Get())
	assert.Equal(t, 1, in.Tell())

	in.Unget()
	assert.Equal(t, 0, in.Tell())
	assert.Equal(t, byte('a'), in.Get())
	assert.Equal(t, byte('b'), in.Get())

	// exhausted: Get and Peek report 0 and the position stays put
	assert.Equal(t, byte(0), in.Peek())
	assert.Equal(t, byte(0), in.Get())
	assert.Equal(t, 2, in.Tell())
	assert.Equal(t, 2, in.Len())
}

func TestStringInputUngetAtStart(t *testing.T) {
	t.Parallel()
	in := NewStringInput("x")
	in.Unget()
	assert.Equal(t, 0, in.Tell())
	assert.Equal(t, byte('x'), in.Get())
}

func TestFileInput(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "in.sgf")
	require.NoError(t, os.WriteFile(path, []byte("(;)"), 0o644))

	in, err := NewFileInput(path)
	require.NoError(t, err)
	defer in.Close()

	assert.Equal(t, 3, in.Size())
	assert.Equal(t, byte('('), in.Peek())
	assert.Equal(t, byte('('), in.Get())
	assert.Equal(t, byte(';'), in.Get())
	in.Unget()
	assert.Equal(t, 1, in.Tell())
	assert.Equal(t, byte(';'), in.Get())
	assert.Equal(t, byte(')'), in.Get())
	assert.Equal(t, byte(0), in.Get())
	assert.Equal(t, 3, in.Tell())
}

func TestFileInputMissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewFileInput(filepath.Join(t.TempDir(), "nope.sgf"))
	assert.Error(t, err)
}
