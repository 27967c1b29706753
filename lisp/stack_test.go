package lisp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.Nil(t, s.Top())
	require.NoError(t, s.Push("a", nil))
	require.NoError(t, s.Push("b", nil))
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, "b", s.Top().Name)

	err := s.Push("c", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackExhausted))
	assert.Equal(t, 2, s.Height())

	cp := s.Copy()
	assert.Equal(t, "b", s.Pop().Name)
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, 2, cp.Height())

	s.Pop()
	assert.Panics(t, func() { s.Pop() })

	unlimited := &CallStack{}
	for i := 0; i < 100; i++ {
		require.NoError(t, unlimited.Push("f", nil))
	}
}

func TestCallStackDebugPrint(t *testing.T) {
	s := &CallStack{}
	s.Push("outer", nil)
	s.Push("f", nil)
	s.Top().Reused = true
	var buf bytes.Buffer
	_, err := s.DebugPrint(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Stack Trace [2 frames -- entrypoint last]:")
	assert.Contains(t, out, "outer")
	assert.Contains(t, out, "[recur]")
}
