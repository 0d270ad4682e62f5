package ansi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripAndWidth(t *testing.T) {
	s := "\x1b[1;31mred\x1b[0m \x1b]8;;http://x\x07link\x1b]8;;\x07 日本"
	require.Equal(t, "red link 日本", Strip(s))
	require.Equal(t, 13, VisualWidth(s))
}

func TestSGRParams(t *testing.T) {
	p, ok := SGRParams("\x1b[1;31m")
	require.True(t, ok)
	require.Equal(t, "1;31", p)

	_, ok = SGRParams("\x1b[2J")
	require.False(t, ok)
}

func TestPadExact(t *testing.T) {
	require.Equal(t, "ab  ", PadExact("ab", 4))
	require.Equal(t, "abc", PadExact("abcdef", 3))
	require.Empty(t, ClipToWidth("abc", 0))
}

func TestWrapLines(t *testing.T) {
	require.Equal(t, []string{"one two", "three", "x"}, WrapLines([]string{"one two three", "x"}, 8))
	require.Equal(t, []string{""}, WrapProse("abc", 0))
}
