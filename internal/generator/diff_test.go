package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDiff_Identical(t *testing.T) {
	diff, err := GenerateDiff("a.cs", []byte("same\n"), []byte("same\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestGenerateDiff_Unified(t *testing.T) {
	old := "line1\nline2\nline3\n"
	newer := "line1\nchanged\nline3\n"

	diff, err := GenerateDiff("a.cs", []byte(old), []byte(newer), nil)
	require.NoError(t, err)

	assert.Contains(t, diff, "--- a.cs")
	assert.Contains(t, diff, "+++ a.cs (generated)")
	assert.Contains(t, diff, "@@ -1,3 +1,3 @@")
	assert.Contains(t, diff, "-line2\n")
	assert.Contains(t, diff, "+changed\n")
	assert.Contains(t, diff, " line1\n")
}

func TestGenerateDiff_TrailingNewline(t *testing.T) {
	diff, err := GenerateDiff("a.cs", []byte("a\nb\n"), []byte("a\nc\n"), nil)
	require.NoError(t, err)

	assert.Contains(t, diff, "@@ -1,2 +1,2 @@")
	assert.NotContains(t, diff, "\n \n", "no empty context line after the last newline")
	assert.True(t, strings.HasSuffix(diff, "+c\n"), "diff ends at the last real line: %q", diff)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb"))
	assert.Equal(t, []string{"\n"}, splitLines("\n"))
}

func TestGenerateDiff_ContextLines(t *testing.T) {
	var oldLines, newLines []string
	for i := 0; i < 20; i++ {
		oldLines = append(oldLines, "same")
		newLines = append(newLines, "same")
	}
	newLines[10] = "different"

	diff, err := GenerateDiff("a.cs",
		[]byte(strings.Join(oldLines, "\n")+"\n"),
		[]byte(strings.Join(newLines, "\n")+"\n"),
		&DiffOptions{ContextLines: 1})
	require.NoError(t, err)

	// one context line either side of the change
	assert.Equal(t, 2, strings.Count(diff, "\n same"))
}

func TestGenerateDiff_Binary(t *testing.T) {
	diff, err := GenerateDiff("a.bin", []byte{0, 1, 2}, []byte("text"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Binary files differ\n", diff)
}

func TestGenerateDiff_Truncates(t *testing.T) {
	long := strings.Repeat("x", 50)
	diff, err := GenerateDiff("a.cs", []byte("a\n"), []byte(long+"\n"), &DiffOptions{Width: 10})
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 10, "line %q not truncated", line)
	}
	assert.Contains(t, diff, "…")
}

func TestCountChanges(t *testing.T) {
	diff, err := GenerateDiff("a.cs", []byte("a\nb\nc\n"), []byte("a\nB\nc\nd\n"), nil)
	require.NoError(t, err)

	added, removed := CountChanges(diff)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestCountChanges_ContentLooksLikeHeader(t *testing.T) {
	old := "keep\n--- sql comment\n"
	newer := "keep\n++counter;\n+++x;\n"

	diff, err := GenerateDiff("a.cs", []byte(old), []byte(newer), nil)
	require.NoError(t, err)
	require.Contains(t, diff, "---- sql comment\n")
	require.Contains(t, diff, "++++x;\n")

	added, removed := CountChanges(diff)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestCountChanges_NoHunk(t *testing.T) {
	added, removed := CountChanges("Binary files differ\n")
	assert.Zero(t, added)
	assert.Zero(t, removed)
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary([]byte("plain text")))
	assert.True(t, isBinary([]byte("nul\x00byte")))
	assert.False(t, isBinary(nil))
}
