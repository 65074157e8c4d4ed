package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 5, UTF16Len("hello"))
	assert.Equal(t, 2, UTF16Len("工作"))
	assert.Equal(t, 2, UTF16Len("📋"), "emoji outside the BMP is a surrogate pair")
	assert.Equal(t, 0, UTF16Len(""))
}

func TestParseMarkdownBold(t *testing.T) {
	got := ParseMarkdown("**Today** has 3 items")

	assert.Equal(t, "Today has 3 items", got.Text)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, "bold", got.Entities[0].Type)
	assert.Equal(t, 0, got.Entities[0].Offset)
	assert.Equal(t, 5, got.Entities[0].Length)
}

func TestParseMarkdownCode(t *testing.T) {
	got := ParseMarkdown("run `help` for commands")

	assert.Equal(t, "run help for commands", got.Text)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, "code", got.Entities[0].Type)
	assert.Equal(t, 4, got.Entities[0].Offset)
	assert.Equal(t, 4, got.Entities[0].Length)
}

func TestParseMarkdownMixedSortedByOffset(t *testing.T) {
	got := ParseMarkdown("`code` then **bold**")

	assert.Equal(t, "code then bold", got.Text)
	require.Len(t, got.Entities, 2)
	assert.Equal(t, "code", got.Entities[0].Type)
	assert.Equal(t, "bold", got.Entities[1].Type)
	assert.Less(t, got.Entities[0].Offset, got.Entities[1].Offset)
}

func TestParseMarkdownEmojiOffsets(t *testing.T) {
	// Offsets count UTF-16 units, so the emoji before the marker shifts the
	// entity by two.
	got := ParseMarkdown("📋 **Tasks**")

	assert.Equal(t, "📋 Tasks", got.Text)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, 3, got.Entities[0].Offset)
	assert.Equal(t, 5, got.Entities[0].Length)
}

func TestParseMarkdownPlainText(t *testing.T) {
	got := ParseMarkdown("no markers here")
	assert.Equal(t, "no markers here", got.Text)
	assert.Empty(t, got.Entities)
}
