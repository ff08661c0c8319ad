package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursiveCharacterChunking_ShortText(t *testing.T) {
	c, err := NewRecursiveCharacterChunking(100, 10, "")
	require.NoError(t, err)
	defer c.Close()

	chunks, err := c.ChunkText("  a short paragraph  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"a short paragraph"}, chunks)

	chunks, err = c.ChunkText("   ")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRecursiveCharacterChunking_LongText(t *testing.T) {
	c, err := NewRecursiveCharacterChunking(50, 0, "")
	require.NoError(t, err)

	text := strings.Repeat("The river bank flooded again this spring. ", 10)
	chunks, err := c.ChunkText(text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, c.Len(chunk), 50)
		assert.NotEmpty(t, chunk)
	}
}

func TestNewRecursiveCharacterChunking_Validation(t *testing.T) {
	_, err := NewRecursiveCharacterChunking(0, 0, "")
	assert.Error(t, err)

	_, err = NewRecursiveCharacterChunking(10, 10, "")
	assert.Error(t, err)

	_, err = NewRecursiveCharacterChunking(10, 2, "/does/not/exist/tokenizer.json")
	assert.Error(t, err)
}
