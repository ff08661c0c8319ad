package chunking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/daulet/tokenizers"
	"github.com/tmc/langchaingo/textsplitter"
)

// RecursiveCharacterChunking splits on paragraph, line, sentence and word
// boundaries. Sizes are measured in model tokens when a tokenizer file is
// given, in runes otherwise.
type RecursiveCharacterChunking struct {
	splitter  *textsplitter.RecursiveCharacter
	tokenizer *tokenizers.Tokenizer
	chunkSize int
}

func NewRecursiveCharacterChunking(chunkSize, chunkOverlap int, tokenizerFilePath string) (*RecursiveCharacterChunking, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", chunkSize, chunkOverlap)
	}

	c := &RecursiveCharacterChunking{chunkSize: chunkSize}

	if tokenizerFilePath != "" {
		tk, err := tokenizers.FromFile(tokenizerFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from pretrained or local files: %w", err)
		}
		c.tokenizer = tk
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
		textsplitter.WithLenFunc(c.Len),
	)
	c.splitter = &splitter

	return c, nil
}

// Len measures text the same way the splitter does.
func (c *RecursiveCharacterChunking) Len(text string) int {
	if c.tokenizer != nil {
		ids, _ := c.tokenizer.Encode(text, false)
		return len(ids)
	}
	return utf8.RuneCountInString(text)
}

// ChunkText returns the text unchanged when it already fits one chunk.
func (c *RecursiveCharacterChunking) ChunkText(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if c.Len(trimmed) <= c.chunkSize {
		return []string{trimmed}, nil
	}

	chunks, err := c.splitter.SplitText(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}

	valid := chunks[:0]
	for _, chunk := range chunks {
		if s := strings.TrimSpace(chunk); s != "" {
			valid = append(valid, s)
		}
	}
	return valid, nil
}

func (c *RecursiveCharacterChunking) Close() error {
	if c.tokenizer != nil {
		return c.tokenizer.Close()
	}
	return nil
}

var _ ChunkingClient = (*RecursiveCharacterChunking)(nil)
