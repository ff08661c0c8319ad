// Package parse provides the linguistic parse the keyword pipeline draws its
// candidate phrases from: noun-phrase chunks and part-of-speech tagged tokens.
package parse

import (
	"context"
	"errors"
)

// ErrParserUnavailable is returned by constructors when the underlying model or
// service cannot be reached. It is a startup error, never a per-call one.
var ErrParserUnavailable = errors.New("linguistic parser unavailable")

// Token is a single word with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Chunk is a noun phrase.
type Chunk struct {
	Text string
}

// Doc is the result of parsing a text. Chunks and Tokens are in order of
// appearance.
type Doc struct {
	Chunks []Chunk
	Tokens []Token
}

type Parser interface {
	Parse(ctx context.Context, text string) (*Doc, error)
}

// NewDoc builds a Doc from tagged tokens, deriving the noun chunks.
func NewDoc(tokens []Token) *Doc {
	return &Doc{
		Chunks: NounChunks(tokens),
		Tokens: tokens,
	}
}
