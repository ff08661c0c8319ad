package parse

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseParser tags text in-process with prose's averaged perceptron model.
// Named-entity extraction and sentence segmentation are disabled; only the
// tokenizer and the tagger run.
type ProseParser struct{}

// NewProseParser loads the tagging model and runs a warm-up parse so a broken
// model surfaces at startup.
func NewProseParser() (*ProseParser, error) {
	p := &ProseParser{}
	doc, err := p.Parse(context.Background(), "The parser is ready.")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParserUnavailable, err)
	}
	if len(doc.Tokens) == 0 {
		return nil, fmt.Errorf("%w: tagger returned no tokens", ErrParserUnavailable)
	}
	return p, nil
}

func (p *ProseParser) Parse(ctx context.Context, text string) (*Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	raw := doc.Tokens()
	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		tokens = append(tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}

	return NewDoc(tokens), nil
}
