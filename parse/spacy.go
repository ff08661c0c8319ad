package parse

import (
	"context"
	"fmt"
	"slices"

	"keyphrase/client"
)

// SpacyParser delegates tagging to a remote spaCy service.
type SpacyParser struct {
	pos *client.POSClient
}

// NewSpacyParser probes the service and fails when it is unreachable or the
// configured model is not loaded.
func NewSpacyParser(ctx context.Context, pos *client.POSClient) (*SpacyParser, error) {
	models, err := pos.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParserUnavailable, err)
	}
	if !slices.Contains(models, pos.Model) {
		return nil, fmt.Errorf("%w: model %q not loaded by %s (have %v)",
			ErrParserUnavailable, pos.Model, pos.BaseURL, models)
	}
	return &SpacyParser{pos: pos}, nil
}

func (p *SpacyParser) Parse(ctx context.Context, text string) (*Doc, error) {
	words, err := p.pos.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, Token{Text: w.Text, Tag: w.Tag})
	}

	return NewDoc(tokens), nil
}
