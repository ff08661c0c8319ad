package keyword

import (
	"context"
	"errors"
	"unicode/utf8"

	"keyphrase/parse"

	"go.uber.org/zap"
)

var ErrParserRequired = errors.New("linguistic parser is required")

// CandidateGenerator turns raw text into candidate phrases: noun chunks when
// the parse has any, otherwise nouns of two or more characters.
type CandidateGenerator struct {
	parser parse.Parser
	cache  Cache
	logger *zap.Logger
}

func NewCandidateGenerator(parser parse.Parser, cache Cache, logger *zap.Logger) (*CandidateGenerator, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}
	if cache == nil {
		cache = NewLRUCache(1000)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateGenerator{
		parser: parser,
		cache:  cache,
		logger: logger,
	}, nil
}

// Generate returns candidates in order of appearance. The raw text is parsed
// as is since case and punctuation help the tagger. It never fails: a parse
// error is logged, yields no candidates and is not cached.
func (g *CandidateGenerator) Generate(ctx context.Context, raw string) []string {
	if raw == "" {
		g.logger.Debug("empty text for noun phrase extraction")
		return []string{}
	}

	if cached, ok := g.cache.Get(raw); ok {
		return cached
	}

	doc, err := g.parser.Parse(ctx, raw)
	if err != nil {
		g.logger.Warn("noun phrase extraction failed", zap.Error(err))
		return []string{}
	}

	phrases := nounPhrases(doc)
	g.logger.Debug("extracted noun phrases",
		zap.Int("count", len(phrases)),
		zap.Strings("sample", phrases[:min(5, len(phrases))]))

	g.cache.Add(raw, phrases)
	return phrases
}

func nounPhrases(doc *parse.Doc) []string {
	phrases := make([]string, 0, len(doc.Chunks))
	for _, chunk := range doc.Chunks {
		if utf8.RuneCountInString(chunk.Text) >= 1 {
			phrases = append(phrases, chunk.Text)
		}
	}
	if len(phrases) > 0 {
		return phrases
	}

	for _, tok := range doc.Tokens {
		if parse.IsNounTag(tok.Tag) && utf8.RuneCountInString(tok.Text) >= 2 {
			phrases = append(phrases, tok.Text)
		}
	}
	return phrases
}
