package keyword

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Extractor is the keyword extraction pipeline: candidate generation followed
// by semantic scoring.
type Extractor struct {
	generator *CandidateGenerator
	scorer    *Scorer
	logger    *zap.Logger
}

func NewExtractor(generator *CandidateGenerator, scorer *Scorer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		generator: generator,
		scorer:    scorer,
		logger:    logger,
	}
}

func (e *Extractor) ExtractKeywords(ctx context.Context, text string) ([]KeywordScore, error) {
	if strings.TrimSpace(text) == "" {
		e.logger.Warn("empty text provided for keyword extraction")
		return []KeywordScore{}, nil
	}

	candidates := e.generator.Generate(ctx, text)
	keywords, err := e.scorer.Score(ctx, text, candidates)
	if err != nil {
		e.logger.Error("keyword extraction failed", zap.Error(err))
		return nil, fmt.Errorf("keyword extraction: %w", err)
	}

	e.logger.Info("extracted keywords",
		zap.Int("candidates", len(candidates)),
		zap.Any("keywords", keywords))
	return keywords, nil
}
