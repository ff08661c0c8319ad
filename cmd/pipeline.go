package main

import (
	"context"
	"fmt"
	"io"

	"keyphrase/client"
	"keyphrase/config"
	"keyphrase/keyword"
	"keyphrase/parse"
	"keyphrase/pkg/chunking"
	"keyphrase/pkg/embedding"
	"keyphrase/relevance"

	"go.uber.org/zap"
)

// pipeline owns the long-lived resources behind the extractor.
type pipeline struct {
	extractor *keyword.Extractor
	closers   []io.Closer
	ranker    *relevance.SemanticRanker
	logger    *zap.Logger
}

func newPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *pipeline, err error) {
	p := &pipeline{logger: logger}
	defer func() {
		if err != nil {
			p.Close()
		}
	}()

	// =========
	// Parser
	// =========
	parser, err := newParser(ctx, cfg.Parser, logger)
	if err != nil {
		return nil, err
	}

	// =========
	// Embedding Client
	// =========
	model := embedding.NewAllMinilmL6V2(cfg.Embedding.URL, cfg.Embedding.Timeout)
	if err := model.Ping(ctx); err != nil {
		return nil, fmt.Errorf("embedding model unavailable at %s: %w", cfg.Embedding.URL, err)
	}
	var embedder embedding.Client = model
	if cfg.Embedding.CachePath != "" {
		cache, err := embedding.NewBoltCache(cfg.Embedding.CachePath, cfg.Embedding.Model, model, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open embedding cache: %w", err)
		}
		p.closers = append(p.closers, cache)
		embedder = cache
	}

	// =========
	// Chunking Client
	// =========
	chunker, err := chunking.NewRecursiveCharacterChunking(cfg.Chunking.ChunkSize,
		cfg.Chunking.ChunkOverlap, cfg.Chunking.TokenizerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chunking client: %w", err)
	}
	p.closers = append(p.closers, chunker)

	// =========
	// Ranker
	// =========
	p.ranker, err = relevance.NewSemanticRanker(embedder, logger,
		relevance.WithChunker(chunker),
		relevance.WithBatchSize(cfg.Embedding.BatchSize),
		relevance.WithWorkers(cfg.Embedding.Workers),
		relevance.WithStemmedVocabulary(cfg.Extraction.StemVocabulary),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ranker: %w", err)
	}

	// =========
	// Keyword Extractor
	// =========
	generator, err := keyword.NewCandidateGenerator(parser, keyword.NewLRUCache(cfg.Extraction.CacheSize), logger)
	if err != nil {
		return nil, err
	}
	scorer, err := keyword.NewScorer(p.ranker, scorerConfig(cfg.Extraction), logger)
	if err != nil {
		return nil, err
	}
	p.extractor = keyword.NewExtractor(generator, scorer, logger)

	logger.Info("keyword extractor ready",
		zap.String("parser", cfg.Parser.Backend),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Bool("embedding_cache", cfg.Embedding.CachePath != ""))
	return p, nil
}

func newParser(ctx context.Context, cfg config.ParserConfig, logger *zap.Logger) (parse.Parser, error) {
	switch cfg.Backend {
	case config.ParserSpacy:
		pos := client.NewPosClient(cfg.SpacyURL, cfg.Model, cfg.Timeout)
		parser, err := parse.NewSpacyParser(ctx, pos)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize spacy parser: %w", err)
		}
		return parser, nil
	default:
		parser, err := parse.NewProseParser()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize prose parser: %w", err)
		}
		return parser, nil
	}
}

func scorerConfig(e config.ExtractionConfig) keyword.ScorerConfig {
	return keyword.ScorerConfig{
		TopN:              e.TopN,
		Diversity:         e.Diversity,
		MinDF:             e.MinDF,
		Threshold:         e.Threshold,
		MaxKeywords:       e.MaxKeywords,
		LowConfidenceKeep: e.LowConfidenceKeep,
		FallbackTopN:      e.FallbackTopN,
	}
}

func (p *pipeline) Close() {
	if p.ranker != nil {
		p.ranker.Close()
	}
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i].Close(); err != nil {
			p.logger.Warn("failed to close resource", zap.Error(err))
		}
	}
}
