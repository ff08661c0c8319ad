package relevance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"keyphrase/pkg/chunking"
	"keyphrase/pkg/embedding"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 32
	defaultWorkers   = 4
	defaultTopN      = 5
)

// SemanticRanker ranks phrases by cosine similarity between their embedding
// and the document embedding, optionally diversified with maximal marginal
// relevance.
type SemanticRanker struct {
	embeddingClient embedding.Client
	chunker         chunking.ChunkingClient
	pool            *ants.Pool
	batchSize       int
	workers         int
	stemVocabulary  bool
	logger          *zap.Logger
}

type Option func(*SemanticRanker)

// WithChunker makes long documents embed as the mean of their chunks instead
// of being truncated by the model.
func WithChunker(c chunking.ChunkingClient) Option {
	return func(s *SemanticRanker) { s.chunker = c }
}

func WithBatchSize(n int) Option {
	return func(s *SemanticRanker) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithWorkers sets how many embedding batches may be in flight at once,
// shared by all requests.
func WithWorkers(n int) Option {
	return func(s *SemanticRanker) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithStemmedVocabulary collapses inflected variants in the unconstrained
// vocabulary.
func WithStemmedVocabulary(enabled bool) Option {
	return func(s *SemanticRanker) { s.stemVocabulary = enabled }
}

func NewSemanticRanker(embeddingClient embedding.Client, logger *zap.Logger, opts ...Option) (*SemanticRanker, error) {
	if embeddingClient == nil {
		return nil, fmt.Errorf("embedding client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &SemanticRanker{
		embeddingClient: embeddingClient,
		batchSize:       defaultBatchSize,
		workers:         defaultWorkers,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding pool: %w", err)
	}
	s.pool = pool

	return s, nil
}

func (s *SemanticRanker) Rank(ctx context.Context, doc string, opts RankOptions) ([]Phrase, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, nil
	}

	var words []string
	if opts.Candidates != nil {
		words = candidateVocabulary(doc, opts.Candidates, opts.MinDF)
	} else {
		words = documentVocabulary(doc, s.stemVocabulary)
	}
	if len(words) == 0 {
		s.logger.Debug("empty vocabulary", zap.Int("candidates", len(opts.Candidates)))
		return nil, nil
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	topN = min(topN, len(words))

	docVec, err := s.embedDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	wordVecs, err := s.embedBatches(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("failed to embed phrases: %w", err)
	}

	sims := make([]float64, len(words))
	for i, v := range wordVecs {
		sims[i] = embedding.CosineSimilarity(docVec, v)
	}

	var picked []int
	if opts.Diversity != nil {
		picked = maximalMarginalRelevance(sims, wordVecs, topN, *opts.Diversity)
	} else {
		picked = topIndices(sims, topN)
	}

	phrases := make([]Phrase, 0, len(picked))
	for _, i := range picked {
		phrases = append(phrases, Phrase{Text: words[i], Score: round4(sims[i])})
	}
	sort.SliceStable(phrases, func(a, b int) bool {
		return phrases[a].Score > phrases[b].Score
	})

	s.logger.Debug("ranked phrases",
		zap.Int("vocabulary", len(words)),
		zap.Int("returned", len(phrases)),
		zap.Bool("mmr", opts.Diversity != nil))

	return phrases, nil
}

func (s *SemanticRanker) embedDocument(ctx context.Context, doc string) ([]float32, error) {
	chunks := []string{doc}
	if s.chunker != nil {
		c, err := s.chunker.ChunkText(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to chunk document: %w", err)
		}
		if len(c) > 0 {
			chunks = c
		}
	}

	vecs, err := s.embedBatches(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed document: %w", err)
	}
	if len(vecs) == 1 {
		return vecs[0], nil
	}

	s.logger.Debug("document embedded from chunks", zap.Int("chunks", len(vecs)))
	return embedding.MeanPool(vecs), nil
}

// embedBatches embeds texts in batches on the shared pool, preserving order.
// The first failing batch's error is returned.
func (s *SemanticRanker) embedBatches(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) <= s.batchSize {
		return s.embedBatch(ctx, texts)
	}

	out := make([][]float32, len(texts))
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() { firstErr = err })
	}

	for start := 0; start < len(texts); start += s.batchSize {
		end := min(start+s.batchSize, len(texts))

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			vecs, err := s.embedBatch(ctx, texts[start:end])
			if err != nil {
				fail(err)
				return
			}
			copy(out[start:end], vecs)
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit embedding batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (s *SemanticRanker) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := s.embeddingClient.GetEmbeddings(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vecs))
	}
	return vecs, nil
}

// Close releases the worker pool.
func (s *SemanticRanker) Close() {
	s.pool.Release()
}

var _ Ranker = (*SemanticRanker)(nil)
