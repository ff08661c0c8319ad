package keyword

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"keyphrase/relevance"
	"keyphrase/text"

	"go.uber.org/zap"
)

var ErrRankerRequired = errors.New("relevance ranker is required")

// ScorerConfig holds the cascade parameters.
type ScorerConfig struct {
	TopN              int
	Diversity         float64
	MinDF             int
	Threshold         float64
	MaxKeywords       int
	LowConfidenceKeep int
	FallbackTopN      int
}

func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		TopN:              10,
		Diversity:         0.3,
		MinDF:             1,
		Threshold:         0.05,
		MaxKeywords:       5,
		LowConfidenceKeep: 2,
		FallbackTopN:      5,
	}
}

// Scorer ranks candidates against the source text, falling back through
// progressively looser strategies until one produces keywords.
type Scorer struct {
	ranker     relevance.Ranker
	cfg        ScorerConfig
	logger     *zap.Logger
	strategies []strategy
}

// scoreState is shared by the strategies of one Score call.
type scoreState struct {
	raw        string
	candidates []string

	primary     []relevance.Phrase
	primaryDone bool
}

type strategy struct {
	name string
	run  func(ctx context.Context, s *Scorer, st *scoreState) ([]KeywordScore, error)
}

func NewScorer(ranker relevance.Ranker, cfg ScorerConfig, logger *zap.Logger) (*Scorer, error) {
	if ranker == nil {
		return nil, ErrRankerRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		ranker: ranker,
		cfg:    cfg,
		logger: logger,
		strategies: []strategy{
			{name: "primary", run: primaryStrategy},
			{name: "low_confidence", run: lowConfidenceStrategy},
			{name: "unconstrained", run: unconstrainedStrategy},
		},
	}, nil
}

// Score returns at most MaxKeywords keywords in descending score order. An
// empty result is not an error; ranker failures are.
func (s *Scorer) Score(ctx context.Context, raw string, candidates []string) ([]KeywordScore, error) {
	candidates = resolveCandidates(raw, candidates)
	if len(candidates) == 0 {
		s.logger.Debug("no candidates available for scoring")
		return []KeywordScore{}, nil
	}

	st := &scoreState{raw: raw, candidates: candidates}
	for _, strat := range s.strategies {
		out, err := strat.run(ctx, s, st)
		if err != nil {
			return nil, fmt.Errorf("%s scoring failed: %w", strat.name, err)
		}
		if len(out) > 0 {
			s.logger.Debug("keywords scored",
				zap.String("strategy", strat.name),
				zap.Int("count", len(out)))
			return out, nil
		}
	}
	return []KeywordScore{}, nil
}

// resolveCandidates substitutes words of the text when the generator found
// nothing: first the normalized words, then raw lowercase tokens.
func resolveCandidates(raw string, candidates []string) []string {
	if len(candidates) > 0 {
		return candidates
	}
	if words := text.Words(text.Normalize(raw)); len(words) > 0 {
		return words
	}

	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(raw)) {
		if utf8.RuneCountInString(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func (s *Scorer) primaryRanking(ctx context.Context, st *scoreState) ([]relevance.Phrase, error) {
	if st.primaryDone {
		return st.primary, nil
	}
	diversity := s.cfg.Diversity
	phrases, err := s.ranker.Rank(ctx, st.raw, relevance.RankOptions{
		Candidates: st.candidates,
		TopN:       s.cfg.TopN,
		Diversity:  &diversity,
		MinDF:      s.cfg.MinDF,
	})
	if err != nil {
		return nil, err
	}
	st.primary = phrases
	st.primaryDone = true
	return phrases, nil
}

func primaryStrategy(ctx context.Context, s *Scorer, st *scoreState) ([]KeywordScore, error) {
	phrases, err := s.primaryRanking(ctx, st)
	if err != nil {
		return nil, err
	}
	return s.filter(phrases), nil
}

func lowConfidenceStrategy(ctx context.Context, s *Scorer, st *scoreState) ([]KeywordScore, error) {
	phrases, err := s.primaryRanking(ctx, st)
	if err != nil {
		return nil, err
	}
	if len(phrases) == 0 {
		return nil, nil
	}
	s.logger.Debug("no keywords above threshold, keeping low confidence results",
		zap.Float64("threshold", s.cfg.Threshold))
	return toKeywordScores(phrases[:min(s.cfg.LowConfidenceKeep, len(phrases))]), nil
}

func unconstrainedStrategy(ctx context.Context, s *Scorer, st *scoreState) ([]KeywordScore, error) {
	phrases, err := s.ranker.Rank(ctx, st.raw, relevance.RankOptions{
		TopN:  s.cfg.FallbackTopN,
		MinDF: 1,
	})
	if err != nil {
		return nil, err
	}
	return s.filter(phrases), nil
}

// filter keeps phrases scoring strictly above the threshold, capped at
// MaxKeywords.
func (s *Scorer) filter(phrases []relevance.Phrase) []KeywordScore {
	out := make([]KeywordScore, 0, len(phrases))
	for _, p := range phrases {
		if p.Score > s.cfg.Threshold {
			out = append(out, KeywordScore{Keyword: p.Text, Score: p.Score})
		}
		if len(out) == s.cfg.MaxKeywords {
			break
		}
	}
	return out
}

func toKeywordScores(phrases []relevance.Phrase) []KeywordScore {
	out := make([]KeywordScore, len(phrases))
	for i, p := range phrases {
		out[i] = KeywordScore{Keyword: p.Text, Score: p.Score}
	}
	return out
}
