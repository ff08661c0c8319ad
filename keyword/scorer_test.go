package keyword

import (
	"context"
	"errors"
	"testing"

	"keyphrase/relevance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRanker struct {
	calls []relevance.RankOptions
	rank  func(opts relevance.RankOptions) ([]relevance.Phrase, error)
}

func (f *fakeRanker) Rank(ctx context.Context, doc string, opts relevance.RankOptions) ([]relevance.Phrase, error) {
	f.calls = append(f.calls, opts)
	return f.rank(opts)
}

func phrases(pairs ...any) []relevance.Phrase {
	out := make([]relevance.Phrase, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, relevance.Phrase{Text: pairs[i].(string), Score: pairs[i+1].(float64)})
	}
	return out
}

func newTestScorer(t *testing.T, r relevance.Ranker) *Scorer {
	t.Helper()
	s, err := NewScorer(r, DefaultScorerConfig(), nil)
	require.NoError(t, err)
	return s
}

func TestNewScorer_NilRanker(t *testing.T) {
	_, err := NewScorer(nil, DefaultScorerConfig(), nil)
	assert.ErrorIs(t, err, ErrRankerRequired)
}

func TestResolveCandidates(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		candidates []string
		want       []string
	}{
		{"given candidates kept", "whatever", []string{"fox"}, []string{"fox"}},
		{"normalized words", "Hello, World! <b>Go</b>", nil, []string{"hello", "world", "go"}},
		{"raw tokens when normalization empties", "!! ??", []string{}, []string{"!!", "??"}},
		{"nothing", "! ?", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveCandidates(tt.raw, tt.candidates))
		})
	}
}

func TestScorer_Primary(t *testing.T) {
	r := &fakeRanker{rank: func(relevance.RankOptions) ([]relevance.Phrase, error) {
		return phrases(
			"brown fox", 0.9, "lazy dog", 0.7, "river", 0.5, "bank", 0.3,
			"jumps", 0.2, "near", 0.1, "the", 0.04,
		), nil
	}}
	s := newTestScorer(t, r)

	got, err := s.Score(context.Background(), "doc", []string{"brown fox"})
	require.NoError(t, err)

	assert.Equal(t, []KeywordScore{
		{"brown fox", 0.9}, {"lazy dog", 0.7}, {"river", 0.5}, {"bank", 0.3}, {"jumps", 0.2},
	}, got)

	require.Len(t, r.calls, 1)
	opts := r.calls[0]
	assert.Equal(t, []string{"brown fox"}, opts.Candidates)
	assert.Equal(t, 10, opts.TopN)
	require.NotNil(t, opts.Diversity)
	assert.InDelta(t, 0.3, *opts.Diversity, 1e-9)
	assert.Equal(t, 1, opts.MinDF)
}

func TestScorer_ThresholdIsExclusive(t *testing.T) {
	r := &fakeRanker{rank: func(relevance.RankOptions) ([]relevance.Phrase, error) {
		return phrases("fox", 0.06, "dog", 0.05), nil
	}}
	got, err := newTestScorer(t, r).Score(context.Background(), "doc", []string{"fox", "dog"})
	require.NoError(t, err)
	assert.Equal(t, []KeywordScore{{"fox", 0.06}}, got)
}

func TestScorer_LowConfidence(t *testing.T) {
	r := &fakeRanker{rank: func(relevance.RankOptions) ([]relevance.Phrase, error) {
		return phrases("fox", 0.04, "dog", 0.03, "bank", 0.01), nil
	}}
	got, err := newTestScorer(t, r).Score(context.Background(), "doc", []string{"fox"})
	require.NoError(t, err)

	assert.Equal(t, []KeywordScore{{"fox", 0.04}, {"dog", 0.03}}, got)
	assert.Len(t, r.calls, 1, "primary ranking is computed once")
}

func TestScorer_Unconstrained(t *testing.T) {
	r := &fakeRanker{rank: func(opts relevance.RankOptions) ([]relevance.Phrase, error) {
		if opts.Candidates != nil {
			return nil, nil
		}
		return phrases("fox", 0.8, "dog", 0.02), nil
	}}
	got, err := newTestScorer(t, r).Score(context.Background(), "doc", []string{"unicorn"})
	require.NoError(t, err)
	assert.Equal(t, []KeywordScore{{"fox", 0.8}}, got)

	require.Len(t, r.calls, 2)
	fallback := r.calls[1]
	assert.Nil(t, fallback.Candidates)
	assert.Nil(t, fallback.Diversity)
	assert.Equal(t, 5, fallback.TopN)
}

func TestScorer_AllTiersEmpty(t *testing.T) {
	r := &fakeRanker{rank: func(relevance.RankOptions) ([]relevance.Phrase, error) {
		return nil, nil
	}}
	got, err := newTestScorer(t, r).Score(context.Background(), "doc", []string{"x"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScorer_NoCandidatesAtAll(t *testing.T) {
	r := &fakeRanker{rank: func(relevance.RankOptions) ([]relevance.Phrase, error) {
		t.Fatal("ranker must not be called")
		return nil, nil
	}}
	got, err := newTestScorer(t, r).Score(context.Background(), "! ?", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScorer_SubstitutesNormalizedWords(t *testing.T) {
	r := &fakeRanker{rank: func(relevance.RankOptions) ([]relevance.Phrase, error) {
		return phrases("info", 0.4), nil
	}}
	_, err := newTestScorer(t, r).Score(context.Background(), "Visit https://example.com for more info!", nil)
	require.NoError(t, err)

	require.NotEmpty(t, r.calls)
	assert.Equal(t, []string{"visit", "for", "more", "info"}, r.calls[0].Candidates)
}

func TestScorer_RankerError(t *testing.T) {
	boom := errors.New("embedding service down")

	t.Run("primary", func(t *testing.T) {
		r := &fakeRanker{rank: func(relevance.RankOptions) ([]relevance.Phrase, error) {
			return nil, boom
		}}
		_, err := newTestScorer(t, r).Score(context.Background(), "doc", []string{"x"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unconstrained", func(t *testing.T) {
		r := &fakeRanker{rank: func(opts relevance.RankOptions) ([]relevance.Phrase, error) {
			if opts.Candidates == nil {
				return nil, boom
			}
			return nil, nil
		}}
		_, err := newTestScorer(t, r).Score(context.Background(), "doc", []string{"x"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestScorer_ResultBound(t *testing.T) {
	r := &fakeRanker{rank: func(opts relevance.RankOptions) ([]relevance.Phrase, error) {
		out := make([]relevance.Phrase, 0, opts.TopN)
		for i := 0; i < opts.TopN; i++ {
			out = append(out, relevance.Phrase{Text: string(rune('a' + i)), Score: 1 - float64(i)*0.05})
		}
		return out, nil
	}}
	got, err := newTestScorer(t, r).Score(context.Background(), "doc", []string{"a"})
	require.NoError(t, err)

	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}
