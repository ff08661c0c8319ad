package relevance

import "context"

// Phrase is a ranked phrase and its similarity to the document.
type Phrase struct {
	Text  string
	Score float64
}

// RankOptions controls one ranking call.
type RankOptions struct {
	// Candidates restricts the vocabulary. Nil means every word of the
	// document is eligible.
	Candidates []string
	// TopN is the maximum number of phrases returned.
	TopN int
	// Diversity enables maximal marginal relevance re-ranking when set.
	Diversity *float64
	// MinDF is the minimum number of documents a candidate must occur in.
	MinDF int
}

// Ranker scores phrases by semantic similarity to a document, highest first.
type Ranker interface {
	Rank(ctx context.Context, doc string, opts RankOptions) ([]Phrase, error)
}
