package keyword

import "context"

// KeywordScore is an extracted keyword and its relevance to the source text.
type KeywordScore struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// KeywordExtractor defines the interface for extracting ranked keywords from text
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string) ([]KeywordScore, error)
}
