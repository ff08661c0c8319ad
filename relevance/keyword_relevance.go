package relevance

import (
	"github.com/cloudflare/ahocorasick"
)

// KeywordRelevanceFilter finds which of a fixed set of normalized phrases
// occur as whole words in normalized content.
type KeywordRelevanceFilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordRelevanceFilter builds the automaton. Keywords must already be
// normalized (lowercase, single spaced) and unique.
func NewKeywordRelevanceFilter(keywords []string) *KeywordRelevanceFilter {
	// pad with spaces so matches stop at word boundaries
	padded := make([]string, len(keywords))
	for i, k := range keywords {
		padded[i] = " " + k + " "
	}

	return &KeywordRelevanceFilter{
		matcher:  ahocorasick.NewStringMatcher(padded),
		keywords: keywords,
	}
}

// Present returns, per keyword, whether it occurs in content.
func (f *KeywordRelevanceFilter) Present(content string) []bool {
	found := make([]bool, len(f.keywords))
	if content == "" || len(f.keywords) == 0 {
		return found
	}

	for _, idx := range f.matcher.MatchThreadSafe([]byte(" " + content + " ")) {
		found[idx] = true
	}
	return found
}
