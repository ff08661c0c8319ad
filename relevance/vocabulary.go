package relevance

import (
	"regexp"
	"strings"

	"keyphrase/text"

	"github.com/kljensen/snowball"
)

// words of two or more letters, digits or underscores
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// candidateVocabulary normalizes and deduplicates candidates and keeps those
// occurring in the document in at least minDF documents. There is only ever
// one document, so minDF above one leaves nothing.
func candidateVocabulary(doc string, candidates []string, minDF int) []string {
	if minDF > 1 {
		return nil
	}

	seen := make(map[string]bool, len(candidates))
	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		k := text.Normalize(c)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}

	present := NewKeywordRelevanceFilter(keys).Present(text.Normalize(doc))

	words := keys[:0]
	for i, k := range keys {
		if present[i] {
			words = append(words, k)
		}
	}
	return words
}

// documentVocabulary lists the distinct non-stopword tokens of doc in order of
// first appearance. With stem set, inflected variants collapse onto the first
// surface form seen ("rivers" after "river" is dropped).
func documentVocabulary(doc string, stem bool) []string {
	var words []string
	seen := make(map[string]bool)

	for _, tok := range tokenPattern.FindAllString(strings.ToLower(doc), -1) {
		if text.IsStopword(tok) {
			continue
		}
		key := tok
		if stem {
			if s, err := snowball.Stem(tok, "english", true); err == nil && s != "" {
				key = s
			}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, tok)
	}
	return words
}
