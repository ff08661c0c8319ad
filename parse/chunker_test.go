package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tagged(pairs ...string) []Token {
	tokens := make([]Token, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		tokens = append(tokens, Token{Text: pairs[i], Tag: pairs[i+1]})
	}
	return tokens
}

func chunkTexts(chunks []Chunk) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Text)
	}
	return out
}

func TestNounChunks(t *testing.T) {
	testCases := []struct {
		name     string
		tokens   []Token
		expected []string
	}{
		{
			name: "Sentence",
			tokens: tagged(
				"The", "DT", "quick", "JJ", "brown", "JJ", "fox", "NN", "jumps", "VBZ",
				"over", "IN", "the", "DT", "lazy", "JJ", "dog", "NN", "near", "IN",
				"the", "DT", "river", "NN", "bank", "NN", ".", ".",
			),
			expected: []string{"The quick brown fox", "the lazy dog", "the river bank"},
		},
		{
			name:     "Possessive",
			tokens:   tagged("the", "DT", "dog", "NN", "'s", "POS", "big", "JJ", "bone", "NN"),
			expected: []string{"the dog's big bone"},
		},
		{
			name:     "DeterminerAfterNounSplits",
			tokens:   tagged("gave", "VBD", "the", "DT", "dog", "NN", "a", "DT", "bone", "NN"),
			expected: []string{"the dog", "a bone"},
		},
		{
			name:     "Pronouns",
			tokens:   tagged("I", "PRP", "like", "VBP", "Go", "NNP"),
			expected: []string{"I", "Go"},
		},
		{
			name:     "TrailingModifiersDropped",
			tokens:   tagged("the", "DT", "very", "RB", "big", "JJ"),
			expected: nil,
		},
		{
			name:     "CoarseTags",
			tokens:   tagged("a", "DET", "green", "ADJ", "Apple", "PROPN", "runs", "VERB"),
			expected: []string{"a green Apple"},
		},
		{
			name:     "Empty",
			tokens:   nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NounChunks(tc.tokens)
			if tc.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.expected, chunkTexts(got))
		})
	}
}

func TestIsNounTag(t *testing.T) {
	for _, tag := range []string{"NN", "NNS", "NNP", "NNPS", "NOUN", "PROPN"} {
		assert.True(t, IsNounTag(tag), tag)
	}
	for _, tag := range []string{"JJ", "VB", "PRP", "DT", ""} {
		assert.False(t, IsNounTag(tag), tag)
	}
}
