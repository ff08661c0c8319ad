package parse

import "strings"

var nounTags = map[string]bool{
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
	"NOUN": true, "PROPN": true,
}

// pre-nominal modifiers that may open or extend a noun phrase
var modifierTags = map[string]bool{
	"DT": true, "PDT": true, "PRP$": true, "WP$": true, "CD": true,
	"JJ": true, "JJR": true, "JJS": true,
	"DET": true, "NUM": true, "ADJ": true,
}

var pronounTags = map[string]bool{"PRP": true, "PRON": true}

// IsNounTag reports whether tag marks a common or proper noun.
func IsNounTag(tag string) bool {
	return nounTags[tag]
}

// NounChunks groups tagged tokens into base noun phrases: an optional run of
// determiners, possessives, numbers and adjectives followed by one or more
// nouns, with possessive markers kept inside ("the dog's bone"). Personal
// pronouns form chunks of their own.
func NounChunks(tokens []Token) []Chunk {
	var chunks []Chunk
	var current []Token
	lastNoun := -1

	flush := func() {
		if lastNoun >= 0 {
			chunks = append(chunks, Chunk{Text: joinTokens(current[:lastNoun+1])})
		}
		current = current[:0]
		lastNoun = -1
	}

	for _, tok := range tokens {
		switch {
		case IsNounTag(tok.Tag):
			current = append(current, tok)
			lastNoun = len(current) - 1
		case tok.Tag == "POS" && lastNoun >= 0:
			current = append(current, tok)
		case modifierTags[tok.Tag]:
			// a modifier after the head noun starts the next phrase,
			// unless it follows a possessive marker
			if lastNoun >= 0 && current[len(current)-1].Tag != "POS" {
				flush()
			}
			current = append(current, tok)
		case pronounTags[tok.Tag]:
			flush()
			chunks = append(chunks, Chunk{Text: tok.Text})
		default:
			flush()
		}
	}
	flush()

	return chunks
}

func joinTokens(tokens []Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && tok.Tag != "POS" {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
