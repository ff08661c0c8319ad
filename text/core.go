package text

import (
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern     = regexp.MustCompile(`<.*?>`)
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Z}-]`)
)

// Normalize lowercases text and strips URLs, HTML tags and punctuation (hyphens
// and underscores survive), then collapses whitespace to single spaces.
// It never fails; empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}

// Words splits normalized text on whitespace.
func Words(text string) []string {
	return strings.Fields(Normalize(text))
}
