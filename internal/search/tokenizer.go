// Package search implements the flow catalog ranking engine: tokenization,
// inverted indices, synonym variants, entity extraction, the multi-signal
// scorer, and response synthesis behind a single Searcher facade.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords are function words dropped during tokenization. German-heavy
// because the catalog and its users are; "from"/"to" survive on purpose so
// the fulltext pass can still see them.
var stopWords = map[string]struct{}{
	"der": {}, "die": {}, "das": {},
	"ein": {}, "eine": {},
	"und": {}, "oder": {},
	"für": {}, "fuer": {},
	"mit": {}, "bei": {},
	"von": {}, "zu": {},
}

// Tokenize normalizes text into an ordered token sequence: lowercase,
// hyphens become spaces, everything that is not a word character or
// whitespace is stripped, then tokens of length <= 2 and stop words are
// dropped. Pure and deterministic; empty input yields an empty sequence.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "-", " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// tokenSet collapses a token sequence into a membership set.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// isWordRune mirrors the \w character class: letters, digits, underscore.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// leadingWord returns the leading run of word characters of s, used when
// capturing system phrases out of directional templates.
func leadingWord(s string) string {
	for i, r := range s {
		if !isWordRune(r) {
			return s[:i]
		}
	}
	return s
}
