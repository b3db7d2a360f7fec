package deid

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLength drops initials and short particles that would cause
// rampant over-matching ("a", "Jr", "de").
const minTokenLength = 3

// tokenBlocklist holds words that surface in name candidates but are never
// themselves a person's name: relationship words, honorifics, clinical role
// words, and month names. Compared case-insensitively.
var tokenBlocklist = map[string]struct{}{
	// relationship words
	"relation": {}, "sister": {}, "brother": {}, "mother": {}, "father": {},
	"spouse": {}, "wife": {}, "husband": {}, "son": {}, "daughter": {},
	"partner": {},
	// honorifics
	"mr": {}, "ms": {}, "mrs": {}, "mx": {}, "miss": {},
	// clinical role and field-label words
	"patient": {}, "provider": {}, "heme": {}, "onc": {}, "labs": {},
	"date": {}, "name": {}, "contact": {}, "kin": {}, "poa": {}, "proxy": {},
	// month names
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {},
	"june": {}, "july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {},
}

// TokenSet is the document-scoped set of name words to redact. Tokens keep
// the casing they were discovered with but membership is case-insensitive.
// The set is a plain value threaded through the pipeline; nothing global.
type TokenSet struct {
	tokens map[string]string
}

// NewTokenSet returns an empty token set.
func NewTokenSet() TokenSet {
	return TokenSet{tokens: make(map[string]string)}
}

// Add inserts a token. The first-discovered casing wins.
func (s TokenSet) Add(token string) {
	key := strings.ToLower(token)
	if _, ok := s.tokens[key]; !ok {
		s.tokens[key] = token
	}
}

// Contains reports case-insensitive membership.
func (s TokenSet) Contains(token string) bool {
	_, ok := s.tokens[strings.ToLower(token)]
	return ok
}

// Len returns the number of distinct tokens.
func (s TokenSet) Len() int {
	return len(s.tokens)
}

// Tokens returns the tokens sorted longest-first (ties broken
// lexicographically), the order the scrubber consumes them in.
func (s TokenSet) Tokens() []string {
	out := make([]string, 0, len(s.tokens))
	for _, tok := range s.tokens {
		out = append(out, tok)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func isTokenSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// normalizeToken strips every rune that is not a letter or hyphen.
func normalizeToken(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || r == '-' {
			return r
		}
		return -1
	}, word)
}

// ExtractTokens turns raw name candidates into the canonical redaction
// token set: split on whitespace and commas, keep only letters and hyphens,
// drop short tokens and blocklisted words, union the rest. Pure and
// idempotent: the same candidates always yield the same set.
func ExtractTokens(candidates []string) TokenSet {
	set := NewTokenSet()
	for _, candidate := range candidates {
		for _, word := range strings.FieldsFunc(candidate, isTokenSeparator) {
			token := normalizeToken(word)
			if utf8.RuneCountInString(token) < minTokenLength {
				continue
			}
			if _, blocked := tokenBlocklist[strings.ToLower(token)]; blocked {
				continue
			}
			set.Add(token)
		}
	}
	return set
}
