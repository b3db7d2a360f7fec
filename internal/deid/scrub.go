package deid

import (
	"regexp"
	"strings"
)

// honorificNetRe blindly redacts any capitalized word that follows an
// honorific, whether or not the word made it into the token set. Safety net
// for names the candidate extractors missed.
var honorificNetRe = regexp.MustCompile(`\b(Mr|Ms|Mrs|Mx|Miss)(\.?)\s+[A-Z][A-Za-z'\-]+`)

// providerPrefixRe recognizes the clinician markers that exempt the
// following word from token redaction.
var providerPrefixRe = regexp.MustCompile(`(?i)^(?:Dr\.?|Doctor)\s`)

// tokenPattern builds one combined alternation over the token set, longest
// token first. A single pass avoids the trap where an earlier short-token
// pass corrupts a longer token it is a substring of. The optional leading
// group captures a Dr./Doctor prefix so the exemption can be applied per
// match.
func tokenPattern(tokens []string) *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(`(?i)((?:Dr\.?|Doctor)\s+)?\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ScrubTokens applies the document's token set to text: first the blind
// honorific net, then a case-insensitive whole-word pass over every token.
// Occurrences preceded by "Dr." or "Doctor" survive; clinician names are
// not PHI under policy even when they collide with a patient name token.
//
// Title and body of one document must both go through this with the same
// token set; scrubbing only one field leaks through the other.
func ScrubTokens(text string, tokens TokenSet) string {
	text = honorificNetRe.ReplaceAllString(text, "${1}${2} "+CategoryName.Placeholder())

	sorted := tokens.Tokens()
	if len(sorted) == 0 {
		return text
	}
	return tokenPattern(sorted).ReplaceAllStringFunc(text, func(match string) string {
		if providerPrefixRe.MatchString(match) {
			return match
		}
		return CategoryName.Placeholder()
	})
}
