package deid

import (
	"regexp"
	"strings"
)

// nameExtractor is one independent heuristic for spotting likely person
// names in already hard-scrubbed text. Each extractor owns its pattern and
// an optional post-filter; extractors never see each other's output.
type nameExtractor struct {
	label string
	re    *regexp.Regexp
	group int
	skip  func(candidate string) bool
}

// capWord is a single capitalized word, allowing apostrophes and hyphens
// (O'Brien, Smith-Jones).
const capWord = `[A-Z][A-Za-z'\-]+`

// genericFieldValues are placeholder values that show up after name-ish
// labels but are never names themselves.
var genericFieldValues = map[string]struct{}{
	"none":     {},
	"tbd":      {},
	"same":     {},
	"call":     {},
	"unknown":  {},
	"declined": {},
	"sister":   {},
	"brother":  {},
	"mother":   {},
	"father":   {},
	"spouse":   {},
	"wife":     {},
	"husband":  {},
	"son":      {},
	"daughter": {},
	"partner":  {},
}

func isGenericFieldValue(candidate string) bool {
	first := candidate
	if i := strings.IndexAny(first, " ,"); i >= 0 {
		first = first[:i]
	}
	_, ok := genericFieldValues[strings.ToLower(first)]
	return ok
}

// nameExtractors is the full heuristic set. A candidate may be produced by
// more than one extractor; deduplication happens during tokenization.
var nameExtractors = []nameExtractor{
	{
		// Labeled fields: "Patient: John Smith", "Kin - Smith, Jane".
		label: "labeled_field",
		re:    regexp.MustCompile(`\b(?:Name|Patient|Pt|Contact|Kin|POA|Proxy|Provider)\s*[:\-#]\s*(` + capWord + `(?:,?\s+` + capWord + `){0,3})`),
		group: 1,
		skip:  isGenericFieldValue,
	},
	{
		// Relational labels: "Sister: Maria", "husband Robert". The name
		// joins the document-wide token set so unlabeled recurrences of it
		// elsewhere in the note are scrubbed too.
		label: "relational",
		re:    regexp.MustCompile(`\b(?:Relation|Sister|Brother|Mother|Father|Spouse|Wife|Husband|Son|Daughter|Partner)\s*[:\-]?\s+(` + capWord + `(?:\s+` + capWord + `){0,2})`),
		group: 1,
	},
	{
		// Narrative openers: "Smith is a 54-year-old", "Smith, a 54 year old".
		label: "narrative",
		re:    regexp.MustCompile(`\b((?:` + capWord + `\s+){0,2}` + capWord + `)(?:\s+is\s+a|,\s+a)\s+\d{1,3}[\s\-]*year[\s\-]*old`),
		group: 1,
	},
	{
		// Honorifics: "Mr. Jones", "Mrs Smith".
		label: "honorific",
		re:    regexp.MustCompile(`\b(?:Mr|Ms|Mrs|Mx|Miss)\.?\s+(` + capWord + `)`),
		group: 1,
	},
}

// FindNameCandidates runs every extractor over hard-scrubbed text and
// concatenates the raw candidate strings. Output order is not significant
// and duplicates are expected; downstream treats the result as a set.
func FindNameCandidates(text string) []string {
	var candidates []string
	for _, ex := range nameExtractors {
		for _, m := range ex.re.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(m[ex.group])
			if candidate == "" {
				continue
			}
			if ex.skip != nil && ex.skip(candidate) {
				continue
			}
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}
