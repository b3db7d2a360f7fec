// Package deid implements the PHI de-identification pipeline: a
// deterministic, rule-based text transformer that scrubs free-text clinical
// notes before they reach any text-generation backend.
//
// Every stage is a pure, total function over arbitrary input; there is no
// error taxonomy, no I/O, and no shared state, so independent documents can
// be processed in parallel without coordination. Within one document the
// stage order is fixed: hard identifiers first, then name discovery against
// the hard-scrubbed text, then the global token pass over every field.
//
// Where a pattern is ambiguous the pipeline over-redacts. Missed PHI is the
// failure mode that matters; a scrubbed lab value is not.
package deid

import "strings"

// Result is the outcome of de-identifying one note.
type Result struct {
	// Note carries the redacted title and text with the caller's ID and
	// kind untouched.
	Note Note `json:"note"`
	// Segments is the highlight view of the redacted body text.
	Segments []Segment `json:"segments,omitempty"`
	// TokenCount is the size of the discovered name token set.
	TokenCount int `json:"token_count"`
}

// Deidentify runs the full pipeline over one note. Name candidates are
// gathered from both title and body and merged into a single token set,
// which is then applied to both fields: a name discovered in the title must
// not survive in the body, and vice versa.
//
// Re-running Deidentify on its own output is a no-op; placeholders are
// never re-matched as PHI.
func Deidentify(note Note) Result {
	title := ScrubHardIdentifiers(note.Title)
	text := ScrubHardIdentifiers(note.Text)

	candidates := FindNameCandidates(title)
	candidates = append(candidates, FindNameCandidates(text)...)
	tokens := ExtractTokens(candidates)

	redacted := note
	redacted.Title = ScrubTokens(title, tokens)
	redacted.Text = ScrubTokens(text, tokens)

	return Result{
		Note:       redacted,
		Segments:   Diff(note.Text, redacted.Text),
		TokenCount: tokens.Len(),
	}
}

// DeidentifyAll maps Deidentify over a note collection. Notes are
// independent; token sets never cross document boundaries.
func DeidentifyAll(notes []Note) []Result {
	results := make([]Result, len(notes))
	for i, note := range notes {
		results[i] = Deidentify(note)
	}
	return results
}

// CountPlaceholders tallies emitted placeholders per category, for
// observability. Only the closed vocabulary is counted.
func CountPlaceholders(text string) map[Category]int {
	counts := make(map[Category]int)
	for _, c := range Categories() {
		if n := strings.Count(text, c.Placeholder()); n > 0 {
			counts[c] = n
		}
	}
	return counts
}
