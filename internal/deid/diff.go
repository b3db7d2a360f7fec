package deid

import "strings"

// SegmentKind marks whether a diff segment survived redaction untouched.
type SegmentKind string

const (
	SegmentSame    SegmentKind = "same"
	SegmentChanged SegmentKind = "changed"
)

// Segment is one run of words in the redacted text, for the review view.
// Segments are a presentation artifact: joining them with single spaces
// reconstructs the redacted text up to whitespace, never the original.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// Diff aligns original and redacted text for highlighting. This is a
// marker-based heuristic, not an LCS diff: the pipeline only ever performs
// whole-token replacements, so any whitespace-delimited word carrying a
// placeholder is a changed run and everything else is unchanged. Original
// whitespace is not preserved across segment boundaries.
func Diff(original, redacted string) []Segment {
	if original == redacted {
		if redacted == "" {
			return nil
		}
		return []Segment{{Kind: SegmentSame, Text: redacted}}
	}

	var segments []Segment
	for _, word := range strings.Fields(redacted) {
		kind := SegmentSame
		if placeholderRe.MatchString(word) {
			kind = SegmentChanged
		}
		if n := len(segments); n > 0 && segments[n-1].Kind == kind {
			segments[n-1].Text += " " + word
			continue
		}
		segments = append(segments, Segment{Kind: kind, Text: word})
	}
	return segments
}
