package deid

import "strings"

// bannedFieldNames are structured keys that carry identifiers by
// construction. Matched case-insensitively at any nesting depth.
var bannedFieldNames = map[string]struct{}{
	"name":          {},
	"fullname":      {},
	"firstname":     {},
	"lastname":      {},
	"dob":           {},
	"dateofbirth":   {},
	"mrn":           {},
	"ssn":           {},
	"address":       {},
	"phone":         {},
	"email":         {},
	"accountnumber": {},
}

// ScrubFields removes banned keys from a decoded JSON value, recursing
// through objects and arrays. This is a structural pass, not a textual one:
// banned entries are dropped outright, their values are not redacted in
// place. The input is not mutated; scalars come back as-is.
func ScrubFields(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, child := range val {
			if _, banned := bannedFieldNames[strings.ToLower(key)]; banned {
				continue
			}
			out[key] = ScrubFields(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ScrubFields(child)
		}
		return out
	default:
		return v
	}
}
