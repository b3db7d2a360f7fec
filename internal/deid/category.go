package deid

import "regexp"

// Category classifies a redaction. The set is closed: every placeholder
// emitted by this package carries exactly one of these tags, and downstream
// prompt-assembly code matches them verbatim.
type Category string

const (
	CategoryEmail   Category = "EMAIL"
	CategoryURL     Category = "URL"
	CategoryPhone   Category = "PHONE"
	CategoryID      Category = "ID"
	CategoryDOBLine Category = "DOB_LINE"
	CategoryAddress Category = "ADDRESS"
	CategoryName    Category = "NAME"
)

// Categories returns the full closed tag set in a stable order.
func Categories() []Category {
	return []Category{
		CategoryEmail,
		CategoryURL,
		CategoryPhone,
		CategoryID,
		CategoryDOBLine,
		CategoryAddress,
		CategoryName,
	}
}

// Placeholder renders the replacement string for this category,
// e.g. "[REDACTED_EMAIL]".
func (c Category) Placeholder() string {
	return "[REDACTED_" + string(c) + "]"
}

// placeholderRe matches any string of placeholder shape, including ad hoc
// ones that would violate the closed vocabulary. Valid placeholders never
// contain digits or '@', so no scanner rule can re-match one.
var placeholderRe = regexp.MustCompile(`\[REDACTED_[A-Z]+(?:_[A-Z]+)*\]`)

// ValidPlaceholder reports whether s is the placeholder of a known category.
func ValidPlaceholder(s string) bool {
	for _, c := range Categories() {
		if s == c.Placeholder() {
			return true
		}
	}
	return false
}

// ContainsPlaceholder reports whether text contains any placeholder-shaped
// substring.
func ContainsPlaceholder(text string) bool {
	return placeholderRe.MatchString(text)
}
