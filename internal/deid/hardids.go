package deid

import "regexp"

// hardRule pairs a compiled pattern with the category it redacts and the
// replacement template to emit. Rules form an ordered table: later rules
// must never re-match placeholders or fragments produced by earlier ones.
type hardRule struct {
	category Category
	re       *regexp.Regexp
	replace  string
}

// hardRules is the ordered scanner table for structurally recognizable
// identifiers. Order matters: phone before SSN-shaped numbers, labeled
// identifiers before bare digit runs, digit runs before DOB lines.
var hardRules = []hardRule{
	{
		CategoryEmail,
		regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
		CategoryEmail.Placeholder(),
	},
	{
		CategoryURL,
		regexp.MustCompile(`https?://[^\s]+`),
		CategoryURL.Placeholder(),
	},
	{
		CategoryPhone,
		regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		CategoryPhone.Placeholder(),
	},
	{
		CategoryID,
		regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		CategoryID.Placeholder(),
	},
	{
		CategoryID,
		regexp.MustCompile(`(?i)\b((?:MRN|Medical\s+Record(?:\s+(?:Number|No\.?))?|Chart\s+(?:Number|No\.?|#)|Account\s+(?:Number|No\.?|#))\s*[:#]?\s*)([A-Za-z]*\d[A-Za-z0-9\-]*)`),
		"${1}" + CategoryID.Placeholder(),
	},
	{
		// Unlabeled MRN / account number net. Intentionally broad: a 7-10
		// digit lab value is redacted too, which is the safe failure mode.
		CategoryID,
		regexp.MustCompile(`\b\d{7,10}\b`),
		CategoryID.Placeholder(),
	},
	{
		// Free text after a DOB label is unpredictable, so the rest of the
		// line goes, not just the date token.
		CategoryDOBLine,
		regexp.MustCompile(`(?i)\b(?:DOB|Date\s+of\s+Birth|Birthdate)\b[^\n]*`),
		CategoryDOBLine.Placeholder(),
	},
	{
		CategoryAddress,
		regexp.MustCompile(`\b\d{1,6}\s+(?:[A-Za-z]+\s+){1,3}(?:St|Street|Ave|Avenue|Rd|Road|Blvd|Boulevard|Dr|Drive|Ln|Lane|Ct|Court|Way|Pl|Place|Ter|Terrace)\.?\b`),
		CategoryAddress.Placeholder(),
	},
}

// safetyNetRuleCount excludes the trailing address rule; repeating the
// address pass server-side is not required.
const safetyNetRuleCount = 7

func applyHardRules(text string, rules []hardRule) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.replace)
	}
	return text
}

// ScrubHardIdentifiers replaces structurally recognizable identifiers
// (emails, URLs, phone numbers, SSN-shaped numbers, MRNs, long digit runs,
// DOB lines, street addresses) with category placeholders. Total over any
// input; text with no identifiers passes through unchanged. Generic dates,
// clinical timelines, and provider names are left alone.
func ScrubHardIdentifiers(text string) string {
	return applyHardRules(text, hardRules)
}

// ScanServerSafetyNet re-runs the hard identifier rules (minus the address
// pass) after a document crosses the trust boundary. It performs no name
// detection: server-side there is no reliable way to tell an unredacted
// name from clinical prose, and name discovery is expected to have happened
// against the original document before transmission.
func ScanServerSafetyNet(text string) string {
	return applyHardRules(text, hardRules[:safetyNetRuleCount])
}
