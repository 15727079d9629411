package nap

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// addressAbbreviations maps long street/directional/unit terms to their USPS
// style short forms. Order matters only for readability; every pattern is
// anchored on word boundaries so compounds like "northeast" are never touched
// by the "north" rule.
var addressAbbreviations = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bstreet\b`), "st"},
	{regexp.MustCompile(`\broad\b`), "rd"},
	{regexp.MustCompile(`\bavenue\b`), "ave"},
	{regexp.MustCompile(`\bboulevard\b`), "blvd"},
	{regexp.MustCompile(`\bdrive\b`), "dr"},
	{regexp.MustCompile(`\blane\b`), "ln"},
	{regexp.MustCompile(`\bcourt\b`), "ct"},
	{regexp.MustCompile(`\bplace\b`), "pl"},
	{regexp.MustCompile(`\bcircle\b`), "cir"},
	{regexp.MustCompile(`\bhighway\b`), "hwy"},
	{regexp.MustCompile(`\bparkway\b`), "pkwy"},
	{regexp.MustCompile(`\bterrace\b`), "ter"},
	{regexp.MustCompile(`\bsuite\b`), "ste"},
	{regexp.MustCompile(`\bapartment\b`), "apt"},
	{regexp.MustCompile(`\bbuilding\b`), "bldg"},
	{regexp.MustCompile(`\bfloor\b`), "fl"},
	{regexp.MustCompile(`\bnortheast\b`), "ne"},
	{regexp.MustCompile(`\bnorthwest\b`), "nw"},
	{regexp.MustCompile(`\bsoutheast\b`), "se"},
	{regexp.MustCompile(`\bsouthwest\b`), "sw"},
	{regexp.MustCompile(`\bnorth\b`), "n"},
	{regexp.MustCompile(`\bsouth\b`), "s"},
	{regexp.MustCompile(`\beast\b`), "e"},
	{regexp.MustCompile(`\bwest\b`), "w"},
}

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizeName canonicalizes a business name for comparison: lowercase,
// trimmed, internal whitespace collapsed. Punctuation is kept on purpose so
// that genuinely distinct names ("Joe's" vs "Joes") still cost an edit.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return whitespaceRe.ReplaceAllString(name, " ")
}

// NormalizeAddress canonicalizes an address: lowercase, trimmed, whitespace
// collapsed, then the abbreviation table applied on whole words.
func NormalizeAddress(address string) string {
	address = strings.ToLower(strings.TrimSpace(address))
	address = whitespaceRe.ReplaceAllString(address, " ")
	for _, abbr := range addressAbbreviations {
		address = abbr.pattern.ReplaceAllString(address, abbr.replacement)
	}
	return address
}

// NormalizePhone strips every non-digit character. Country codes are kept
// verbatim: "+1-555-123-4567" normalizes to 11 digits while "555-123-4567"
// normalizes to 10, so the two compare as different numbers. That gap is
// deliberate; canonicalizing country codes would guess at intent.
func NormalizePhone(phone string) string {
	return nonDigitRe.ReplaceAllString(phone, "")
}

// NormalizeRecord returns a normalized copy of a record. The input is never
// mutated; absent fields normalize to empty strings.
func NormalizeRecord(r Record) Record {
	return Record{
		Name:    NormalizeName(r.Name),
		Address: NormalizeAddress(r.Address),
		Phone:   NormalizePhone(r.Phone),
	}
}

// FormatPhone renders a digit string for display: 10-digit numbers become
// "(XXX) XXX-XXXX", anything else is returned as bare digits.
func FormatPhone(phone string) string {
	digits := NormalizePhone(phone)
	if len(digits) == 10 {
		return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:10]
	}
	return digits
}
