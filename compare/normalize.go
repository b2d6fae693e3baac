package compare

import (
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	punctuation = regexp.MustCompile(`[.,;:!?()"]`)
	nonDigit    = regexp.MustCompile(`\D`)
)

// NormalizeText removes the characters . , ; : ! ? ( ) and ", lowercases
// the rest, collapses whitespace runs to a single space and trims it.
// Applying it twice gives the same result as applying it once.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = punctuation.ReplaceAllString(strings.ToLower(s), "")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// NormalizePhone reduces s to its digits. An 11-digit number starting with
// the US country code 1 loses the leading 1.
func NormalizePhone(s string) string {
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	return digits
}

// NormalizeWebsite canonicalizes a website for identity comparison:
// scheme, leading "www." and trailing slashes are dropped and the rest is
// normalized with NormalizeText.
func NormalizeWebsite(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimRight(NormalizeText(s), "/")
}
