package journey

import (
	"strings"
	"unicode"
)

// emojiRanges are the pictographic code point ranges stripped from user
// text before classification and extraction.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F680, 0x1F6FF}, // transport & map
	{0x1F1E0, 0x1F1FF}, // regional indicators
}

// StripEmoji removes the pictographic ranges from s.
func StripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		for _, rg := range emojiRanges {
			if r >= rg[0] && r <= rg[1] {
				return -1
			}
		}
		return r
	}, s)
}

// normalizeGreeting lower-cases s, drops punctuation and trims, yielding
// the form compared against the greeting set.
func normalizeGreeting(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// isGreeting reports whether s normalizes to one of the configured generic
// greetings.
func (c Config) isGreeting(s string) bool {
	n := normalizeGreeting(s)
	for _, g := range c.Greetings {
		if n == g {
			return true
		}
	}
	return false
}
