// Package redact masks national ID, PAN and mobile numbers in free text.
package redact

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/nirnay/internal/util"
)

// Replacement strings. Each is stable under a second pass.
const (
	AadhaarMask = "XXXX XXXX XXXX"
	PANMask     = "XXXXX9999X"
	MobileMask  = "XXXXXXXXXX"
)

// pattern is a regexp that only counts when bounded by word boundaries.
// RE2 has no Unicode \b, so the boundary is checked by hand.
type pattern struct {
	name string
	re   *regexp.Regexp
	mask string
}

var patterns = []pattern{
	{name: "aadhaar", re: regexp.MustCompile(`[0-9०-९]{4}\s?[0-9०-९]{4}\s?[0-9०-९]{4}`), mask: AadhaarMask},
	{name: "pan", re: regexp.MustCompile(`[A-Z]{5}[0-9०-९]{4}[A-Z]`), mask: PANMask},
	{name: "mobile", re: regexp.MustCompile(`[6-9][0-9०-९]{9}`), mask: MobileMask},
}

// Text masks every bounded match, applying the ID, PAN and mobile
// patterns in that order. Text outside matches is unchanged.
func Text(s string) string {
	for _, p := range patterns {
		s = p.replace(s)
	}
	return s
}

// Count reports how many matches each pattern would mask.
func Count(s string) map[string]int {
	counts := make(map[string]int, len(patterns))
	for _, p := range patterns {
		counts[p.name] = len(p.matches(s))
		s = p.replace(s)
	}
	return counts
}

// Preview returns the first n runes of s, masked when sensitive is set.
// Truncation happens first so the preview never exceeds n runes.
func Preview(s string, n int, sensitive bool) string {
	s = util.TruncateRunes(s, n)
	if sensitive {
		s = Text(s)
	}
	return s
}

func (p pattern) replace(s string) string {
	locs := p.matches(s)
	if len(locs) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		b.WriteString(s[last:loc[0]])
		b.WriteString(p.mask)
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// matches returns non-overlapping byte ranges of bounded matches.
func (p pattern) matches(s string) [][2]int {
	var out [][2]int
	pos := 0
	for pos < len(s) {
		loc := p.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if bounded(s, start, end) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return out
}

// bounded reports whether s[start:end] has no word character on either side.
func bounded(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWord(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWord(r) {
			return false
		}
	}
	return true
}

// isWord treats letters, digits, combining marks and underscore as word
// characters, so Devanagari vowel signs do not split a word.
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
