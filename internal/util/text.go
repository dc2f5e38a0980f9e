package util

import (
	"strings"
	"unicode/utf8"
)

// SplitLines splits on \n, \r\n and \r and drops the empty tail left by a
// trailing line break, so "a\nb\n" gives ["a", "b"].
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n < 0 {
		return s
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Dedupe removes exact duplicates, keeping first occurrences in order.
func Dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// NonEmptyLines returns the trimmed, non-blank lines of s, at most max
// of them (max <= 0 means no limit).
func NonEmptyLines(s string, max int) []string {
	out := []string{}
	for _, ln := range SplitLines(s) {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		out = append(out, ln)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// Or returns the first non-empty value.
func Or(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
