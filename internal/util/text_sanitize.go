package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SanitizeText removes NUL bytes and control characters that PDF text
// extractors commonly emit, keeping newlines and tabs.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}

// NormalizeText sanitizes s and composes it to NFC so that characters split
// into base + combining marks by an extractor compare and count as one.
func NormalizeText(s string) string {
	return norm.NFC.String(SanitizeText(s))
}

// TruncateRunes returns the first max characters of s. Shorter strings are
// returned unchanged.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
