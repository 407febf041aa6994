package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeWord prepares a word for duplicate comparison: trims surrounding
// whitespace, lowercases, and compresses internal runs of spaces into one.
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeWord(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slugify derives the canonical identifier for a word: lowercase, whitespace
// replaced with hyphens, everything outside [a-z0-9-] dropped, runs of
// hyphens collapsed, and no leading or trailing hyphens. Applying Slugify to
// its own output yields the same string.
//
// Words with no ASCII-representable form (for example an untranslated
// Georgian word) slugify to the empty string; callers must treat that as
// unpromotable.
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(text))
	prevHyphen := false
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if b.Len() == 0 || prevHyphen {
				continue
			}
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Capitalize upper-cases the first rune of s for display consistency.
// Every translation shown to operators is stored capitalized.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
