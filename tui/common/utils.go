package common

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Plural formats n with the singular or plural noun, e.g. "1 review".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// Stars renders a rating as filled and empty stars, clamped to [0, outOf].
func Stars(rating, outOf int) string {
	rating = max(0, min(rating, outOf))
	return strings.Repeat("★", rating) + strings.Repeat("☆", outOf-rating)
}

// Initials returns up to two upper-case initials of a full name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	if n == 0 {
		return "?"
	}
	return b.String()
}
