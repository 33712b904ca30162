// internal/textnorm/textnorm.go
//
// Text normalization shared by the dictionary and the profanity filter.
// Responsibilities:
//   - Strip diacritics: NFD decomposition, drop nonspacing marks (Mn), recompose.
//   - Character class checks used by the games (alphabetic, decimal digits).
//
// Notes:
//   - Normalize does not change case; callers lower-case first.
//   - Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).

package textnorm

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks returns a fresh transformer; transform.Chain values carry state
// and must not be shared between goroutines.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Normalize removes all combining nonspacing marks from s.
// "Příliš žluťoučký kůň" → "Prilis zlutoucky kun".
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks(), s)
	if err != nil {
		// transform only fails on invalid internal state; fall back to a rune walk.
		return removeMarks(norm.NFD.String(s))
	}
	return out
}

func removeMarks(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.Is(unicode.Mn, r) {
			out = append(out, r)
		}
	}
	return norm.NFC.String(string(out))
}

// IsAlpha reports whether s is non-empty and every rune is a Unicode letter.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsDigits reports whether s is non-empty and consists only of ASCII 0–9.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FirstRune returns the first rune of s, or false if s is empty.
func FirstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// LastRune returns the last rune of s, or false if s is empty.
func LastRune(s string) (rune, bool) {
	rs := []rune(s)
	if len(rs) == 0 {
		return 0, false
	}
	return rs[len(rs)-1], true
}
