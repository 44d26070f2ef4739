// Package textutil holds small string helpers shared by the schedule
// builder and its outputs.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// latinAccents is the combining diacritical marks block. Marks outside it
// (kana voicing, Indic vowel signs) change the letter and are kept.
var latinAccents = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// Slugify turns a session title into a slug: accents are stripped, letters
// lowercased, runs of anything else collapse to a single hyphen.
// "Café & Go: Concurrency!" becomes "cafe-go-concurrency". Letters of any
// script are kept, so "Привет мир" becomes "привет-мир".
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(latinAccents), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}
	folded = lower.String(folded)

	var b strings.Builder
	pendingDash := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsMark(r) && !pendingDash && b.Len() > 0:
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// Apostrophes vanish: "what's" -> "whats".
		default:
			pendingDash = true
		}
	}
	return b.String()
}
