// Package locale formats numbers and dates the way Thai official documents print them.
package locale

import (
	"strconv"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const thaiZero = '๐' // U+0E50

var thaiDigits = runes.Map(func(r rune) rune {
	if r >= '0' && r <= '9' {
		return thaiZero + (r - '0')
	}
	return r
})

// LocalizeDigits maps ASCII digits to Thai digit glyphs and leaves every other
// character untouched.
func LocalizeDigits(s string) string {
	out, _, err := transform.String(thaiDigits, s)
	if err != nil {
		return s
	}
	return out
}

// Digits localizes s only when localized is set.
func Digits(s string, localized bool) string {
	if !localized {
		return s
	}
	return LocalizeDigits(s)
}

// Number formats v without trailing zeros ("3", "1.5") and localizes its digits on request.
func Number(v float64, localized bool) string {
	return Digits(strconv.FormatFloat(v, 'f', -1, 64), localized)
}
