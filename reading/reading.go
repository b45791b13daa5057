// Package reading converts conversion keys into the reading strings shown by
// legacy Windows input method APIs.
//
// A reading is the key in half-width katakana, limited to characters that
// exist in the Japanese Windows code page (Shift-JIS). Characters without a
// Shift-JIS mapping are replaced with '?' the way the code page conversion
// does, after the code page's best-fit substitutions (WAVE DASH to FULLWIDTH
// TILDE and the like) have been applied.
package reading

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxReadingBytes is the Shift-JIS size at which a reading is dropped.
const MaxReadingBytes = 512

const (
	hiraganaFirst  = 'ぁ'
	hiraganaLast   = 'ゖ'
	katakanaOffset = 0x60

	katakanaBlockFirst = '゠'
	katakanaBlockLast  = 'ヿ'

	halfwidthVoicedMark     = 'ﾞ'
	halfwidthSemiVoicedMark = 'ﾟ'
)

// cp932BestFit maps characters that strict Shift-JIS lacks to the code page
// 932 characters Windows substitutes for them.
var cp932BestFit = map[rune]rune{
	'\u301C': '\uFF5E', // WAVE DASH -> FULLWIDTH TILDE
	'\u2212': '\uFF0D', // MINUS SIGN -> FULLWIDTH HYPHEN-MINUS
	'\u2016': '\u2225', // DOUBLE VERTICAL LINE -> PARALLEL TO
	'\u00A2': '\uFFE0', // CENT SIGN -> FULLWIDTH CENT SIGN
	'\u00A3': '\uFFE1', // POUND SIGN -> FULLWIDTH POUND SIGN
	'\u00AC': '\uFFE2', // NOT SIGN -> FULLWIDTH NOT SIGN
}

// HiraganaToKatakana converts every hiragana letter and iteration mark in s
// to katakana. Other characters are copied unchanged.
func HiraganaToKatakana(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r >= hiraganaFirst && r <= hiraganaLast:
			r += katakanaOffset
		case r == 'ゝ':
			r = 'ヽ'
		case r == 'ゞ':
			r = 'ヾ'
		}
		b.WriteRune(r)
	}

	return b.String()
}

// KeyToReading returns the half-width katakana reading of key.
//
// The result is empty when key is empty or when its Shift-JIS form would
// take MaxReadingBytes bytes or more.
func KeyToReading(key string) string {
	narrow := toHalfwidth(HiraganaToKatakana(key))

	enc := japanese.ShiftJIS.NewEncoder()
	var b strings.Builder
	b.Grow(len(narrow))
	size := 0

	for _, r := range narrow {
		// Shift-JIS 0x8165 is rendered as a backquote by the IME APIs.
		if r == '‘' {
			r = '`'
		}

		encoded, err := enc.String(string(r))
		if err != nil || r == utf8.RuneError {
			r, encoded = '?', "?"
		}

		size += len(encoded)
		b.WriteRune(r)
	}

	if size >= MaxReadingBytes {
		return ""
	}

	return b.String()
}

func toHalfwidth(s string) string {
	enc := japanese.ShiftJIS.NewEncoder()
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if fit, ok := cp932BestFit[r]; ok {
			r = fit
		}
		if r >= katakanaBlockFirst && r <= katakanaBlockLast {
			b.WriteString(splitVoiced(r))
			continue
		}

		// A narrow form outside Shift-JIS (U+FFE0 -> U+00A2) keeps the wide one.
		if n := narrowRune(r); n != r {
			if _, err := enc.String(string(n)); err == nil {
				r = n
			}
		}
		b.WriteRune(r)
	}

	return b.String()
}

// splitVoiced narrows a katakana letter, splitting a voiced letter into its
// base and a half-width sound mark. Letters whose base has no half-width
// form stay full-width.
func splitVoiced(r rune) string {
	decomposed := []rune(norm.NFD.String(string(r)))
	if narrowRune(decomposed[0]) == decomposed[0] {
		return string(narrowRune(r))
	}

	for i, d := range decomposed {
		decomposed[i] = narrowRune(d)
	}

	return string(decomposed)
}

func narrowRune(r rune) rune {
	switch r {
	case '゙', '゛':
		return halfwidthVoicedMark
	case '゚', '゜':
		return halfwidthSemiVoicedMark
	}

	if n := width.LookupRune(r).Narrow(); n != 0 {
		return n
	}

	return r
}
