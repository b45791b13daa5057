package reading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func TestHiraganaToKatakana(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"きょう", "キョウ"},
		{"ゔぁ", "ヴァ"},
		{"ゕゖ", "ヵヶ"},
		{"ゝゞ", "ヽヾ"},
		{"abc漢字カナ", "abc漢字カナ"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, HiraganaToKatakana(tt.in))
		})
	}
}

func TestKeyToReading(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "きょう", "ｷｮｳ"},
		{"voiced", "がっこう", "ｶﾞｯｺｳ"},
		{"semi voiced", "ぱーてぃー", "ﾊﾟｰﾃｨｰ"},
		{"vu", "ゔ", "ｳﾞ"},
		{"katakana input", "カタカナ", "ｶﾀｶﾅ"},
		{"already narrow", "ｶﾀｶﾅ", "ｶﾀｶﾅ"},
		{"fullwidth ascii", "ＡＢＣ１２３", "ABC123"},
		{"ideographic space", "あ　い", "ｱ ｲ"},
		{"punctuation", "「あ」、。", "｢ｱ｣､｡"},
		{"kanji kept", "漢字", "漢字"},
		{"no narrow form", "ゝゞヵ", "ヽヾヵ"},
		{"left quote", "‘", "`"},
		{"outside shift-jis", "한글", "??"},
		{"wave dash", "から〜まで", "ｶﾗ~ﾏﾃﾞ"},
		{"minus sign", "−１", "-1"},
		{"double vertical line", "‖", "∥"},
		{"currency and not signs", "¢£¬", "￠￡￢"},
		{"fullwidth currency kept", "￠￡￢", "￠￡￢"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, KeyToReading(tt.in))
		})
	}
}

func TestKeyToReading_BestFitEncodes(t *testing.T) {
	enc := japanese.ShiftJIS.NewEncoder()
	for from, to := range cp932BestFit {
		_, err := enc.String(string(from))
		require.Error(t, err, "U+%04X should need a substitution", from)

		got := KeyToReading(string(from))
		require.NotEqual(t, "?", got, "U+%04X -> U+%04X", from, to)
		_, err = enc.String(got)
		require.NoError(t, err)
	}
}

func TestKeyToReading_Limit(t *testing.T) {
	// half-width katakana take one Shift-JIS byte each
	require.Equal(t, strings.Repeat("ｱ", MaxReadingBytes-1), KeyToReading(strings.Repeat("あ", MaxReadingBytes-1)))
	require.Empty(t, KeyToReading(strings.Repeat("あ", MaxReadingBytes)))

	// kanji take two
	require.NotEmpty(t, KeyToReading(strings.Repeat("漢", MaxReadingBytes/2-1)))
	require.Empty(t, KeyToReading(strings.Repeat("漢", MaxReadingBytes/2)))
}

func BenchmarkKeyToReading(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = KeyToReading("がっこうにいきます")
	}
}
