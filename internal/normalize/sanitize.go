package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// leadingDashRun matches a leading run of unicode dash look-alikes, the
// characters terminals and web pages substitute for ASCII hyphens.
// Reference: https://en.wiktionary.org/wiki/-
var leadingDashRun = regexp.MustCompile(`^[\x{2010}\x{2013}\x{2212}\x{2014}\x{4E00}\x{1680}\x{FE63}\x{FF0D}]+`)

// quoteCutset holds the unicode quotation-mark characters stripped from
// both ends of a token.
// Reference: https://unicode-table.com/en/sets/quotation-marks/
const quoteCutset = "«‹»›„“‟”’❝❞❮❯⹂〝〞〟＂‚‘‛❛❜"

// NormalizeDashes replaces a leading run of unicode dash look-alikes with
// an equal-length run of ASCII hyphens. The rest of the token is untouched.
func NormalizeDashes(token string) string {
	return leadingDashRun.ReplaceAllStringFunc(token, func(match string) string {
		return strings.Repeat("-", utf8.RuneCountInString(match))
	})
}

// TrimQuotes strips unicode quotation-mark characters from both ends of a
// token.
func TrimQuotes(token string) string {
	return strings.Trim(token, quoteCutset)
}

// hasSmartQuotes reports whether the token's value part starts with and
// the token ends with a rich-text quote (U+2018..U+201F), the telltale of
// a command copy-pasted from a web page.
func hasSmartQuotes(token string) bool {
	if utf8.RuneCountInString(token) <= 1 {
		return false
	}

	value := strings.TrimSpace(valuePart(token))
	if value == "" {
		value = " "
	}
	first, _ := utf8.DecodeRuneInString(value)
	last, _ := utf8.DecodeLastRuneInString(token)

	return isSmartQuote(first) && isSmartQuote(last)
}

// hasWideComma reports whether the token carries a full-width comma
// (U+FF0C) in its value part.
func hasWideComma(token string) bool {
	return utf8.RuneCountInString(token) > 1 && strings.ContainsRune(valuePart(token), '，')
}

// valuePart returns the text after the first '=', or the whole token when
// there is none.
func valuePart(token string) string {
	if _, value, found := strings.Cut(token, "="); found {
		return value
	}
	return token
}

func isSmartQuote(r rune) bool {
	return r >= 0x2018 && r < 0x2020
}
