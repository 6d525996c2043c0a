package checks

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// decoration is stripped from both ends of a token to form its lookup key.
const decoration = "*_()<>.,:|[]-#=!?/\"“”"

//nolint:gochecknoglobals // Replacer is safe for concurrent use.
var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

// wordFolder turns raw tokens into lookup keys and display subjects.
// Casers are stateful, so each checker invocation owns one.
type wordFolder struct {
	fold  cases.Caser
	upper cases.Caser
}

func newWordFolder() *wordFolder {
	return &wordFolder{
		fold:  cases.Fold(),
		upper: cases.Upper(language.English),
	}
}

// core strips decoration from a token and normalizes its apostrophes,
// keeping the original case.
func core(token string) string {
	return strings.Trim(apostrophes.Replace(token), decoration)
}

// key returns the case-folded, NFC-normalized lookup key of a token.
func (f *wordFolder) key(token string) string {
	return f.fold.String(norm.NFC.String(core(token)))
}

// subject returns the uppercase form of a key for reports.
func (f *wordFolder) subject(key string) string {
	return f.upper.String(key)
}

// locator finds reported words in a raw line, left to right.
type locator struct {
	raw  string
	from int
}

// column returns the 1-based rune column of the next case-insensitive
// occurrence of word, or 0 when it cannot be found in the raw text.
func (l *locator) column(word string) int {
	if word == "" {
		return 0
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(word))
	if err != nil {
		return 0
	}
	loc := re.FindStringIndex(l.raw[l.from:])
	if loc == nil {
		return 0
	}
	start := l.from + loc[0]
	l.from += loc[1]
	return utf8.RuneCountInString(l.raw[:start]) + 1
}
