// Package normalize folds search input into the form stored terms are compared in.
//
// Term runs, in order: Sanitize, NFKC, root-locale lower casing (what SQL lower()
// does on the stored side), removal of format runes such as ZWJ and BOM, fullwidth
// to ASCII folding, and finally whitespace collapsing.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// folders hands out transformer chains. cases.Lower keeps state, so a chain is
// used by one goroutine at a time.
var folders = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Lower(language.Und),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Term returns the folded form of s. It is idempotent and safe for concurrent use.
func Term(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	t := folders.Get().(transform.Transformer)
	folded, _, err := transform.String(t, s)
	t.Reset()
	folders.Put(t)
	if err != nil {
		// only malformed UTF-8 fails and Sanitize removed it
		folded = strings.ToLower(s)
	}
	return collapseSpaces(folded)
}

// collapseSpaces joins the whitespace separated fields of s with single spaces
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
