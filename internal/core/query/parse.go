package query

import (
	"regexp"
	"strings"

	"channelhub/internal/core/normalize"
)

// Mode is how a parsed query combines its terms
type Mode string

// parse modes in precedence order
const (
	ModeHandle Mode = "handle"
	ModePhrase Mode = "phrase"
	ModeAnd    Mode = "and"
	ModeOr     Mode = "or"
)

// Intent is the structured form of a search string
type Intent struct {
	Mode   Mode     `json:"mode"`
	Terms  []string `json:"terms"`
	Fields []Field  `json:"fields"`
}

var andDelim = regexp.MustCompile(`(?i) AND `)

// Parse turns raw input into an Intent
// ok is false when the input carries nothing to filter on
func Parse(raw string) (Intent, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Intent{}, false
	}

	if i := strings.IndexByte(s, '@'); i >= 0 {
		term := normalize.Term(s[i+1:])
		if term == "" {
			return Intent{}, false
		}
		return Intent{Mode: ModeHandle, Terms: []string{term}, Fields: handleFields}, true
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		// the phrase is matched verbatim, only its case is folded
		term := strings.ToLower(s[1 : len(s)-1])
		if strings.TrimSpace(term) == "" {
			return Intent{}, false
		}
		return Intent{Mode: ModePhrase, Terms: []string{term}, Fields: Searchable}, true
	}

	if andDelim.MatchString(s) {
		terms := dedupe(andDelim.Split(s, -1))
		if len(terms) == 0 {
			return Intent{}, false
		}
		return Intent{Mode: ModeAnd, Terms: terms, Fields: Searchable}, true
	}

	terms := dedupe(strings.Fields(s))
	if len(terms) == 0 {
		return Intent{}, false
	}
	return Intent{Mode: ModeOr, Terms: terms, Fields: Searchable}, true
}

// dedupe normalizes parts, drops empties and keeps the first occurrence of each term
func dedupe(parts []string) []string {
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		t := normalize.Term(p)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Expr expands the intent into a predicate tree over its fields
func (in Intent) Expr() Expr {
	switch in.Mode {
	case ModeHandle, ModePhrase:
		if len(in.Terms) == 0 {
			return nil
		}
		return AnyField(in.Fields, OpContains, in.Terms[0])
	case ModeAnd:
		out := make(And, 0, len(in.Terms))
		for _, t := range in.Terms {
			out = append(out, AnyField(in.Fields, OpContains, t))
		}
		return out
	case ModeOr:
		out := make(Or, 0, len(in.Terms)*len(in.Fields))
		for _, t := range in.Terms {
			for _, f := range in.Fields {
				out = append(out, Leaf{Field: f, Op: OpContains, Value: t})
			}
		}
		return out
	default:
		return nil
	}
}
