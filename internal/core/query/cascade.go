package query

import (
	"context"
	"strings"
)

// Strategy is one step of the numeric fast path
type Strategy struct {
	Name  string
	Build func(q string) Expr
}

// NumericCascade is tried in order for purely numeric input, loosest last
var NumericCascade = []Strategy{
	{Name: "id", Build: func(q string) Expr {
		return Leaf{Field: FieldID, Op: OpEquals, Value: q}
	}},
	{Name: "alt_exact", Build: func(q string) Expr {
		return AnyField(altIDFields, OpEquals, q)
	}},
	{Name: "alt_partial", Build: func(q string) Expr {
		return AnyField(altIDFields, OpContains, q)
	}},
	{Name: "fulltext", Build: func(q string) Expr {
		return AnyField(Searchable, OpContains, q)
	}},
}

// CascadeMiss is reported when no strategy produced a result
const CascadeMiss = "none"

// IsNumeric reports whether the trimmed input is a non-empty run of ASCII digits
func IsNumeric(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cascade runs strategies in order and stops at the first one for which run reports a hit
// it returns the winning strategy name, or CascadeMiss when every strategy came back empty
func Cascade(ctx context.Context, q string, strategies []Strategy, run func(context.Context, Expr) (bool, error)) (string, error) {
	q = strings.TrimSpace(q)
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		hit, err := run(ctx, s.Build(q))
		if err != nil {
			return "", err
		}
		if hit {
			return s.Name, nil
		}
	}
	return CascadeMiss, nil
}
