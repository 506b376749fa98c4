package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Column maps a Field onto a trusted SQL expression
type Column struct {
	SQL  string
	Kind Kind
}

// Columns is the allowlist a tree is compiled against
type Columns map[Field]Column

// Args collects positional arguments while a predicate is compiled
type Args struct{ vals []any }

// NewArgs starts numbering after the given leading arguments
func NewArgs(leading ...any) *Args {
	return &Args{vals: append([]any(nil), leading...)}
}

// Add appends v and returns its placeholder
func (a *Args) Add(v any) string {
	a.vals = append(a.vals, v)
	return "$" + strconv.Itoa(len(a.vals))
}

// Values returns the collected arguments in placeholder order
func (a *Args) Values() []any { return a.vals }

// Compile renders e as a boolean SQL expression
// column expressions come only from cols and every value is bound through args
func Compile(e Expr, cols Columns, args *Args) (string, error) {
	switch x := e.(type) {
	case nil:
		return "TRUE", nil
	case Leaf:
		return compileLeaf(x, cols, args)
	case And:
		return compileGroup([]Expr(x), " AND ", "TRUE", cols, args)
	case Or:
		return compileGroup([]Expr(x), " OR ", "FALSE", cols, args)
	default:
		return "", fmt.Errorf("query: unsupported node %T", e)
	}
}

func compileGroup(children []Expr, sep, empty string, cols Columns, args *Args) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, c := range children {
		p, err := Compile(c, cols, args)
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func compileLeaf(l Leaf, cols Columns, args *Args) (string, error) {
	col, ok := cols[l.Field]
	if !ok {
		return "", fmt.Errorf("query: field %q is not searchable", l.Field)
	}
	lhs := col.SQL
	if col.Kind == KindNumeric {
		lhs = "(" + lhs + ")::text"
	}
	lhs = "lower(" + lhs + ")"
	v := strings.ToLower(l.Value)

	switch l.Op {
	case OpContains:
		return lhs + " LIKE " + args.Add("%"+EscapeLike(v)+"%"), nil
	case OpEquals:
		return lhs + " = " + args.Add(v), nil
	default:
		return "", fmt.Errorf("query: unsupported operator %s", l.Op)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters using the default backslash escape
func EscapeLike(s string) string { return likeEscaper.Replace(s) }
