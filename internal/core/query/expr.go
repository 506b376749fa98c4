package query

import "strings"

// Op is a leaf comparison operator, both operands are lower-cased first
type Op uint8

const (
	// OpContains is a substring test
	OpContains Op = iota + 1
	// OpEquals is an equality test
	OpEquals
)

func (o Op) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpEquals:
		return "equals"
	default:
		return "unknown"
	}
}

// Expr is a node of the predicate tree: Leaf, And or Or
// a nil Expr matches everything
type Expr interface{ isExpr() }

// Leaf compares one field against one value
type Leaf struct {
	Field Field
	Op    Op
	Value string
}

// And matches when every child matches, an empty And matches everything
type And []Expr

// Or matches when any child matches, an empty Or matches nothing
type Or []Expr

func (Leaf) isExpr() {}
func (And) isExpr()  {}
func (Or) isExpr()   {}

// AnyField builds an Or of one leaf per field
func AnyField(fields []Field, op Op, value string) Or {
	out := make(Or, 0, len(fields))
	for _, f := range fields {
		out = append(out, Leaf{Field: f, Op: op, Value: value})
	}
	return out
}

// Record is anything the tree can be evaluated against
// Text returns the textual form of a field, numeric fields already formatted
type Record interface {
	Text(Field) string
}

// Eval reports whether r satisfies e
func Eval(e Expr, r Record) bool {
	switch x := e.(type) {
	case nil:
		return true
	case Leaf:
		return evalLeaf(x, r)
	case And:
		for _, c := range x {
			if !Eval(c, r) {
				return false
			}
		}
		return true
	case Or:
		for _, c := range x {
			if Eval(c, r) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func evalLeaf(l Leaf, r Record) bool {
	have := strings.ToLower(r.Text(l.Field))
	want := strings.ToLower(l.Value)
	switch l.Op {
	case OpContains:
		return strings.Contains(have, want)
	case OpEquals:
		return have == want
	default:
		return false
	}
}
