package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Modes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  Intent
		empty bool
	}{
		{
			name: "leading at is handle",
			in:   "@JohnDoe",
			want: Intent{Mode: ModeHandle, Terms: []string{"johndoe"}, Fields: handleFields},
		},
		{
			name: "email shaped input searches the domain",
			in:   "someone@Example.com",
			want: Intent{Mode: ModeHandle, Terms: []string{"example.com"}, Fields: handleFields},
		},
		{
			name: "handle wins over quotes and AND",
			in:   `"Jane Doe" AND @x`,
			want: Intent{Mode: ModeHandle, Terms: []string{"x"}, Fields: handleFields},
		},
		{
			name: "quoted phrase is not split",
			in:   `  "John  Doe"  `,
			want: Intent{Mode: ModePhrase, Terms: []string{"john  doe"}, Fields: Searchable},
		},
		{
			name: "and delimiter is case insensitive and deduped",
			in:   "John and Doe AND john",
			want: Intent{Mode: ModeAnd, Terms: []string{"john", "doe"}, Fields: Searchable},
		},
		{
			name: "and drops empty parts",
			in:   "john AND  AND doe",
			want: Intent{Mode: ModeAnd, Terms: []string{"john", "doe"}, Fields: Searchable},
		},
		{
			name: "and needs the spaced delimiter",
			in:   "John ANDroid",
			want: Intent{Mode: ModeOr, Terms: []string{"john", "android"}, Fields: Searchable},
		},
		{
			name: "whitespace split is or",
			in:   "Alpha  beta\talpha",
			want: Intent{Mode: ModeOr, Terms: []string{"alpha", "beta"}, Fields: Searchable},
		},
		{name: "empty", in: "", empty: true},
		{name: "blank", in: "  \t ", empty: true},
		{name: "empty quotes", in: `""`, empty: true},
		{name: "blank quotes", in: `"   "`, empty: true},
		{name: "bare at", in: "@", empty: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.in)
			if tc.empty {
				if ok {
					t.Fatalf("expected no intent, got %+v", got)
				}
				return
			}
			if !ok {
				t.Fatalf("expected intent for %q", tc.in)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestIntentExpr_Shapes(t *testing.T) {
	in, _ := Parse("@acme")
	want := Or{
		Leaf{Field: FieldHandle, Op: OpContains, Value: "acme"},
		Leaf{Field: FieldEmailDomain, Op: OpContains, Value: "acme"},
	}
	if diff := cmp.Diff(Expr(want), in.Expr()); diff != "" {
		t.Fatalf("handle expr mismatch (-want +got):\n%s", diff)
	}

	and, _ := Parse("a AND b")
	got, ok := and.Expr().(And)
	if !ok || len(got) != 2 {
		t.Fatalf("expected And of two groups, got %#v", and.Expr())
	}
	for i, g := range got {
		or, ok := g.(Or)
		if !ok || len(or) != len(Searchable) {
			t.Fatalf("group %d should span every searchable field, got %#v", i, g)
		}
	}

	or, _ := Parse("a b")
	flat, ok := or.Expr().(Or)
	if !ok || len(flat) != 2*len(Searchable) {
		t.Fatalf("expected flat Or of term x field leaves, got %d", len(flat))
	}
}
