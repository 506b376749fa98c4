package query

import (
	"context"
	"errors"
	"testing"
)

func TestIsNumeric(t *testing.T) {
	for in, want := range map[string]bool{
		"42":    true,
		" 007 ": true,
		"":      false,
		"4 2":   false,
		"-1":    false,
		"12a":   false,
		"１２":    false,
	} {
		if got := IsNumeric(in); got != want {
			t.Fatalf("IsNumeric(%q)=%v want %v", in, got, want)
		}
	}
}

func TestCascade_FirstNonEmptyWins(t *testing.T) {
	corpus := []rec{
		{FieldID: "42", FieldVideoID: "vid-4200", FieldLink: "https://cdn.example/v/4200"},
		{FieldID: "7", FieldVideoID: "1313", FieldPhone: "555-7777"},
	}
	tests := []struct {
		q     string
		want  string
		calls int
	}{
		{q: "42", want: "id", calls: 1},
		{q: "1313", want: "alt_exact", calls: 2},
		{q: "420", want: "alt_partial", calls: 3},
		{q: "555", want: "fulltext", calls: 4},
		{q: "9999", want: CascadeMiss, calls: 4},
	}
	for _, tc := range tests {
		t.Run(tc.q, func(t *testing.T) {
			calls := 0
			got, err := Cascade(context.Background(), tc.q, NumericCascade, func(_ context.Context, e Expr) (bool, error) {
				calls++
				for _, r := range corpus {
					if Eval(e, r) {
						return true, nil
					}
				}
				return false, nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("winner=%q want %q", got, tc.want)
			}
			if calls != tc.calls {
				t.Fatalf("strategies attempted=%d want %d", calls, tc.calls)
			}
		})
	}
}

func TestCascade_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := Cascade(context.Background(), "1", NumericCascade, func(context.Context, Expr) (bool, error) {
		calls++
		return false, boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("expected first error to abort, err=%v calls=%d", err, calls)
	}
}

func TestCascade_HonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Cascade(ctx, "1", NumericCascade, func(context.Context, Expr) (bool, error) {
		t.Fatal("run must not be called")
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
