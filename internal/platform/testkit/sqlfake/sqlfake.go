// Package sqlfake is a scripted store.TxRunner for repository tests
//
// Queries are answered by the first stub whose fragment appears in the SQL.
// Exec calls inside Tx are only recorded as writes when fn returns nil.
package sqlfake

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"channelhub/internal/platform/store"
)

// ErrNoRows is returned by QueryRow scans when the stub has no rows
var ErrNoRows = errors.New("sqlfake: no rows in result set")

// Call is one recorded statement
type Call struct {
	SQL  string
	Args []any
}

type stub struct {
	match string
	rows  [][]any
	err   error
}

// DB records statements and answers them from stubs
type DB struct {
	mu        sync.Mutex
	stubs     []stub
	calls     []Call
	writes    []Call
	pending   []Call
	inTx      bool
	Commits   int
	Rollbacks int
}

// New returns an empty DB
func New() *DB { return &DB{} }

// Stub answers any statement containing match with rows
func (d *DB) Stub(match string, rows ...[]any) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stubs = append(d.stubs, stub{match: match, rows: rows})
	return d
}

// Fail answers any statement containing match with err
func (d *DB) Fail(match string, err error) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stubs = append(d.stubs, stub{match: match, err: err})
	return d
}

// Calls returns every statement seen so far
func (d *DB) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Writes returns committed Exec statements
func (d *DB) Writes() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.writes...)
}

// Last returns the most recent statement
func (d *DB) Last() Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) == 0 {
		return Call{}
	}
	return d.calls[len(d.calls)-1]
}

func (d *DB) lookup(sql string, args []any) stub {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{SQL: sql, Args: args})
	for _, s := range d.stubs {
		if strings.Contains(sql, s.match) {
			return s
		}
	}
	return stub{}
}

type tag int64

func (t tag) String() string      { return fmt.Sprintf("EXEC %d", int64(t)) }
func (t tag) RowsAffected() int64 { return int64(t) }

// Exec implements store.RowQuerier
func (d *DB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	s := d.lookup(sql, args)
	if s.err != nil {
		return nil, s.err
	}
	d.mu.Lock()
	if d.inTx {
		d.pending = append(d.pending, Call{SQL: sql, Args: args})
	} else {
		d.writes = append(d.writes, Call{SQL: sql, Args: args})
	}
	d.mu.Unlock()
	return tag(1), nil
}

// Query implements store.RowQuerier
func (d *DB) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	s := d.lookup(sql, args)
	if s.err != nil {
		return nil, s.err
	}
	return &rows{data: s.rows, idx: -1}, nil
}

// QueryRow implements store.RowQuerier
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	rs, err := d.Query(ctx, sql, args...)
	return row{rs: rs, err: err}
}

// Tx runs fn and keeps its writes only when fn succeeds
func (d *DB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	d.mu.Lock()
	d.inTx, d.pending = true, nil
	d.mu.Unlock()

	err := fn(d)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inTx = false
	if err != nil {
		d.Rollbacks++
		d.pending = nil
		return err
	}
	d.Commits++
	d.writes = append(d.writes, d.pending...)
	d.pending = nil
	return nil
}

type row struct {
	rs  store.Rows
	err error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	defer r.rs.Close()
	if !r.rs.Next() {
		return ErrNoRows
	}
	return r.rs.Scan(dest...)
}

type rows struct {
	data [][]any
	idx  int
}

func (r *rows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *rows) Scan(dest ...any) error {
	cur := r.data[r.idx]
	if len(dest) != len(cur) {
		return fmt.Errorf("sqlfake: scan %d values into %d targets", len(cur), len(dest))
	}
	for i, v := range cur {
		if err := assign(dest[i], v); err != nil {
			return fmt.Errorf("sqlfake: column %d: %w", i, err)
		}
	}
	return nil
}

func (r *rows) Err() error        { return nil }
func (r *rows) Close()            {}
func (r *rows) Columns() []string { return nil }

// assign stores v into the pointer dst, a nil v zeroes the target
func assign(dst, v any) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return errors.New("destination is not a pointer")
	}
	target := dv.Elem()
	if v == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	sv := reflect.ValueOf(v)
	switch {
	case sv.Type().AssignableTo(target.Type()):
		target.Set(sv)
	case target.Kind() == reflect.Pointer && sv.Type().AssignableTo(target.Type().Elem()):
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(sv)
		target.Set(p)
	case sv.Type().ConvertibleTo(target.Type()):
		target.Set(sv.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", v, target.Type())
	}
	return nil
}
