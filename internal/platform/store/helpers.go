package store

import (
	"context"
)

// Scalar scans the single column of the first row into a T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	return v, err
}

// Many maps every row with scan. The slice is nil on error.
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Maybe maps the first row with scan, ok is false when there is none
func Maybe[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (v T, ok bool, err error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return v, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return v, false, rows.Err()
	}
	if v, err = scan(rows); err != nil {
		return v, false, err
	}
	return v, true, nil
}
