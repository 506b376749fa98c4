// Package audit records committed distribution batches in clickhouse
package audit

import (
	"context"
	"time"
)

// Table is the clickhouse table batches are appended to
const Table = "distribution_audit"

// Event describes one committed batch
type Event struct {
	At        time.Time
	BatchID   string
	ContentID int64
	ActorID   int64
	ActorRole string
	Category  string
	Channels  []string
	Skipped   []string
	OTTIDs    []string
	Priority  int
}

// Sink receives batch events after commit
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// Nop drops every event
type Nop struct{}

// Record implements Sink
func (Nop) Record(context.Context, Event) error { return nil }

// inserter is the columnar write the clickhouse sink needs
type inserter interface {
	Insert(ctx context.Context, table string, rows [][]any) error
}

// ClickHouse appends one row per event
type ClickHouse struct {
	db    inserter
	table string
}

// NewClickHouse returns a sink writing to Table
func NewClickHouse(db inserter) *ClickHouse {
	return &ClickHouse{db: db, table: Table}
}

// Record implements Sink
func (c *ClickHouse) Record(ctx context.Context, e Event) error {
	return c.db.Insert(ctx, c.table, [][]any{{
		e.At.UTC(),
		e.BatchID,
		e.ContentID,
		e.ActorID,
		e.ActorRole,
		e.Category,
		nonNil(e.Channels),
		nonNil(e.Skipped),
		nonNil(e.OTTIDs),
		uint8(e.Priority),
	}})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
