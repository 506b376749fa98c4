// Package repokit provides the seams repositories are written against
package repokit

import "channelhub/internal/platform/store"

type (
	// Queryer is the minimal read and write surface for SQL repos
	Queryer = store.RowQuerier

	// TxRunner can execute a function inside a transaction
	TxRunner = store.TxRunner
)
