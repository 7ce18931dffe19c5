package repository

import "context"

// TxManager runs a function inside a single atomic transaction. Repositories
// called with the context it yields join that transaction, so a document
// mutation, its ledger adjustments and the receivables projection commit or
// roll back together.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
