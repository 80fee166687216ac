package contracts

import "context"

// TransactionManager runs fn inside one database transaction. Repository
// calls made with the callback's context join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
