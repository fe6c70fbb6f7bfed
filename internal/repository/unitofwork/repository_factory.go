package unitofwork

import "context"

// RepositoryFactory hands out short-lived units of work, one per
// request or background task.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
