package clients

import "context"

// RepositoryPort defines data access methods for clients. Filtering by
// responsible party happens at the storage level so the "own" listing never
// materializes rows the caller may not see.
type RepositoryPort interface {
	ListAll(ctx context.Context) ([]Client, error)
	ListByResponsible(ctx context.Context, userID int64) ([]Client, error)
	Get(ctx context.Context, id int64) (*Client, error)
	Create(ctx context.Context, client NewClient) (*Client, error)
	Update(ctx context.Context, id int64, patch ClientPatch) (*Client, error)
	Delete(ctx context.Context, id int64) error
}
