package roles

import "context"

// Repo defines persistence operations for roles.
type Repo interface {
	Create(ctx context.Context, role Role) error
	GetByID(ctx context.Context, id string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, role Role) error
	Delete(ctx context.Context, id string) error
}
