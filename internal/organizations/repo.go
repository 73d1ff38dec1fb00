package organizations

import "context"

// Repo defines persistence operations for organizations.
type Repo interface {
	Create(ctx context.Context, org Organization) error
	GetByID(ctx context.Context, id string) (Organization, error)
	GetByName(ctx context.Context, name string) (Organization, error)
	List(ctx context.Context) ([]Organization, error)
	Update(ctx context.Context, org Organization) error
	Delete(ctx context.Context, id string) error
}
