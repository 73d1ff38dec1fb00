package donors

import "context"

// Repo defines persistence operations for donors.
type Repo interface {
	Create(ctx context.Context, donor Donor) (Donor, error)
	GetByID(ctx context.Context, id int64) (Donor, error)
	GetByCode(ctx context.Context, code string) (Donor, error)
	List(ctx context.Context, limit, offset int) ([]Donor, error)
	Update(ctx context.Context, donor Donor) error
	Delete(ctx context.Context, id int64) error
}
