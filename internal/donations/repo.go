package donations

import "context"

// Repo defines persistence operations for donations. Create assigns the
// receipt sequence number and returns the stored donation. Summarize
// aggregates over every matching row regardless of the List page size.
type Repo interface {
	Create(ctx context.Context, donation Donation) (Donation, error)
	GetByID(ctx context.Context, id string) (Donation, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]Donation, error)
	Summarize(ctx context.Context, filter Filter) (Summary, error)
	Update(ctx context.Context, donation Donation) error
	Delete(ctx context.Context, id string) error
}
