package donors

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]Donor
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[int64]Donor)}
}

// Create stores a donor and assigns ID and code.
func (r *MemoryRepo) Create(ctx context.Context, donor Donor) (Donor, error) {
	if err := ctx.Err(); err != nil {
		return Donor{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	donor.ID = r.nextID
	if donor.Code == "" {
		donor.Code = FormatCode(donor.ID)
	}
	r.data[donor.ID] = donor
	return donor, nil
}

// GetByID returns a donor by internal ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Donor, error) {
	if err := ctx.Err(); err != nil {
		return Donor{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	donor, ok := r.data[id]
	if !ok {
		return Donor{}, ErrNotFound
	}
	return donor, nil
}

// GetByCode returns a donor by linkage code.
func (r *MemoryRepo) GetByCode(ctx context.Context, code string) (Donor, error) {
	if err := ctx.Err(); err != nil {
		return Donor{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, donor := range r.data {
		if donor.Code == code {
			return donor, nil
		}
	}
	return Donor{}, ErrNotFound
}

// List returns donors newest-first, honoring limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Donor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	all := make([]Donor, 0, len(r.data))
	for _, donor := range r.data {
		all = append(all, donor)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Donor{}, nil
	}
	end := len(all)
	if offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// Update rewrites a donor's mutable fields.
func (r *MemoryRepo) Update(ctx context.Context, donor Donor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[donor.ID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	donor.Code = existing.Code
	donor.CreatedAt = existing.CreatedAt
	donor.UpdatedAt = &now
	r.data[donor.ID] = donor
	return nil
}

// Delete removes a donor.
func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
