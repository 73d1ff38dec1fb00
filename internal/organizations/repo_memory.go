package organizations

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Organization
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Organization)}
}

// Create stores an organization.
func (r *MemoryRepo) Create(ctx context.Context, org Organization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[org.ID] = org
	return nil
}

// GetByID returns an organization by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Organization, error) {
	if err := ctx.Err(); err != nil {
		return Organization{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	org, ok := r.data[id]
	if !ok {
		return Organization{}, ErrNotFound
	}
	return org, nil
}

// GetByName returns an organization by name.
func (r *MemoryRepo) GetByName(ctx context.Context, name string) (Organization, error) {
	if err := ctx.Err(); err != nil {
		return Organization{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, org := range r.data {
		if strings.EqualFold(org.Name, name) {
			return org, nil
		}
	}
	return Organization{}, ErrNotFound
}

// List returns all organizations ordered by name.
func (r *MemoryRepo) List(ctx context.Context) ([]Organization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Organization, 0, len(r.data))
	for _, org := range r.data {
		out = append(out, org)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update rewrites an organization.
func (r *MemoryRepo) Update(ctx context.Context, org Organization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[org.ID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	org.CreatedAt = existing.CreatedAt
	org.UpdatedAt = &now
	r.data[org.ID] = org
	return nil
}

// Delete removes an organization.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
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
