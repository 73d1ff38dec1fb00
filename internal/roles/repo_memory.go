package roles

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Role
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Role)}
}

// Create stores a role.
func (r *MemoryRepo) Create(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[role.ID] = role
	return nil
}

// GetByID returns a role by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Role, error) {
	if err := ctx.Err(); err != nil {
		return Role{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.data[id]
	if !ok {
		return Role{}, ErrNotFound
	}
	return role, nil
}

// List returns all roles ordered by name.
func (r *MemoryRepo) List(ctx context.Context) ([]Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Role, 0, len(r.data))
	for _, role := range r.data {
		out = append(out, role)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update rewrites a role.
func (r *MemoryRepo) Update(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[role.ID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	role.CreatedAt = existing.CreatedAt
	role.UpdatedAt = &now
	r.data[role.ID] = role
	return nil
}

// Delete removes a role.
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
