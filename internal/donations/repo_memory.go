package donations

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu           sync.RWMutex
	data         map[string]Donation
	maxReceiptNo int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Donation)}
}

// Create stores a donation and assigns the next receipt sequence number.
func (r *MemoryRepo) Create(ctx context.Context, donation Donation) (Donation, error) {
	if err := ctx.Err(); err != nil {
		return Donation{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxReceiptNo++
	donation.ReceiptNo = r.maxReceiptNo
	r.data[donation.ID] = donation
	return donation, nil
}

// GetByID returns a donation by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Donation, error) {
	if err := ctx.Err(); err != nil {
		return Donation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	donation, ok := r.data[id]
	if !ok {
		return Donation{}, ErrNotFound
	}
	return donation, nil
}

// List returns donations matching the filter, newest-first.
func (r *MemoryRepo) List(ctx context.Context, filter Filter, limit, offset int) ([]Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	var matched []Donation
	for _, donation := range r.data {
		if matches(donation, filter) {
			matched = append(matched, donation)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].ReceiptNo > matched[j].ReceiptNo
		}
		return matched[i].Date.After(matched[j].Date)
	})

	if offset >= len(matched) {
		return []Donation{}, nil
	}
	end := len(matched)
	if offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

// Summarize aggregates every donation matching the filter.
func (r *MemoryRepo) Summarize(ctx context.Context, filter Filter) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := Summary{ByPaymentMethod: map[string]float64{}}
	for _, donation := range r.data {
		if !matches(donation, filter) {
			continue
		}
		summary.Count++
		summary.TotalAmount += donation.Amount
		summary.ByPaymentMethod[donation.PaymentMethod] += donation.Amount
	}
	return summary, nil
}

// Update rewrites a donation's mutable fields.
func (r *MemoryRepo) Update(ctx context.Context, donation Donation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[donation.ID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	donation.ReceiptNo = existing.ReceiptNo
	donation.CreatedAt = existing.CreatedAt
	donation.UpdatedAt = &now
	r.data[donation.ID] = donation
	return nil
}

// Delete removes a donation.
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

func matches(donation Donation, filter Filter) bool {
	if filter.DonorCode != "" && donation.DonorCode != filter.DonorCode {
		return false
	}
	if filter.PaymentMethod != "" && donation.PaymentMethod != filter.PaymentMethod {
		return false
	}
	if filter.Purpose != "" {
		found := false
		for _, p := range donation.Purposes {
			if strings.Contains(p, filter.Purpose) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !filter.From.IsZero() && donation.Date.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && donation.Date.After(filter.To) {
		return false
	}
	return true
}

var _ Repo = (*MemoryRepo)(nil)
