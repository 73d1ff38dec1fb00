package donations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"donordesk-backend/internal/donors"
	"donordesk-backend/internal/shared/metrics"
	"donordesk-backend/internal/shared/telemetry"
)

// Service contains business logic for donations.
type Service struct {
	Repo   Repo
	Donors donors.Repo
}

// NewService constructs a Service.
func NewService(repo Repo, donorRepo donors.Repo) *Service {
	return &Service{Repo: repo, Donors: donorRepo}
}

// Create validates and records a donation. The receipt sequence number is
// assigned by the repository; a conflicting concurrent insert is retried
// once before failing.
func (s *Service) Create(ctx context.Context, donation Donation) (Donation, error) {
	if err := s.validate(ctx, &donation); err != nil {
		return Donation{}, err
	}

	donation.ID = uuid.NewString()
	donation.CreatedAt = time.Now().UTC()

	created, err := s.Repo.Create(ctx, donation)
	if errors.Is(err, ErrReceiptNoConflict) {
		telemetry.Warn("donation.receipt_no_conflict", map[string]any{
			"donor_code": donation.DonorCode,
		})
		created, err = s.Repo.Create(ctx, donation)
	}
	if err != nil {
		return Donation{}, err
	}
	metrics.IncDonationCreated()
	return created, nil
}

// Get returns a donation by ID.
func (s *Service) Get(ctx context.Context, id string) (Donation, error) {
	if id == "" {
		return Donation{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns donations matching the filter.
func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Donation, error) {
	return s.Repo.List(ctx, filter, limit, offset)
}

// Update validates and rewrites a donation.
func (s *Service) Update(ctx context.Context, donation Donation) error {
	if donation.ID == "" {
		return ErrInvalidInput
	}
	if err := s.validate(ctx, &donation); err != nil {
		return err
	}
	return s.Repo.Update(ctx, donation)
}

// Delete removes a donation.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}

// reportPageSize is the List batch size used when collecting all rows for a
// report.
const reportPageSize = 500

// Summarize aggregates donations matching the filter. Aggregation happens in
// the repository over every matching row, never a single List page.
func (s *Service) Summarize(ctx context.Context, filter Filter) (Summary, error) {
	return s.Repo.Summarize(ctx, filter)
}

// ListAll pages through the repository until every donation matching the
// filter has been collected.
func (s *Service) ListAll(ctx context.Context, filter Filter) ([]Donation, error) {
	var all []Donation
	for offset := 0; ; offset += reportPageSize {
		page, err := s.Repo.List(ctx, filter, reportPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < reportPageSize {
			return all, nil
		}
	}
}

func (s *Service) validate(ctx context.Context, donation *Donation) error {
	donation.DonorCode = strings.TrimSpace(donation.DonorCode)
	if donation.DonorCode == "" {
		return ErrInvalidInput
	}
	if donation.Amount < 0 {
		return ErrInvalidInput
	}
	if !ValidMethod(donation.PaymentMethod) {
		return ErrInvalidInput
	}
	if donation.Date.IsZero() {
		return ErrInvalidInput
	}
	if len(donation.Purposes) == 0 {
		return ErrInvalidInput
	}

	if s.Donors != nil {
		if _, err := s.Donors.GetByCode(ctx, donation.DonorCode); err != nil {
			if errors.Is(err, donors.ErrNotFound) {
				return ErrInvalidInput
			}
			return err
		}
	}
	return nil
}
