package donors

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Service contains business logic for donors.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create validates and registers a donor.
func (s *Service) Create(ctx context.Context, donor Donor) (Donor, error) {
	if err := validate(&donor); err != nil {
		return Donor{}, err
	}
	donor.CreatedAt = time.Now().UTC()
	return s.Repo.Create(ctx, donor)
}

// Get returns a donor by internal ID.
func (s *Service) Get(ctx context.Context, id int64) (Donor, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetByCode returns a donor by linkage code.
func (s *Service) GetByCode(ctx context.Context, code string) (Donor, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Donor{}, ErrInvalidInput
	}
	return s.Repo.GetByCode(ctx, code)
}

// List returns donors.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Donor, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Update validates and rewrites a donor.
func (s *Service) Update(ctx context.Context, donor Donor) error {
	if donor.ID <= 0 {
		return ErrInvalidInput
	}
	if err := validate(&donor); err != nil {
		return err
	}
	return s.Repo.Update(ctx, donor)
}

// Delete removes a donor.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}

func validate(donor *Donor) error {
	donor.Type = strings.ToLower(strings.TrimSpace(donor.Type))
	donor.Phone = strings.TrimSpace(donor.Phone)

	switch donor.Type {
	case TypePerson:
		if strings.TrimSpace(donor.FirstName) == "" {
			return ErrInvalidInput
		}
		donor.InstitutionName = ""
	case TypeInstitution:
		if strings.TrimSpace(donor.InstitutionName) == "" {
			return ErrInvalidInput
		}
		donor.FirstName = ""
		donor.LastName = ""
	default:
		return ErrInvalidInput
	}

	if donor.Phone != "" && !phonePattern.MatchString(donor.Phone) {
		return ErrInvalidInput
	}
	return nil
}
