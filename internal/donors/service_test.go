package donors

import (
	"context"
	"errors"
	"testing"
)

func TestCreatePersonRequiresFirstName(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Create(context.Background(), Donor{Type: TypePerson})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateInstitutionClearsPersonNames(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	donor, err := svc.Create(context.Background(), Donor{
		Type:            TypeInstitution,
		InstitutionName: "Helping Hands Trust",
		FirstName:       "should",
		LastName:        "vanish",
		Phone:           "+919999999999",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if donor.FirstName != "" || donor.LastName != "" {
		t.Fatalf("expected person names cleared for institution, got %q %q", donor.FirstName, donor.LastName)
	}
	if donor.DisplayName() != "Helping Hands Trust" {
		t.Fatalf("DisplayName = %q", donor.DisplayName())
	}
}

func TestCreateAssignsCode(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	donor, err := svc.Create(context.Background(), Donor{Type: TypePerson, FirstName: "Asha", LastName: "Rao"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if donor.Code != "DNR00001" {
		t.Fatalf("expected code DNR00001, got %q", donor.Code)
	}

	fetched, err := svc.GetByCode(context.Background(), donor.Code)
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if fetched.ID != donor.ID {
		t.Fatalf("expected same donor by code")
	}
}

func TestCreateRejectsBadPhone(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Create(context.Background(), Donor{Type: TypePerson, FirstName: "Asha", Phone: "not-a-phone"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad phone, got %v", err)
	}
}

func TestGetByCodeMissing(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.GetByCode(context.Background(), "DNR99999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
