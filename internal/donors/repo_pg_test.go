package donors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "code", "donor_type", "first_name", "last_name", "institution_name",
		"phone", "address_line1", "address_line2", "city", "state", "postal_code",
		"created_at", "updated_at",
	}).AddRow(int64(7), "DNR00007", TypePerson, "Asha", "Rao", nil,
		"+919999999999", nil, nil, "Chennai", nil, nil, created, nil)

	mock.ExpectQuery("SELECT (.+) FROM donors WHERE code =").
		WithArgs("DNR00007").
		WillReturnRows(rows)

	donor, err := repo.GetByCode(context.Background(), "DNR00007")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if donor.ID != 7 || donor.Phone != "+919999999999" {
		t.Fatalf("unexpected donor: %+v", donor)
	}
	if donor.DisplayName() != "Asha Rao" {
		t.Fatalf("DisplayName = %q", donor.DisplayName())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByCodeNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM donors WHERE code =").
		WithArgs("DNR99999").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByCode(context.Background(), "DNR99999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCreateAssignsCodeFromID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("INSERT INTO donors").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec("UPDATE donors SET code =").
		WithArgs("DNR00042", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	donor, err := repo.Create(context.Background(), Donor{
		Type:      TypePerson,
		FirstName: "Asha",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if donor.Code != "DNR00042" {
		t.Fatalf("expected derived code DNR00042, got %q", donor.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
