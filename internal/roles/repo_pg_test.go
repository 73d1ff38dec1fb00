package roles

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateEncodesPermissions(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs("r1", "treasurer", "money things", `{"donations.write":true}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	role := Role{
		ID:          "r1",
		Name:        "treasurer",
		Description: "money things",
		Permissions: map[string]bool{"donations.write": true},
		CreatedAt:   time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), role); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoGetByIDDecodesPermissions(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{"id", "name", "description", "permissions", "created_at", "updated_at"}).
		AddRow("r1", "viewer", nil, `{"donors.read":true,"donors.write":false}`, time.Now(), nil)
	mock.ExpectQuery(`SELECT id, name, description, permissions`).
		WithArgs("r1").
		WillReturnRows(rows)

	role, err := repo.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !role.Allows("donors.read") || role.Allows("donors.write") {
		t.Fatalf("unexpected permissions: %+v", role.Permissions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoDeleteMissingRole(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectExec(`DELETE FROM roles`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
