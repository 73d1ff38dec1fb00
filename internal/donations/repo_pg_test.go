package donations

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateAssignsReceiptNo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	donation := Donation{
		ID:            "don-1",
		DonorCode:     "DNR00007",
		Amount:        500,
		Date:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: MethodGPay,
		Purposes:      []string{"General Fund"},
		CreatedAt:     time.Now().UTC(),
	}

	mock.ExpectQuery(`INSERT INTO donations`).
		WithArgs(
			donation.ID,
			donation.DonorCode,
			donation.Amount,
			donation.Date,
			donation.PaymentMethod,
			`["General Fund"]`,
			nil,
			donation.CreatedAt,
		).
		WillReturnRows(sqlmock.NewRows([]string{"receipt_no"}).AddRow(int64(12)))

	created, err := repo.Create(context.Background(), donation)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ReceiptNo != 12 {
		t.Fatalf("expected receipt_no 12, got %d", created.ReceiptNo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "donor_code", "amount", "donated_on", "payment_method",
		"purposes", "receipt_no", "notes", "created_at", "updated_at",
	}).AddRow("don-1", "DNR00007", 500.0, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		MethodGPay, `["General Fund"]`, int64(12), nil, created, nil)

	mock.ExpectQuery(`SELECT (.+) FROM donations WHERE 1=1 AND donor_code = (.+) AND payment_method = (.+) ORDER BY donated_on DESC`).
		WithArgs("DNR00007", MethodGPay, 50, 0).
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), Filter{DonorCode: "DNR00007", PaymentMethod: MethodGPay}, 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(out))
	}
	if out[0].Purposes[0] != "General Fund" {
		t.Fatalf("expected decoded purposes, got %v", out[0].Purposes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSummarizeAggregatesInSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{"payment_method", "count", "total"}).
		AddRow(MethodCash, 400, 400.0).
		AddRow(MethodGPay, 200, 200.0)

	mock.ExpectQuery(`SELECT payment_method, COUNT\(\*\), COALESCE\(SUM\(amount\), 0\)\s+FROM donations WHERE 1=1 AND donor_code = (.+)\s+GROUP BY payment_method`).
		WithArgs("DNR00007").
		WillReturnRows(rows)

	summary, err := repo.Summarize(context.Background(), Filter{DonorCode: "DNR00007"})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Count != 600 {
		t.Fatalf("expected count 600, got %d", summary.Count)
	}
	if summary.TotalAmount != 600 {
		t.Fatalf("expected total 600, got %v", summary.TotalAmount)
	}
	if summary.ByPaymentMethod[MethodCash] != 400 || summary.ByPaymentMethod[MethodGPay] != 200 {
		t.Fatalf("unexpected method split: %+v", summary.ByPaymentMethod)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
