package donations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const donationColumns = `id, donor_code, amount, donated_on, payment_method, purposes, receipt_no, notes, created_at, updated_at`

// Create inserts a donation, assigning the next receipt sequence number in
// the same statement. The UNIQUE index on receipt_no closes the historical
// read-max-then-insert race; concurrent inserts surface as
// ErrReceiptNoConflict and the service retries.
func (r *PGRepo) Create(ctx context.Context, donation Donation) (Donation, error) {
	const query = `
INSERT INTO donations (
    id,
    donor_code,
    amount,
    donated_on,
    payment_method,
    purposes,
    receipt_no,
    notes,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, (SELECT COALESCE(MAX(receipt_no), 0) + 1 FROM donations), $7, $8)
RETURNING receipt_no`

	purposes, err := json.Marshal(donation.Purposes)
	if err != nil {
		return Donation{}, fmt.Errorf("marshal purposes: %w", err)
	}

	err = r.DB.QueryRowContext(
		ctx,
		query,
		donation.ID,
		donation.DonorCode,
		donation.Amount,
		donation.Date,
		donation.PaymentMethod,
		string(purposes),
		nullable(donation.Notes),
		donation.CreatedAt,
	).Scan(&donation.ReceiptNo)
	if err != nil {
		if isUniqueViolation(err) {
			return Donation{}, ErrReceiptNoConflict
		}
		return Donation{}, err
	}
	return donation, nil
}

// GetByID fetches a donation by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	donation, err := scanDonation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Donation{}, ErrNotFound
		}
		return Donation{}, err
	}
	return donation, nil
}

// List returns donations matching the filter, newest-first.
func (r *PGRepo) List(ctx context.Context, filter Filter, limit, offset int) ([]Donation, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	clause, args := filterClause(filter)
	query := `SELECT ` + donationColumns + ` FROM donations WHERE 1=1` + clause
	query += fmt.Sprintf(" ORDER BY donated_on DESC, receipt_no DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Donation
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, donation)
	}
	return out, rows.Err()
}

// Summarize aggregates all donations matching the filter in SQL, so totals
// are exact however many rows match.
func (r *PGRepo) Summarize(ctx context.Context, filter Filter) (Summary, error) {
	clause, args := filterClause(filter)
	query := `
SELECT payment_method, COUNT(*), COALESCE(SUM(amount), 0)
FROM donations WHERE 1=1` + clause + `
GROUP BY payment_method`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	summary := Summary{ByPaymentMethod: map[string]float64{}}
	for rows.Next() {
		var method string
		var count int
		var total float64
		if err := rows.Scan(&method, &count, &total); err != nil {
			return Summary{}, err
		}
		summary.Count += count
		summary.TotalAmount += total
		summary.ByPaymentMethod[method] = total
	}
	return summary, rows.Err()
}

// Update rewrites a donation's mutable fields. ReceiptNo is immutable.
func (r *PGRepo) Update(ctx context.Context, donation Donation) error {
	const query = `
UPDATE donations
SET donor_code = $1,
    amount = $2,
    donated_on = $3,
    payment_method = $4,
    purposes = $5,
    notes = $6,
    updated_at = $7
WHERE id = $8`

	purposes, err := json.Marshal(donation.Purposes)
	if err != nil {
		return fmt.Errorf("marshal purposes: %w", err)
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		donation.DonorCode,
		donation.Amount,
		donation.Date,
		donation.PaymentMethod,
		string(purposes),
		nullable(donation.Notes),
		time.Now().UTC(),
		donation.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a donation row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// filterClause renders the filter as "AND ..." SQL with positional args,
// shared by List and Summarize.
func filterClause(filter Filter) (string, []any) {
	var clause string
	args := []any{}

	next := func() int { return len(args) + 1 }
	if filter.DonorCode != "" {
		clause += fmt.Sprintf(" AND donor_code = $%d", next())
		args = append(args, filter.DonorCode)
	}
	if filter.PaymentMethod != "" {
		clause += fmt.Sprintf(" AND payment_method = $%d", next())
		args = append(args, filter.PaymentMethod)
	}
	if filter.Purpose != "" {
		clause += fmt.Sprintf(" AND purposes LIKE $%d", next())
		args = append(args, "%"+filter.Purpose+"%")
	}
	if !filter.From.IsZero() {
		clause += fmt.Sprintf(" AND donated_on >= $%d", next())
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		clause += fmt.Sprintf(" AND donated_on <= $%d", next())
		args = append(args, filter.To)
	}
	return clause, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(row rowScanner) (Donation, error) {
	var donation Donation
	var purposesRaw string
	var notes sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&donation.ID,
		&donation.DonorCode,
		&donation.Amount,
		&donation.Date,
		&donation.PaymentMethod,
		&purposesRaw,
		&donation.ReceiptNo,
		&notes,
		&donation.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Donation{}, err
	}
	if purposesRaw != "" {
		if err := json.Unmarshal([]byte(purposesRaw), &donation.Purposes); err != nil {
			donation.Purposes = []string{purposesRaw}
		}
	}
	donation.Notes = notes.String
	if updatedAt.Valid {
		donation.UpdatedAt = &updatedAt.Time
	}
	return donation, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repo = (*PGRepo)(nil)
