package donors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const donorColumns = `id, code, donor_type, first_name, last_name, institution_name, phone, address_line1, address_line2, city, state, postal_code, created_at, updated_at`

// Create inserts a new donor. When no code is provided one is derived from
// the assigned row ID.
func (r *PGRepo) Create(ctx context.Context, donor Donor) (Donor, error) {
	const query = `
INSERT INTO donors (
    code,
    donor_type,
    first_name,
    last_name,
    institution_name,
    phone,
    address_line1,
    address_line2,
    city,
    state,
    postal_code,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

	code := donor.Code
	if code == "" {
		// Placeholder until the row ID is known; the UNIQUE constraint
		// tolerates it because the timestamp fragment is per-insert.
		code = fmt.Sprintf("pending-%d", time.Now().UnixNano())
	}

	var id int64
	err := r.DB.QueryRowContext(
		ctx,
		query,
		code,
		donor.Type,
		nullable(donor.FirstName),
		nullable(donor.LastName),
		nullable(donor.InstitutionName),
		nullable(donor.Phone),
		nullable(donor.AddressLine1),
		nullable(donor.AddressLine2),
		nullable(donor.City),
		nullable(donor.State),
		nullable(donor.PostalCode),
		donor.CreatedAt,
	).Scan(&id)
	if err != nil {
		return Donor{}, err
	}

	donor.ID = id
	if donor.Code == "" {
		donor.Code = FormatCode(id)
		const updateCode = `UPDATE donors SET code = $1 WHERE id = $2`
		if _, err := r.DB.ExecContext(ctx, updateCode, donor.Code, id); err != nil {
			return Donor{}, err
		}
	}
	return donor, nil
}

// GetByID fetches a donor by internal ID.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Donor, error) {
	query := `SELECT ` + donorColumns + ` FROM donors WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByCode fetches a donor by the externally visible linkage code.
func (r *PGRepo) GetByCode(ctx context.Context, code string) (Donor, error) {
	query := `SELECT ` + donorColumns + ` FROM donors WHERE code = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, code))
}

// List returns donors ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Donor, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + donorColumns + ` FROM donors ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Donor
	for rows.Next() {
		donor, err := scanDonor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, donor)
	}
	return out, rows.Err()
}

// Update rewrites a donor's mutable fields.
func (r *PGRepo) Update(ctx context.Context, donor Donor) error {
	const query = `
UPDATE donors
SET donor_type = $1,
    first_name = $2,
    last_name = $3,
    institution_name = $4,
    phone = $5,
    address_line1 = $6,
    address_line2 = $7,
    city = $8,
    state = $9,
    postal_code = $10,
    updated_at = $11
WHERE id = $12`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		donor.Type,
		nullable(donor.FirstName),
		nullable(donor.LastName),
		nullable(donor.InstitutionName),
		nullable(donor.Phone),
		nullable(donor.AddressLine1),
		nullable(donor.AddressLine2),
		nullable(donor.City),
		nullable(donor.State),
		nullable(donor.PostalCode),
		time.Now().UTC(),
		donor.ID,
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

// Delete removes a donor row.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM donors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row *sql.Row) (Donor, error) {
	donor, err := scanDonor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Donor{}, ErrNotFound
		}
		return Donor{}, err
	}
	return donor, nil
}

func scanDonor(row rowScanner) (Donor, error) {
	var donor Donor
	var firstName, lastName, institutionName sql.NullString
	var phone, addr1, addr2, city, state, postal sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&donor.ID,
		&donor.Code,
		&donor.Type,
		&firstName,
		&lastName,
		&institutionName,
		&phone,
		&addr1,
		&addr2,
		&city,
		&state,
		&postal,
		&donor.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Donor{}, err
	}
	donor.FirstName = firstName.String
	donor.LastName = lastName.String
	donor.InstitutionName = institutionName.String
	donor.Phone = phone.String
	donor.AddressLine1 = addr1.String
	donor.AddressLine2 = addr2.String
	donor.City = city.String
	donor.State = state.String
	donor.PostalCode = postal.String
	if updatedAt.Valid {
		donor.UpdatedAt = &updatedAt.Time
	}
	return donor, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// FormatCode derives the externally visible donor code from the row ID.
func FormatCode(id int64) string {
	return fmt.Sprintf("DNR%05d", id)
}

var _ Repo = (*PGRepo)(nil)
