package organizations

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const orgColumns = `id, name, address_line, city, header_image, footer_image, logo, created_at, updated_at`

// Create inserts an organization.
func (r *PGRepo) Create(ctx context.Context, org Organization) error {
	const query = `
INSERT INTO organizations (id, name, address_line, city, header_image, footer_image, logo, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		org.ID,
		org.Name,
		nullable(org.AddressLine),
		nullable(org.City),
		nullable(org.HeaderImage),
		nullable(org.FooterImage),
		nullable(org.Logo),
		org.CreatedAt,
	)
	return err
}

// GetByID fetches an organization by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	return scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByName fetches an organization by its unique name.
func (r *PGRepo) GetByName(ctx context.Context, name string) (Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE name = $1`
	return scanOne(r.DB.QueryRowContext(ctx, query, name))
}

// List returns all organizations.
func (r *PGRepo) List(ctx context.Context) ([]Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Organization
	for rows.Next() {
		org, err := scanOrg(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, org)
	}
	return out, rows.Err()
}

// Update rewrites an organization.
func (r *PGRepo) Update(ctx context.Context, org Organization) error {
	const query = `
UPDATE organizations
SET name = $1, address_line = $2, city = $3, header_image = $4, footer_image = $5, logo = $6, updated_at = $7
WHERE id = $8`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		org.Name,
		nullable(org.AddressLine),
		nullable(org.City),
		nullable(org.HeaderImage),
		nullable(org.FooterImage),
		nullable(org.Logo),
		time.Now().UTC(),
		org.ID,
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

// Delete removes an organization row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
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

func scanOne(row *sql.Row) (Organization, error) {
	org, err := scanOrg(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, ErrNotFound
		}
		return Organization{}, err
	}
	return org, nil
}

func scanOrg(row rowScanner) (Organization, error) {
	var org Organization
	var addressLine, city, headerImage, footerImage, logo sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&org.ID,
		&org.Name,
		&addressLine,
		&city,
		&headerImage,
		&footerImage,
		&logo,
		&org.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Organization{}, err
	}
	org.AddressLine = addressLine.String
	org.City = city.String
	org.HeaderImage = headerImage.String
	org.FooterImage = footerImage.String
	org.Logo = logo.String
	if updatedAt.Valid {
		org.UpdatedAt = &updatedAt.Time
	}
	return org, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
