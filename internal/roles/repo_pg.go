package roles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. Permissions are stored as a JSON
// object in a text column.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a role.
func (r *PGRepo) Create(ctx context.Context, role Role) error {
	perms, err := marshalPermissions(role.Permissions)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO roles (id, name, description, permissions, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err = r.DB.ExecContext(ctx, query, role.ID, role.Name, role.Description, perms, role.CreatedAt)
	return err
}

// GetByID fetches a role by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Role, error) {
	const query = `
SELECT id, name, description, permissions, created_at, updated_at
FROM roles WHERE id = $1`

	role, err := scanRole(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// List returns all roles ordered by name.
func (r *PGRepo) List(ctx context.Context) ([]Role, error) {
	const query = `
SELECT id, name, description, permissions, created_at, updated_at
FROM roles ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// Update rewrites a role.
func (r *PGRepo) Update(ctx context.Context, role Role) error {
	perms, err := marshalPermissions(role.Permissions)
	if err != nil {
		return err
	}

	const query = `
UPDATE roles
SET name = $1, description = $2, permissions = $3, updated_at = $4
WHERE id = $5`

	res, err := r.DB.ExecContext(ctx, query, role.Name, role.Description, perms, time.Now().UTC(), role.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a role row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
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

func scanRole(row rowScanner) (Role, error) {
	var role Role
	var description sql.NullString
	var perms string
	var updatedAt sql.NullTime
	err := row.Scan(&role.ID, &role.Name, &description, &perms, &role.CreatedAt, &updatedAt)
	if err != nil {
		return Role{}, err
	}
	role.Description = description.String
	if perms != "" {
		if err := json.Unmarshal([]byte(perms), &role.Permissions); err != nil {
			return Role{}, fmt.Errorf("decode permissions: %w", err)
		}
	}
	if updatedAt.Valid {
		role.UpdatedAt = &updatedAt.Time
	}
	return role, nil
}

func marshalPermissions(perms map[string]bool) (string, error) {
	if perms == nil {
		perms = map[string]bool{}
	}
	b, err := json.Marshal(perms)
	if err != nil {
		return "", fmt.Errorf("encode permissions: %w", err)
	}
	return string(b), nil
}

var _ Repo = (*PGRepo)(nil)
