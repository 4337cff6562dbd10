package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
)

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `
		SELECT id, username, password, name, created_at
		FROM admins
		WHERE username = $1
	`
	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		return nil, storeErr("admin", err)
	}
	return &admin, nil
}

func (r *adminRepository) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	query := `
		SELECT id, username, password, name, created_at
		FROM admins
		WHERE id = $1
	`
	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, storeErr("admin", err)
	}
	return &admin, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE admins SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return storeErr("admin", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("admin", err)
	}
	if rows == 0 {
		return apperrors.NotFound("admin", nil)
	}
	return nil
}
