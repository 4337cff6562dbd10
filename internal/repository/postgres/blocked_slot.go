package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
)

func (r *blockedSlotRepository) Insert(ctx context.Context, slot *model.BlockedSlot) error {
	query := `
		INSERT INTO blocked_slots (id, date, start_time, end_time, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	slot.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.Date,
		slot.Start,
		slot.End,
		slot.Reason,
		slot.CreatedAt,
	)
	if err != nil {
		return storeErr("blocked slot", err)
	}
	return nil
}

func (r *blockedSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blocked_slots WHERE id = $1`, id)
	if err != nil {
		return storeErr("blocked slot", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("blocked slot", err)
	}
	if rows == 0 {
		return apperrors.NotFound("blocked slot", nil)
	}
	return nil
}

func (r *blockedSlotRepository) ListForDate(ctx context.Context, date model.Date) ([]*model.BlockedSlot, error) {
	query := `
		SELECT id, date, start_time, end_time, reason, created_at
		FROM blocked_slots
		WHERE date = $1
		ORDER BY start_time ASC
	`
	var slots []*model.BlockedSlot
	if err := r.db.SelectContext(ctx, &slots, query, date); err != nil {
		return nil, storeErr("blocked slots", err)
	}
	return slots, nil
}

func (r *blockedSlotRepository) List(ctx context.Context) ([]*model.BlockedSlot, error) {
	query := `
		SELECT id, date, start_time, end_time, reason, created_at
		FROM blocked_slots
		ORDER BY date DESC, start_time ASC
	`
	var slots []*model.BlockedSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, storeErr("blocked slots", err)
	}
	return slots, nil
}
