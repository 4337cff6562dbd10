package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
)

const appointmentColumns = `
	id, patient_id, treatment_id, date, start_time, end_time,
	status, notes, created_by, confirmed_at, created_at, updated_at
`

const appointmentViewColumns = `
	a.id, a.patient_id, a.treatment_id, a.date, a.start_time, a.end_time,
	a.status, a.notes, a.created_by, a.confirmed_at, a.created_at, a.updated_at,
	p.name AS patient_name, p.phone AS patient_phone
`

func (r *appointmentRepository) Insert(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.TreatmentID,
		appointment.Date,
		appointment.Start,
		appointment.End,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedBy,
		appointment.ConfirmedAt,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return storeErr("appointment", err)
	}
	return nil
}

func (r *appointmentRepository) InsertWithPatient(ctx context.Context, patient *model.Patient, appointment *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("appointment", err)
	}
	defer tx.Rollback()

	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	now := time.Now()

	upsert := `
		INSERT INTO patients (id, phone, name, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name,
		    age = COALESCE(EXCLUDED.age, patients.age),
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	row := tx.QueryRowxContext(ctx, upsert, patient.ID, patient.Phone, patient.Name, patient.Age, now)
	if err := row.Scan(&patient.ID, &patient.CreatedAt); err != nil {
		return storeErr("patient", err)
	}

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.PatientID = patient.ID
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	insert := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, insert,
		appointment.ID,
		appointment.PatientID,
		appointment.TreatmentID,
		appointment.Date,
		appointment.Start,
		appointment.End,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedBy,
		appointment.ConfirmedAt,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return storeErr("appointment", err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("appointment", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, storeErr("appointment", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, notes = $2, confirmed_at = $3, updated_at = $4
		WHERE id = $5
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Status,
		appointment.Notes,
		appointment.ConfirmedAt,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return storeErr("appointment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("appointment", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return storeErr("appointment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("appointment", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) ListForDate(ctx context.Context, date model.Date, excludeStatus model.AppointmentStatus) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE date = $1`
	args := []interface{}{date}

	if excludeStatus != "" {
		query += ` AND status != $2`
		args = append(args, excludeStatus)
	}
	query += ` ORDER BY start_time ASC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, storeErr("appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentView, error) {
	query := `
		SELECT ` + appointmentViewColumns + `
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		WHERE 1=1
	`
	var args []interface{}
	argCount := 1

	if filters != nil {
		if filters.Date != "" {
			query += fmt.Sprintf(" AND a.date = $%d", argCount)
			args = append(args, filters.Date)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND a.status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND a.patient_id = $%d", argCount)
			args = append(args, filters.PatientID)
			argCount++
		}
	}

	query += ` ORDER BY a.date DESC, a.start_time ASC`

	var appointments []*model.AppointmentView
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, storeErr("appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentView, error) {
	query := `
		SELECT ` + appointmentViewColumns + `
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		WHERE a.patient_id = $1
		ORDER BY a.date DESC, a.start_time DESC
	`
	var appointments []*model.AppointmentView
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, storeErr("appointments", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) CountForDate(ctx context.Context, date model.Date, excludeStatus model.AppointmentStatus) (int, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE date = $1`
	args := []interface{}{date}

	if excludeStatus != "" {
		query += ` AND status != $2`
		args = append(args, excludeStatus)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, storeErr("appointments", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, status model.AppointmentStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments WHERE status = $1`, status)
	if err != nil {
		return 0, storeErr("appointments", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountCompletedSince(ctx context.Context, date model.Date) (int, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE status = 'completed' AND date >= $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, date); err != nil {
		return 0, storeErr("appointments", err)
	}
	return count, nil
}

func (r *appointmentRepository) ListUpcoming(ctx context.Context, from model.Date, limit int) ([]*model.AppointmentView, error) {
	query := `
		SELECT ` + appointmentViewColumns + `
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		WHERE a.date >= $1 AND a.status != 'cancelled'
		ORDER BY a.date ASC, a.start_time ASC
		LIMIT $2
	`
	var appointments []*model.AppointmentView
	if err := r.db.SelectContext(ctx, &appointments, query, from, limit); err != nil {
		return nil, storeErr("appointments", err)
	}
	return appointments, nil
}
