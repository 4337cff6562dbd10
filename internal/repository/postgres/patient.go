package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
)

func (r *patientRepository) FindByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	query := `
		SELECT id, phone, name, age, created_at, updated_at
		FROM patients
		WHERE phone = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, phone); err != nil {
		return nil, storeErr("patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) Upsert(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, phone, name, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name,
		    age = COALESCE(EXCLUDED.age, patients.age),
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	now := time.Now()
	patient.UpdatedAt = now

	row := r.db.QueryRowxContext(ctx, query, patient.ID, patient.Phone, patient.Name, patient.Age, now)
	if err := row.Scan(&patient.ID, &patient.CreatedAt); err != nil {
		return storeErr("patient", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, phone, name, age, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, storeErr("patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`); err != nil {
		return 0, storeErr("patients", err)
	}
	return count, nil
}

func (r *patientRepository) ListWithStats(ctx context.Context) ([]*model.PatientWithStats, error) {
	query := `
		SELECT p.id, p.phone, p.name, p.age, p.created_at, p.updated_at,
			   (SELECT COUNT(*) FROM appointments WHERE patient_id = p.id) AS total_appointments,
			   (SELECT COUNT(*) FROM appointments WHERE patient_id = p.id AND status = 'completed') AS completed_appointments
		FROM patients p
		ORDER BY p.created_at DESC
	`
	var patients []*model.PatientWithStats
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, storeErr("patients", err)
	}
	return patients, nil
}
