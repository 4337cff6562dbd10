package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
)

// All repository interfaces in one file. Every write is atomic; the engine
// behind them may be any transactional store.
type (
	PatientRepository interface {
		FindByPhone(ctx context.Context, phone string) (*model.Patient, error)
		// Upsert inserts by phone or refreshes name/age of the existing row.
		Upsert(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Count(ctx context.Context) (int, error)
		ListWithStats(ctx context.Context) ([]*model.PatientWithStats, error)
	}

	AppointmentRepository interface {
		Insert(ctx context.Context, appointment *model.Appointment) error
		// InsertWithPatient upserts the patient and inserts the appointment
		// in a single transaction, so a crash mid-sequence cannot leave one
		// without the other.
		InsertWithPatient(ctx context.Context, patient *model.Patient, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		// ListForDate returns appointments on a date, excluding excludeStatus
		// when non-empty. The read is a consistent snapshot for that date.
		ListForDate(ctx context.Context, date model.Date, excludeStatus model.AppointmentStatus) ([]*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentView, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentView, error)
		CountForDate(ctx context.Context, date model.Date, excludeStatus model.AppointmentStatus) (int, error)
		CountByStatus(ctx context.Context, status model.AppointmentStatus) (int, error)
		CountCompletedSince(ctx context.Context, date model.Date) (int, error)
		ListUpcoming(ctx context.Context, from model.Date, limit int) ([]*model.AppointmentView, error)
	}

	BlockedSlotRepository interface {
		Insert(ctx context.Context, slot *model.BlockedSlot) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForDate(ctx context.Context, date model.Date) ([]*model.BlockedSlot, error)
		List(ctx context.Context) ([]*model.BlockedSlot, error)
	}

	AdminRepository interface {
		GetByUsername(ctx context.Context, username string) (*model.Admin, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Admin, error)
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	}
)
