package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
)

// Service handles the phone-keyed patient identity: register-or-login on
// first contact, lookup for booking, and the admin's patient list.
type Service struct {
	patients repository.PatientRepository
}

func NewService(patients repository.PatientRepository) *Service {
	return &Service{patients: patients}
}

// Authenticate resolves or creates a patient by normalized phone number,
// refreshing the display name on every visit.
func (s *Service) Authenticate(ctx context.Context, req *model.PatientAuthRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Phone: model.NormalizePhone(req.Phone),
		Name:  req.Name,
		Age:   req.Age,
	}
	if patient.Phone == "" {
		return nil, fmt.Errorf("phone number contains no digits")
	}

	if err := s.patients.Upsert(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to upsert patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.patients.Get(ctx, id)
}

// ListWithStats backs the admin patients screen with per-patient booking
// counts.
func (s *Service) ListWithStats(ctx context.Context) ([]*model.PatientWithStats, error) {
	return s.patients.ListWithStats(ctx)
}
