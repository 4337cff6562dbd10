package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
	"github.com/nazaclinic/booking-api/internal/service/availability"
	"github.com/nazaclinic/booking-api/internal/service/schedule"
	"github.com/nazaclinic/booking-api/pkg/clock"
	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
	"github.com/nazaclinic/booking-api/pkg/event"
	"github.com/nazaclinic/booking-api/pkg/metrics"
)

// Service is the only writer of appointments and blocked slots. It owns the
// invariant that no two active appointments overlap and no active
// appointment overlaps a blocked slot at booking time.
type Service struct {
	schedule     *schedule.Service
	availability *availability.Service
	appointments repository.AppointmentRepository
	blocked      repository.BlockedSlotRepository
	notifier     event.Notifier
	metrics      *metrics.Metrics
	clock        clock.Clock
	locks        *dateLocks
}

func NewService(
	scheduleSvc *schedule.Service,
	availabilitySvc *availability.Service,
	appointments repository.AppointmentRepository,
	blocked repository.BlockedSlotRepository,
	notifier event.Notifier,
	m *metrics.Metrics,
	clk clock.Clock,
) *Service {
	return &Service{
		schedule:     scheduleSvc,
		availability: availabilitySvc,
		appointments: appointments,
		blocked:      blocked,
		notifier:     notifier,
		metrics:      m,
		clock:        clk,
		locks:        newDateLocks(),
	}
}

// BookingInput carries everything needed to commit one appointment.
// Patient is the phone-keyed record to resolve or create; Status is only
// honored for admin-created bookings.
type BookingInput struct {
	Patient     model.Patient
	TreatmentID int
	Date        model.Date
	Slot        model.TimeSlot
	Notes       string
	CreatedBy   model.Creator
	Status      model.AppointmentStatus
}

// Book validates and commits a booking. The availability check and the
// insert run under the date's lock, so two racing attempts for overlapping
// intervals end with exactly one success and one slot-unavailable failure.
func (s *Service) Book(ctx context.Context, input BookingInput) (*model.Appointment, error) {
	if _, err := s.schedule.Treatment(input.TreatmentID); err != nil {
		s.countBooking("unknown_treatment")
		return nil, err
	}

	if !input.Slot.Valid() {
		s.countBooking("invalid_slot")
		return nil, fmt.Errorf("invalid slot %s: start must precede end", input.Slot)
	}

	open, err := s.schedule.IsDayOpen(input.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date: %w", err)
	}
	if !open {
		s.countBooking("clinic_closed")
		return nil, apperrors.ClinicClosed(input.Date.String())
	}

	status, err := resolveStatus(input.CreatedBy, input.Status)
	if err != nil {
		s.countBooking("invalid_status")
		return nil, err
	}

	appointment := &model.Appointment{
		TreatmentID: input.TreatmentID,
		Date:        input.Date,
		TimeSlot:    input.Slot,
		Status:      status,
		Notes:       input.Notes,
		CreatedBy:   input.CreatedBy,
	}
	if status == model.AppointmentStatusConfirmed {
		now := s.clock.Now()
		appointment.ConfirmedAt = &now
	}

	unlock := s.locks.acquire(input.Date)
	defer unlock()

	free, err := s.availability.IsAvailable(ctx, input.Date, input.Slot, nil)
	if err != nil {
		s.countBooking("store_error")
		return nil, err
	}
	if !free {
		s.countBooking("slot_unavailable")
		return nil, apperrors.SlotUnavailable(input.Date.String(), input.Slot.Start.String(), input.Slot.End.String())
	}

	patient := input.Patient
	patient.Phone = model.NormalizePhone(patient.Phone)

	if err := s.appointments.InsertWithPatient(ctx, &patient, appointment); err != nil {
		s.countBooking("store_error")
		return nil, err
	}

	s.countBooking("booked")
	s.emit(ctx, eventKindFor(input.CreatedBy), appointment)
	return appointment, nil
}

// resolveStatus applies the creator asymmetry: patients always start
// pending; admins may supply any known state and default to confirmed.
func resolveStatus(creator model.Creator, supplied model.AppointmentStatus) (model.AppointmentStatus, error) {
	if creator != model.CreatorAdmin {
		return model.AppointmentStatusPending, nil
	}
	if supplied == "" {
		return model.AppointmentStatusConfirmed, nil
	}
	if !supplied.Valid() {
		return "", apperrors.InvalidTransition("new", string(supplied))
	}
	return supplied, nil
}

func eventKindFor(creator model.Creator) event.Kind {
	if creator == model.CreatorAdmin {
		return event.KindAppointmentUpdated
	}
	return event.KindNewAppointment
}

// UpdateAppointment applies a status transition and/or a notes edit. A
// request naming the appointment's current status, or carrying no status at
// all, is an idempotent notes edit.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		newStatus := model.AppointmentStatus(*req.Status)
		if !newStatus.Valid() {
			return nil, apperrors.InvalidTransition(string(appointment.Status), *req.Status)
		}
		if newStatus != appointment.Status {
			if !appointment.Status.CanTransitionTo(newStatus) {
				return nil, apperrors.InvalidTransition(string(appointment.Status), string(newStatus))
			}
			if appointment.Status == model.AppointmentStatusPending && newStatus == model.AppointmentStatusConfirmed {
				now := s.clock.Now()
				appointment.ConfirmedAt = &now
			}
			appointment.Status = newStatus
			if s.metrics != nil {
				s.metrics.StatusTransitions.WithLabelValues(string(newStatus)).Inc()
			}
		}
	}

	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.emit(ctx, event.KindAppointmentUpdated, appointment)
	return appointment, nil
}

// DeleteAppointment removes an appointment unconditionally.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, event.KindAppointmentUpdated, map[string]interface{}{"id": id, "deleted": true})
	return nil
}

// BlockSlot records an administrative block. Conflicts with existing
// appointments are not re-checked: blocks state clinic-side constraints
// like holidays and are authoritative over bookings.
func (s *Service) BlockSlot(ctx context.Context, date model.Date, slot model.TimeSlot, reason string) (*model.BlockedSlot, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("invalid slot %s: start must precede end", slot)
	}

	blocked := &model.BlockedSlot{
		Date:     date,
		TimeSlot: slot,
		Reason:   reason,
	}
	if err := s.blocked.Insert(ctx, blocked); err != nil {
		return nil, err
	}
	return blocked, nil
}

func (s *Service) DeleteBlockedSlot(ctx context.Context, id uuid.UUID) error {
	return s.blocked.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentView, error) {
	views, err := s.appointments.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	s.resolveTreatments(views)
	return views, nil
}

func (s *Service) ListPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentView, error) {
	views, err := s.appointments.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	s.resolveTreatments(views)
	return views, nil
}

func (s *Service) ListBlockedSlots(ctx context.Context, date model.Date) ([]*model.BlockedSlot, error) {
	if date != "" {
		return s.blocked.ListForDate(ctx, date)
	}
	return s.blocked.List(ctx)
}

// resolveTreatments embeds catalog data; treatments are static reference
// data, never a persisted foreign key target.
func (s *Service) resolveTreatments(views []*model.AppointmentView) {
	for _, v := range views {
		if t, err := s.schedule.Treatment(v.TreatmentID); err == nil {
			treatment := t
			v.Treatment = &treatment
		}
	}
}

func (s *Service) emit(ctx context.Context, kind event.Kind, payload interface{}) {
	s.notifier.Emit(ctx, kind, payload)
	if s.metrics != nil {
		s.metrics.NotificationsTotal.WithLabelValues(string(kind)).Inc()
	}
}

func (s *Service) countBooking(outcome string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	}
}
