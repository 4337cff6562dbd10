package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
)

// Service decides whether an interval on a date is free of blocks and
// active appointments. The verdict is advisory until the orchestrator
// re-checks it under the per-date lock at commit time.
type Service struct {
	appointments repository.AppointmentRepository
	blocked      repository.BlockedSlotRepository
}

func NewService(appointments repository.AppointmentRepository, blocked repository.BlockedSlotRepository) *Service {
	return &Service{appointments: appointments, blocked: blocked}
}

// daySnapshot is one consistent read of everything occupying a date.
type daySnapshot struct {
	blocked      []*model.BlockedSlot
	appointments []*model.Appointment
}

func (s *Service) snapshot(ctx context.Context, date model.Date) (*daySnapshot, error) {
	blocked, err := s.blocked.ListForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked slots: %w", err)
	}

	appointments, err := s.appointments.ListForDate(ctx, date, model.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return &daySnapshot{blocked: blocked, appointments: appointments}, nil
}

func (snap *daySnapshot) conflicts(slot model.TimeSlot, excludeID *uuid.UUID) bool {
	for _, b := range snap.blocked {
		if slot.Overlaps(b.TimeSlot) {
			return true
		}
	}
	for _, a := range snap.appointments {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if slot.Overlaps(a.TimeSlot) {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the interval overlaps no blocked slot and no
// active appointment on the date. excludeID skips one appointment, for
// in-place edits re-validating their own interval.
func (s *Service) IsAvailable(ctx context.Context, date model.Date, slot model.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	snap, err := s.snapshot(ctx, date)
	if err != nil {
		return false, err
	}
	return !snap.conflicts(slot, excludeID), nil
}

// AnnotateSlots marks each candidate slot booked or free against a single
// snapshot of the date, so one response never mixes two store states.
func (s *Service) AnnotateSlots(ctx context.Context, date model.Date, slots []model.TimeSlot) ([]model.SlotWithStatus, error) {
	snap, err := s.snapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]model.SlotWithStatus, 0, len(slots))
	for _, slot := range slots {
		out = append(out, model.SlotWithStatus{
			TimeSlot: slot,
			Display:  slot.String(),
			Booked:   snap.conflicts(slot, nil),
		})
	}
	return out, nil
}

// AvailableSlots filters candidates down to the free ones.
func (s *Service) AvailableSlots(ctx context.Context, date model.Date, slots []model.TimeSlot) ([]model.TimeSlot, error) {
	annotated, err := s.AnnotateSlots(ctx, date, slots)
	if err != nil {
		return nil, err
	}

	var free []model.TimeSlot
	for _, slot := range annotated {
		if !slot.Booked {
			free = append(free, slot.TimeSlot)
		}
	}
	return free, nil
}
