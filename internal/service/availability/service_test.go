package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
)

// fakeAppointments serves ListForDate from memory; the embedded interface
// covers the methods this package never calls.
type fakeAppointments struct {
	repository.AppointmentRepository
	byDate map[model.Date][]*model.Appointment
}

func (f *fakeAppointments) ListForDate(_ context.Context, date model.Date, excludeStatus model.AppointmentStatus) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.byDate[date] {
		if excludeStatus != "" && a.Status == excludeStatus {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeBlocked struct {
	repository.BlockedSlotRepository
	byDate map[model.Date][]*model.BlockedSlot
}

func (f *fakeBlocked) ListForDate(_ context.Context, date model.Date) ([]*model.BlockedSlot, error) {
	return f.byDate[date], nil
}

func slot(start, end string) model.TimeSlot {
	s, err := model.ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	e, err := model.ParseTimeOfDay(end)
	if err != nil {
		panic(err)
	}
	return model.TimeSlot{Start: s, End: e}
}

const testDate = model.Date("2026-08-29")

func newTestService(appointments []*model.Appointment, blocked []*model.BlockedSlot) *Service {
	return NewService(
		&fakeAppointments{byDate: map[model.Date][]*model.Appointment{testDate: appointments}},
		&fakeBlocked{byDate: map[model.Date][]*model.BlockedSlot{testDate: blocked}},
	)
}

func TestIsAvailableEmptyDay(t *testing.T) {
	svc := newTestService(nil, nil)

	free, err := svc.IsAvailable(context.Background(), testDate, slot("13:00", "13:30"), nil)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsAvailableAppointmentConflict(t *testing.T) {
	booked := &model.Appointment{
		ID:       uuid.New(),
		Date:     testDate,
		TimeSlot: slot("14:00", "14:30"),
		Status:   model.AppointmentStatusConfirmed,
	}
	svc := newTestService([]*model.Appointment{booked}, nil)

	tests := []struct {
		name string
		slot model.TimeSlot
		want bool
	}{
		{"same interval", slot("14:00", "14:30"), false},
		{"overlapping tail", slot("14:15", "14:45"), false},
		{"overlapping head", slot("13:45", "14:15"), false},
		{"adjacent before", slot("13:30", "14:00"), true},
		{"adjacent after", slot("14:30", "15:00"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free, err := svc.IsAvailable(context.Background(), testDate, tt.slot, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, free)
		})
	}
}

func TestIsAvailableIgnoresCancelled(t *testing.T) {
	cancelled := &model.Appointment{
		ID:       uuid.New(),
		Date:     testDate,
		TimeSlot: slot("14:00", "14:30"),
		Status:   model.AppointmentStatusCancelled,
	}
	svc := newTestService([]*model.Appointment{cancelled}, nil)

	free, err := svc.IsAvailable(context.Background(), testDate, slot("14:00", "14:30"), nil)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsAvailableBlockedSlot(t *testing.T) {
	blocked := &model.BlockedSlot{
		ID:       uuid.New(),
		Date:     testDate,
		TimeSlot: slot("13:00", "19:00"),
		Reason:   "holiday",
	}
	svc := newTestService(nil, []*model.BlockedSlot{blocked})

	// Every sub-interval of a full-day block is taken.
	for _, s := range []model.TimeSlot{slot("13:00", "13:30"), slot("15:00", "15:15"), slot("18:30", "19:00")} {
		free, err := svc.IsAvailable(context.Background(), testDate, s, nil)
		require.NoError(t, err)
		assert.False(t, free, "slot %s", s)
	}
}

func TestIsAvailableExcludesOwnAppointment(t *testing.T) {
	id := uuid.New()
	booked := &model.Appointment{
		ID:       id,
		Date:     testDate,
		TimeSlot: slot("14:00", "14:30"),
		Status:   model.AppointmentStatusConfirmed,
	}
	svc := newTestService([]*model.Appointment{booked}, nil)

	free, err := svc.IsAvailable(context.Background(), testDate, slot("14:00", "14:30"), &id)
	require.NoError(t, err)
	assert.True(t, free)

	other := uuid.New()
	free, err = svc.IsAvailable(context.Background(), testDate, slot("14:00", "14:30"), &other)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestAnnotateSlots(t *testing.T) {
	booked := &model.Appointment{
		ID:       uuid.New(),
		Date:     testDate,
		TimeSlot: slot("13:30", "14:00"),
		Status:   model.AppointmentStatusPending,
	}
	svc := newTestService([]*model.Appointment{booked}, nil)

	candidates := []model.TimeSlot{
		slot("13:00", "13:30"),
		slot("13:30", "14:00"),
		slot("14:00", "14:30"),
	}
	annotated, err := svc.AnnotateSlots(context.Background(), testDate, candidates)
	require.NoError(t, err)
	require.Len(t, annotated, 3)

	assert.False(t, annotated[0].Booked)
	assert.True(t, annotated[1].Booked)
	assert.False(t, annotated[2].Booked)
	assert.Equal(t, "13:00 - 13:30", annotated[0].Display)
}

func TestAvailableSlots(t *testing.T) {
	booked := &model.Appointment{
		ID:       uuid.New(),
		Date:     testDate,
		TimeSlot: slot("13:30", "14:00"),
		Status:   model.AppointmentStatusPending,
	}
	svc := newTestService([]*model.Appointment{booked}, nil)

	candidates := []model.TimeSlot{
		slot("13:00", "13:30"),
		slot("13:30", "14:00"),
		slot("14:00", "14:30"),
	}
	free, err := svc.AvailableSlots(context.Background(), testDate, candidates)
	require.NoError(t, err)
	assert.Equal(t, []model.TimeSlot{candidates[0], candidates[2]}, free)
}
