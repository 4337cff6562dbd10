package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusCompleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.Terminal())
	assert.False(t, AppointmentStatusConfirmed.Terminal())
	assert.True(t, AppointmentStatusCompleted.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())
}

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.False(t, AppointmentStatus("rescheduled").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}

func TestAppointmentActive(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusCancelled}
	assert.False(t, a.Active())

	for _, s := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted} {
		a := &Appointment{Status: s}
		assert.True(t, a.Active(), "status %s", s)
	}
}
