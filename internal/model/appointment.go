package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the four known states. Unrecognized
// status strings are rejected, never stored as given.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransitionTo encodes the lifecycle table:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return to == AppointmentStatusConfirmed || to == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return to == AppointmentStatusCompleted || to == AppointmentStatusCancelled
	}
	return false
}

// Creator identifies who initiated a booking.
type Creator string

const (
	CreatorPatient Creator = "patient"
	CreatorAdmin   Creator = "admin"
)

type Appointment struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	TreatmentID int               `db:"treatment_id" json:"treatment_id"`
	Date        Date              `db:"date" json:"date"`
	TimeSlot
	Status      AppointmentStatus `db:"status" json:"status"`
	Notes       string            `db:"notes" json:"notes,omitempty"`
	CreatedBy   Creator           `db:"created_by" json:"created_by"`
	ConfirmedAt *time.Time        `db:"confirmed_at" json:"confirmed_at,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// Active reports whether the appointment still occupies its interval.
// Cancelled appointments are kept for history but leave conflict
// consideration.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentStatusCancelled
}

// AppointmentView is an appointment joined with its patient and resolved
// treatment, the shape the admin and patient screens consume.
type AppointmentView struct {
	Appointment
	PatientName  string     `db:"patient_name" json:"patient_name"`
	PatientPhone string     `db:"patient_phone" json:"patient_phone"`
	Treatment    *Treatment `db:"-" json:"treatment,omitempty"`
}

type BookAppointmentRequest struct {
	TreatmentID int    `json:"treatment_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required,hhmm"`
	EndTime     string `json:"end_time" binding:"required,hhmm"`
	Notes       string `json:"notes" binding:"max=1000"`
}

type AdminCreateAppointmentRequest struct {
	PatientPhone string `json:"patient_phone" binding:"required,phone"`
	PatientName  string `json:"patient_name" binding:"required"`
	TreatmentID  int    `json:"treatment_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required,hhmm"`
	EndTime      string `json:"end_time" binding:"required,hhmm"`
	Notes        string `json:"notes" binding:"max=1000"`
	Status       string `json:"status"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type AppointmentFilters struct {
	Date      Date
	Status    AppointmentStatus
	PatientID uuid.UUID
}
