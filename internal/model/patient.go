package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient is keyed by phone number; the record is created or refreshed on
// first contact and never deleted here.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Phone     string    `db:"phone" json:"phone"`
	Name      string    `db:"name" json:"name"`
	Age       *int      `db:"age" json:"age,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PatientWithStats augments a patient with booking counts for the admin list.
type PatientWithStats struct {
	Patient
	TotalAppointments     int `db:"total_appointments" json:"total_appointments"`
	CompletedAppointments int `db:"completed_appointments" json:"completed_appointments"`
}

// NormalizePhone strips everything but digits, the canonical key form.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type PatientAuthRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
	Name  string `json:"name" binding:"required"`
	Age   *int   `json:"age" binding:"omitempty,gt=0,lt=130"`
}
