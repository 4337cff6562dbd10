package model

import (
	"time"

	"github.com/google/uuid"
)

// BlockedSlot is an administrator-declared unavailable interval, independent
// of any patient booking. Created and deleted by admin action, never mutated.
type BlockedSlot struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Date Date      `db:"date" json:"date"`
	TimeSlot
	Reason    string    `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type BlockSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Reason    string `json:"reason" binding:"max=500"`
}
