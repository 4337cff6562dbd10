package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day in YYYY-MM-DD form, the clinic's single locale.
type Date string

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

func (d Date) Weekday() (time.Weekday, error) {
	t, err := d.Time()
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

func (d Date) String() string {
	return string(d)
}

// TimeOfDay is a minute-of-day clock value. It round-trips as "HH:MM" in
// JSON and in the store, matching the persisted layout.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeSlot is a half-open interval [Start, End) within a single day.
type TimeSlot struct {
	Start TimeOfDay `db:"start_time" json:"start"`
	End   TimeOfDay `db:"end_time" json:"end"`
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start < other.End && other.Start < s.End
}

func (s TimeSlot) Duration() int {
	return int(s.End - s.Start)
}

func (s TimeSlot) Valid() bool {
	return s.Start < s.End
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s - %s", s.Start, s.End)
}

// WeeklySchedule is the clinic's fixed operating pattern. Immutable after
// construction; injected, never a process-wide singleton.
type WeeklySchedule struct {
	OpenDays           []time.Weekday `json:"open_days"`
	OpenTime           TimeOfDay      `json:"open_time"`
	CloseTime          TimeOfDay      `json:"close_time"`
	GranularityMinutes int            `json:"slot_duration"`
}

func (w WeeklySchedule) IsOpenOn(day time.Weekday) bool {
	for _, d := range w.OpenDays {
		if d == day {
			return true
		}
	}
	return false
}

func (w WeeklySchedule) Validate() error {
	if w.OpenTime >= w.CloseTime {
		return fmt.Errorf("open time %s must be before close time %s", w.OpenTime, w.CloseTime)
	}
	if w.GranularityMinutes <= 0 {
		return fmt.Errorf("slot granularity must be positive, got %d", w.GranularityMinutes)
	}
	return nil
}
