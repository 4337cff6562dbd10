package schedule

import (
	"fmt"

	"github.com/nazaclinic/booking-api/internal/model"
	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
)

// Service answers the two static questions of the clinic's week: is a day
// open, and which candidate slots fit a treatment. It holds only immutable
// configuration and performs no I/O.
type Service struct {
	week    model.WeeklySchedule
	catalog *model.TreatmentCatalog
}

func NewService(week model.WeeklySchedule, catalog *model.TreatmentCatalog) (*Service, error) {
	if err := week.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	return &Service{week: week, catalog: catalog}, nil
}

func (s *Service) Week() model.WeeklySchedule {
	return s.week
}

func (s *Service) Treatments() []model.Treatment {
	return s.catalog.List()
}

// Treatment resolves a treatment id. Unknown ids are an error, not a
// silent default.
func (s *Service) Treatment(id int) (model.Treatment, error) {
	t, ok := s.catalog.Lookup(id)
	if !ok {
		return model.Treatment{}, apperrors.UnknownTreatment(id)
	}
	return t, nil
}

// IsDayOpen reports whether the date's weekday is in the configured open set.
func (s *Service) IsDayOpen(date model.Date) (bool, error) {
	day, err := date.Weekday()
	if err != nil {
		return false, err
	}
	return s.week.IsOpenOn(day), nil
}

// GenerateSlots emits every candidate interval [t, t+duration) with
// t stepped by the configured granularity from open time, while the
// interval still fits before close. A trailing partial slot is dropped.
// The result is deterministic for a (date, duration) pair and strictly
// increasing in start time; whether the day is open is checked separately.
func (s *Service) GenerateSlots(duration int) []model.TimeSlot {
	if duration <= 0 {
		return nil
	}

	var slots []model.TimeSlot
	step := model.TimeOfDay(s.week.GranularityMinutes)
	d := model.TimeOfDay(duration)

	for t := s.week.OpenTime; t+d <= s.week.CloseTime; t += step {
		slots = append(slots, model.TimeSlot{Start: t, End: t + d})
	}
	return slots
}
