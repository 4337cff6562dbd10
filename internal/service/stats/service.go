package stats

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
	"github.com/nazaclinic/booking-api/internal/service/schedule"
	"github.com/nazaclinic/booking-api/pkg/clock"
)

const (
	cacheKey      = "dashboard"
	cacheTTL      = 30 * time.Second
	upcomingLimit = 10
)

// Service aggregates the admin dashboard numbers. "Today" always comes from
// the injected clock, and results are cached briefly since the dashboard
// polls.
type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	schedule     *schedule.Service
	clock        clock.Clock
	cache        *gocache.Cache
}

func NewService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	scheduleSvc *schedule.Service,
	clk clock.Clock,
) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		schedule:     scheduleSvc,
		clock:        clk,
		cache:        gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Service) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*model.DashboardStats), nil
	}

	today := model.DateOf(s.clock.Today())
	weekAgo := model.DateOf(s.clock.Today().AddDate(0, 0, -7))

	todayCount, err := s.appointments.CountForDate(ctx, today, model.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}

	pendingCount, err := s.appointments.CountByStatus(ctx, model.AppointmentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending appointments: %w", err)
	}

	patientCount, err := s.patients.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	weekCompleted, err := s.appointments.CountCompletedSince(ctx, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed appointments: %w", err)
	}

	upcoming, err := s.appointments.ListUpcoming(ctx, today, upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	for _, v := range upcoming {
		if t, err := s.schedule.Treatment(v.TreatmentID); err == nil {
			treatment := t
			v.Treatment = &treatment
		}
	}

	stats := &model.DashboardStats{
		TodayAppointments:    todayCount,
		PendingAppointments:  pendingCount,
		TotalPatients:        patientCount,
		ThisWeekCompleted:    weekCompleted,
		UpcomingAppointments: upcoming,
	}

	s.cache.Set(cacheKey, stats, gocache.DefaultExpiration)
	return stats, nil
}

// Invalidate drops the cached dashboard; called after booking mutations so
// the admin sees fresh numbers immediately.
func (s *Service) Invalidate() {
	s.cache.Delete(cacheKey)
}
