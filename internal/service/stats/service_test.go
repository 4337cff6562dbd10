package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
	"github.com/nazaclinic/booking-api/internal/service/schedule"
)

type fakeAppointments struct {
	repository.AppointmentRepository
	todayCount    int
	pendingCount  int
	weekCompleted int
	upcoming      []*model.AppointmentView
	calls         int

	gotToday   model.Date
	gotWeekAgo model.Date
}

func (f *fakeAppointments) CountForDate(_ context.Context, date model.Date, _ model.AppointmentStatus) (int, error) {
	f.calls++
	f.gotToday = date
	return f.todayCount, nil
}

func (f *fakeAppointments) CountByStatus(_ context.Context, _ model.AppointmentStatus) (int, error) {
	return f.pendingCount, nil
}

func (f *fakeAppointments) CountCompletedSince(_ context.Context, date model.Date) (int, error) {
	f.gotWeekAgo = date
	return f.weekCompleted, nil
}

func (f *fakeAppointments) ListUpcoming(_ context.Context, _ model.Date, limit int) ([]*model.AppointmentView, error) {
	if len(f.upcoming) > limit {
		return f.upcoming[:limit], nil
	}
	return f.upcoming, nil
}

type fakePatients struct {
	repository.PatientRepository
	total int
}

func (f *fakePatients) Count(_ context.Context) (int, error) {
	return f.total, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
func (c fixedClock) Today() time.Time {
	return time.Date(c.now.Year(), c.now.Month(), c.now.Day(), 0, 0, 0, 0, c.now.Location())
}

func testSchedule(t *testing.T) *schedule.Service {
	t.Helper()
	svc, err := schedule.NewService(
		model.WeeklySchedule{
			OpenDays:           []time.Weekday{time.Saturday, time.Sunday},
			OpenTime:           13 * 60,
			CloseTime:          19 * 60,
			GranularityMinutes: 15,
		},
		model.NewTreatmentCatalog([]model.Treatment{
			{ID: 1, NameEN: "Dental Checkup", DurationMinutes: 30},
		}),
	)
	require.NoError(t, err)
	return svc
}

func TestDashboard(t *testing.T) {
	appointments := &fakeAppointments{
		todayCount:    4,
		pendingCount:  2,
		weekCompleted: 7,
		upcoming: []*model.AppointmentView{
			{Appointment: model.Appointment{TreatmentID: 1}},
			{Appointment: model.Appointment{TreatmentID: 99}},
		},
	}
	patients := &fakePatients{total: 31}
	clk := fixedClock{now: time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)}

	svc := NewService(appointments, patients, testSchedule(t), clk)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TodayAppointments)
	assert.Equal(t, 2, stats.PendingAppointments)
	assert.Equal(t, 31, stats.TotalPatients)
	assert.Equal(t, 7, stats.ThisWeekCompleted)
	require.Len(t, stats.UpcomingAppointments, 2)

	// Date windows come from the injected clock.
	assert.Equal(t, model.Date("2026-08-29"), appointments.gotToday)
	assert.Equal(t, model.Date("2026-08-22"), appointments.gotWeekAgo)

	// Known treatments are resolved onto upcoming rows; unknown ids are left bare.
	require.NotNil(t, stats.UpcomingAppointments[0].Treatment)
	assert.Equal(t, "Dental Checkup", stats.UpcomingAppointments[0].Treatment.NameEN)
	assert.Nil(t, stats.UpcomingAppointments[1].Treatment)
}

func TestDashboardCaching(t *testing.T) {
	appointments := &fakeAppointments{todayCount: 1}
	clk := fixedClock{now: time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)}
	svc := NewService(appointments, &fakePatients{}, testSchedule(t), clk)

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, appointments.calls, "second read must come from cache")

	svc.Invalidate()
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, appointments.calls, "invalidation forces a fresh read")
}
