package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
	"github.com/nazaclinic/booking-api/internal/service/availability"
	scheduleService "github.com/nazaclinic/booking-api/internal/service/schedule"
)

type fakeAppointments struct {
	repository.AppointmentRepository
	appointments []*model.Appointment
}

func (f *fakeAppointments) ListForDate(_ context.Context, date model.Date, excludeStatus model.AppointmentStatus) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		if a.Date != date {
			continue
		}
		if excludeStatus != "" && a.Status == excludeStatus {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeBlocked struct {
	repository.BlockedSlotRepository
}

func (f *fakeBlocked) ListForDate(context.Context, model.Date) ([]*model.BlockedSlot, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, appointments []*model.Appointment) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := scheduleService.NewService(
		model.WeeklySchedule{
			OpenDays:           []time.Weekday{time.Saturday, time.Sunday, time.Monday, time.Tuesday, time.Wednesday},
			OpenTime:           13 * 60,
			CloseTime:          19 * 60,
			GranularityMinutes: 15,
		},
		model.NewTreatmentCatalog([]model.Treatment{
			{ID: 1, NameEN: "Dental Checkup", NameKU: "پشکنینی ددان", DurationMinutes: 30},
		}),
	)
	require.NoError(t, err)

	availabilitySvc := availability.NewService(&fakeAppointments{appointments: appointments}, &fakeBlocked{})

	engine := gin.New()
	NewHandler(svc, availabilitySvc).RegisterRoutes(engine.Group("/api"))
	return engine
}

func doGet(t *testing.T, engine *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGetSlotsOpenDay(t *testing.T) {
	engine := newTestRouter(t, nil)

	status, body := doGet(t, engine, "/api/slots/2026-08-29/1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["available"])
	slots := body["slots"].([]interface{})
	assert.Len(t, slots, 23)

	first := slots[0].(map[string]interface{})
	assert.Equal(t, "13:00", first["start"])
	assert.Equal(t, "13:30", first["end"])
}

func TestGetSlotsClosedDay(t *testing.T) {
	engine := newTestRouter(t, nil)

	status, body := doGet(t, engine, "/api/slots/2026-09-04/1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["available"])
	assert.NotEmpty(t, body["message"])
	assert.Empty(t, body["slots"])
}

func TestGetSlotsHidesBooked(t *testing.T) {
	booked := &model.Appointment{
		ID:       uuid.New(),
		Date:     model.Date("2026-08-29"),
		TimeSlot: model.TimeSlot{Start: 13 * 60, End: 13*60 + 30},
		Status:   model.AppointmentStatusConfirmed,
	}
	engine := newTestRouter(t, []*model.Appointment{booked})

	status, body := doGet(t, engine, "/api/slots/2026-08-29/1")
	require.Equal(t, http.StatusOK, status)
	slots := body["slots"].([]interface{})
	// The booked half hour removes the slots touching it.
	assert.Len(t, slots, 21)
	first := slots[0].(map[string]interface{})
	assert.Equal(t, "13:30", first["start"])
}

func TestGetSlotsShowAll(t *testing.T) {
	booked := &model.Appointment{
		ID:       uuid.New(),
		Date:     model.Date("2026-08-29"),
		TimeSlot: model.TimeSlot{Start: 13 * 60, End: 13*60 + 30},
		Status:   model.AppointmentStatusConfirmed,
	}
	engine := newTestRouter(t, []*model.Appointment{booked})

	status, body := doGet(t, engine, "/api/slots/2026-08-29/1?showAll=true")
	require.Equal(t, http.StatusOK, status)
	slots := body["slots"].([]interface{})
	require.Len(t, slots, 23)

	first := slots[0].(map[string]interface{})
	assert.Equal(t, true, first["booked"])
	assert.Equal(t, "13:00 - 13:30", first["display"])
	third := slots[2].(map[string]interface{})
	assert.Equal(t, false, third["booked"])
}

func TestGetSlotsUnknownTreatment(t *testing.T) {
	engine := newTestRouter(t, nil)

	status, body := doGet(t, engine, "/api/slots/2026-08-29/99")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "unknown_treatment", body["code"])
}

func TestGetSlotsBadInput(t *testing.T) {
	engine := newTestRouter(t, nil)

	status, _ := doGet(t, engine, "/api/slots/not-a-date/1")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doGet(t, engine, "/api/slots/2026-08-29/abc")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListTreatments(t *testing.T) {
	engine := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/treatments", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var treatments []model.Treatment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &treatments))
	require.Len(t, treatments, 1)
	assert.Equal(t, "Dental Checkup", treatments[0].NameEN)
}

func TestGetSchedule(t *testing.T) {
	engine := newTestRouter(t, nil)

	status, body := doGet(t, engine, "/api/schedule")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "13:00", body["open_time"])
	assert.Equal(t, "19:00", body["close_time"])
	assert.Equal(t, float64(15), body["slot_duration"])
}
