package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazaclinic/booking-api/internal/model"
	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
)

func testWeek() model.WeeklySchedule {
	return model.WeeklySchedule{
		OpenDays:           []time.Weekday{time.Saturday, time.Sunday, time.Monday, time.Tuesday, time.Wednesday},
		OpenTime:           13 * 60,
		CloseTime:          19 * 60,
		GranularityMinutes: 15,
	}
}

func testCatalog() *model.TreatmentCatalog {
	return model.NewTreatmentCatalog([]model.Treatment{
		{ID: 1, NameEN: "Dental Checkup", NameKU: "پشکنینی ددان", DurationMinutes: 30},
		{ID: 2, NameEN: "Teeth Cleaning", NameKU: "پاککردنەوەی ددان", DurationMinutes: 45},
		{ID: 3, NameEN: "Tooth Extraction", NameKU: "هەڵکێشانی ددان", DurationMinutes: 30},
	})
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(testWeek(), testCatalog())
	require.NoError(t, err)
	return svc
}

func TestNewServiceRejectsInvalidSchedule(t *testing.T) {
	week := testWeek()
	week.CloseTime = week.OpenTime
	_, err := NewService(week, testCatalog())
	assert.Error(t, err)
}

func TestTreatmentLookup(t *testing.T) {
	svc := newTestService(t)

	treatment, err := svc.Treatment(1)
	require.NoError(t, err)
	assert.Equal(t, "Dental Checkup", treatment.NameEN)
	assert.Equal(t, 30, treatment.DurationMinutes)

	_, err = svc.Treatment(99)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnknownTreatment, apperrors.CodeOf(err))
}

func TestIsDayOpen(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		date string
		want bool
	}{
		{"2026-08-29", true},  // Saturday
		{"2026-08-30", true},  // Sunday
		{"2026-08-31", true},  // Monday
		{"2026-09-02", true},  // Wednesday
		{"2026-09-03", false}, // Thursday
		{"2026-09-04", false}, // Friday
	}
	for _, tt := range tests {
		open, err := svc.IsDayOpen(model.Date(tt.date))
		require.NoError(t, err)
		assert.Equal(t, tt.want, open, "date %s", tt.date)
	}

	_, err := svc.IsDayOpen(model.Date("garbage"))
	assert.Error(t, err)
}

func TestGenerateSlots(t *testing.T) {
	svc := newTestService(t)

	// 30-minute treatment in a 13:00-19:00 day at 15-minute steps: the last
	// viable start is 18:30, so 23 candidates.
	slots := svc.GenerateSlots(30)
	require.Len(t, slots, 23)
	assert.Equal(t, "13:00", slots[0].Start.String())
	assert.Equal(t, "13:30", slots[0].End.String())
	assert.Equal(t, "18:30", slots[22].Start.String())
	assert.Equal(t, "19:00", slots[22].End.String())

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Start, slots[i].Start, "starts must strictly increase")
		assert.Equal(t, 30, slots[i].Duration())
	}

	// 15-minute treatment fills every step up to 18:45.
	assert.Len(t, svc.GenerateSlots(15), 24)

	// 45-minute treatment: last start 18:15.
	slots = svc.GenerateSlots(45)
	require.NotEmpty(t, slots)
	assert.Equal(t, "18:15", slots[len(slots)-1].Start.String())
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, svc.GenerateSlots(30), svc.GenerateSlots(30))
}

func TestGenerateSlotsDegenerate(t *testing.T) {
	svc := newTestService(t)

	// Longer than the whole day.
	assert.Empty(t, svc.GenerateSlots(6*60+1))
	// Exactly the whole day still fits once.
	assert.Len(t, svc.GenerateSlots(6*60), 1)

	assert.Nil(t, svc.GenerateSlots(0))
	assert.Nil(t, svc.GenerateSlots(-15))
}
