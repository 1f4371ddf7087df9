package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"lumora/clients/calendar"
	"lumora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCalendar struct {
	busy  []models.BusyInterval
	err   error
	calls int
}

func (s *stubCalendar) BusyIntervals(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.busy, nil
}

func (s *stubCalendar) CreateEvent(ctx context.Context, req calendar.EventRequest) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	return errors.New("not implemented")
}

func availabilityFixture(cal calendar.Client) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Calendar: cal,
		Grid:     testGrid(),
		Now:      func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
		Logger:   zap.NewNop(),
	}
}

func starts(slots []models.TimeSlot) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestAvailableSlots_SubtractsBusySpans(t *testing.T) {
	cal := &stubCalendar{busy: []models.BusyInterval{
		{Date: "2025-03-10", Start: 10 * 60, End: 11 * 60},
		{Date: "2025-03-10", Start: 12 * 60, End: 13 * 60},
		{Date: "2025-03-12", Start: 9 * 60, End: 10 * 60},
	}}
	svc := availabilityFixture(cal)

	result, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	require.Len(t, result.Slots, 10)
	// Each hour-long event also blocks the preceding half-hour start,
	// whose meeting would run into it.
	for _, blockedStart := range []int{570, 600, 630, 690, 720, 750} {
		assert.NotContains(t, starts(result.Slots), blockedStart)
	}
	// Ascending order is preserved.
	for i := 1; i < len(result.Slots); i++ {
		assert.Less(t, result.Slots[i-1].Start, result.Slots[i].Start)
	}
	// Other days in the month appear in the decoration map only.
	assert.Equal(t, []int{540, 570}, result.BookedByDay["2025-03-12"])
	assert.Equal(t, []int{570, 600, 630, 690, 720, 750}, result.BookedByDay["2025-03-10"])
}

func TestAvailableSlots_HourEventBlocksEveryOverlappingStart(t *testing.T) {
	// A 10:00-11:00 event occupies two grid steps and collides with a
	// meeting started at 9:30. None of the three may be offered: the
	// store would reject all of them at write time.
	cal := &stubCalendar{busy: []models.BusyInterval{
		{Date: "2025-03-10", Start: 10 * 60, End: 11 * 60},
	}}
	svc := availabilityFixture(cal)

	result, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	require.Len(t, result.Slots, 13)
	free := starts(result.Slots)
	assert.NotContains(t, free, 9*60+30)
	assert.NotContains(t, free, 10*60)
	assert.NotContains(t, free, 10*60+30)
	assert.Contains(t, free, 9*60)
	assert.Contains(t, free, 11*60)
}

func TestAvailableSlots_OffGridEventBlocksCollidingStarts(t *testing.T) {
	// Manually created 10:05-11:05 event, not aligned to the grid.
	cal := &stubCalendar{busy: []models.BusyInterval{
		{Date: "2025-03-10", Start: 10*60 + 5, End: 11*60 + 5},
	}}
	svc := availabilityFixture(cal)

	result, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	require.NoError(t, err)

	free := starts(result.Slots)
	for _, blockedStart := range []int{570, 600, 630, 660} {
		assert.NotContains(t, free, blockedStart)
	}
	assert.Contains(t, free, 540)
	assert.Contains(t, free, 690)
}

func TestAvailableSlots_IsIdempotentWithoutNewBookings(t *testing.T) {
	cal := &stubCalendar{busy: []models.BusyInterval{{Date: "2025-03-10", Start: 12 * 60, End: 13 * 60}}}
	svc := availabilityFixture(cal)

	first, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	require.NoError(t, err)
	second, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 2, cal.calls)
}

func TestAvailableSlots_DegradesWhenStoreUnreachable(t *testing.T) {
	cal := &stubCalendar{err: errors.New("connection refused")}
	svc := availabilityFixture(cal)

	result, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Warning)
	// Optimistic fallback: the full grid, unfiltered.
	assert.Len(t, result.Slots, 16)
}

func TestAvailableSlots_DegradesWithoutCalendarClient(t *testing.T) {
	svc := availabilityFixture(nil)

	result, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.True(t, result.Degraded)
}

func TestAvailableSlots_RejectsInvalidDate(t *testing.T) {
	svc := availabilityFixture(&stubCalendar{})

	_, err := svc.AvailableSlots(context.Background(), "10/03/2025")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "date", validation.Field)
}
