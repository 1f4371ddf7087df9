package booking

import (
	"testing"
	"time"

	"lumora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid() Grid {
	return Grid{
		OpenMinute:     9 * 60,
		CloseMinute:    16*60 + 30,
		StepMinutes:    30,
		MeetingMinutes: 60,
		Location:       time.UTC,
	}
}

func TestGenerateDaySlots_FutureDayYieldsFullGrid(t *testing.T) {
	grid := testGrid()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	slots := grid.GenerateDaySlots("2025-03-10", now)

	require.Len(t, slots, 16)
	assert.Equal(t, models.TimeSlot{Date: "2025-03-10", Start: 9 * 60}, slots[0])
	assert.Equal(t, models.TimeSlot{Date: "2025-03-10", Start: 16*60 + 30}, slots[15])
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30, slots[i].Start-slots[i-1].Start)
	}
}

func TestGenerateDaySlots_TodayExcludesElapsedStarts(t *testing.T) {
	grid := testGrid()
	now := time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC)

	slots := grid.GenerateDaySlots("2025-03-10", now)

	require.Len(t, slots, 5)
	assert.Equal(t, 14*60+30, slots[0].Start)
	assert.Equal(t, 16*60+30, slots[len(slots)-1].Start)
	for _, s := range slots {
		assert.Greater(t, s.Start, 14*60+5)
	}
}

func TestGenerateDaySlots_StartEqualToNowIsExcluded(t *testing.T) {
	grid := testGrid()
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	slots := grid.GenerateDaySlots("2025-03-10", now)

	require.NotEmpty(t, slots)
	assert.Equal(t, 15*60, slots[0].Start)
}

func TestGenerateDaySlots_PastDayIsEmpty(t *testing.T) {
	grid := testGrid()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Empty(t, grid.GenerateDaySlots("2025-03-09", now))
}

func TestGenerateDaySlots_ElapsedBusinessDayIsEmpty(t *testing.T) {
	grid := testGrid()
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	assert.Empty(t, grid.GenerateDaySlots("2025-03-10", now))
}

func TestGenerateDaySlots_InvalidDateIsEmpty(t *testing.T) {
	grid := testGrid()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Empty(t, grid.GenerateDaySlots("not-a-date", now))
}

func TestGridContains(t *testing.T) {
	grid := testGrid()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, grid.Contains(models.TimeSlot{Date: "2025-03-10", Start: 10 * 60}, now))
	// Off-grid start.
	assert.False(t, grid.Contains(models.TimeSlot{Date: "2025-03-10", Start: 10*60 + 15}, now))
	// Past day.
	assert.False(t, grid.Contains(models.TimeSlot{Date: "2025-02-01", Start: 10 * 60}, now))
}
