package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeeklyHours(t *testing.T) {
	descriptions := []string{
		"Monday: 9:00 AM – 5:00 PM",
		"Tuesday: 9:00 AM – 5:00 PM",
		"Wednesday: 10:00 AM – 6:00 PM",
		"Thursday: 9:00 AM – 5:00 PM",
		"Friday: 9:00 AM – 1:00 PM",
		"Saturday: Closed",
		"Sunday: Kapalı",
	}

	hours := ParseWeeklyHours(descriptions)
	require.Len(t, hours, 7)

	assert.Equal(t, "Monday", hours[0].Day)
	assert.True(t, hours[0].IsOpen)
	assert.Equal(t, "9:00 AM", hours[0].Start)
	assert.Equal(t, "5:00 PM", hours[0].End)

	assert.Equal(t, "10:00 AM", hours[2].Start)
	assert.Equal(t, "6:00 PM", hours[2].End)

	assert.False(t, hours[5].IsOpen)
	assert.Empty(t, hours[5].Start)
	assert.False(t, hours[6].IsOpen)
}

func TestParseWeeklyHours_MissingScheduleUsesDefaults(t *testing.T) {
	for _, descriptions := range [][]string{nil, {"Monday: 9:00 AM – 5:00 PM"}} {
		hours := ParseWeeklyHours(descriptions)
		require.Len(t, hours, 7)

		for i := 0; i < 5; i++ {
			assert.True(t, hours[i].IsOpen)
			assert.Equal(t, "09:00", hours[i].Start)
			assert.Equal(t, "17:00", hours[i].End)
		}
		assert.False(t, hours[5].IsOpen)
		assert.False(t, hours[6].IsOpen)
	}
}

func TestParseWeeklyHours_UnparseableEntryFallsBackOpen(t *testing.T) {
	descriptions := []string{
		"Monday: Open 24 hours",
		"Tuesday: 9:00 AM – 5:00 PM",
		"Wednesday: 9:00 AM – 5:00 PM",
		"Thursday: 9:00 AM – 5:00 PM",
		"Friday: 9:00 AM – 5:00 PM",
		"Saturday: 9:00 AM – 5:00 PM",
		"Sunday: 9:00 AM – 5:00 PM",
	}

	hours := ParseWeeklyHours(descriptions)
	require.Len(t, hours, 7)

	assert.True(t, hours[0].IsOpen)
	assert.Equal(t, "09:00", hours[0].Start)
	assert.Equal(t, "17:00", hours[0].End)
	assert.Equal(t, "9:00 AM", hours[6].Start)
}

func TestParseWeeklyHours_DashedEntryKeepsItsTokens(t *testing.T) {
	descriptions := []string{
		"Monday: – 5:00 PM",
		"Tuesday: 9:00 AM – 5:00 PM",
		"Wednesday: 9:00 AM – 5:00 PM",
		"Thursday: 9:00 AM – 5:00 PM",
		"Friday: 9:00 AM – 5:00 PM",
		"Saturday: Closed",
		"Sunday: Closed",
	}

	hours := ParseWeeklyHours(descriptions)
	require.Len(t, hours, 7)

	// Two dash-separated tokens are emitted as-is, even when one is empty.
	assert.True(t, hours[0].IsOpen)
	assert.Empty(t, hours[0].Start)
	assert.Equal(t, "5:00 PM", hours[0].End)
}
