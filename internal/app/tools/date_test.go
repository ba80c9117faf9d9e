package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Nov 15, 2025: January has passed, December is upcoming, the 18th of
// November is still ahead.
var nov15 = time.Date(2025, time.November, 15, 10, 0, 0, 0, time.UTC)

func TestCurrentDateInfo_MonthYearGuide(t *testing.T) {
	info := CurrentDateInfo(nov15)

	assert.Contains(t, info, "Today: Saturday, November 15, 2025 (2025-11-15)")
	assert.Contains(t, info, "Tomorrow: 2025-11-16")
	assert.Contains(t, info, "Next week: 2025-11-22")

	// Passed months roll to next year, upcoming months keep this year.
	assert.Contains(t, info, "January → 2026")
	assert.Contains(t, info, "October → 2026")
	assert.Contains(t, info, "December → 2025")
	// The current month is conditional on the requested day.
	assert.Contains(t, info, "November → 2025 (if day > 15) or 2026 (if day <= 15)")
}

func TestCurrentDateInfo_EighteenthUpcoming(t *testing.T) {
	info := CurrentDateInfo(nov15)
	assert.Contains(t, info, "18th of this month (November) is 2025-11-18")
}

func TestNextEighteenth(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "before the 18th stays in this month",
			now:  time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC),
			want: "18th of this month (November) is 2025-11-18",
		},
		{
			name: "after the 18th moves to next month",
			now:  time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
			want: "18th of next month is 2025-12-18",
		},
		{
			name: "december rolls into january of next year",
			now:  time.Date(2025, time.December, 19, 0, 0, 0, 0, time.UTC),
			want: "18th of next month is 2026-01-18",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextEighteenth(tt.now))
		})
	}
}

func TestCurrentDateInfo_JanuaryEdge(t *testing.T) {
	// In January nothing has passed yet; every month maps to this year.
	info := CurrentDateInfo(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, info, "February → 2026")
	assert.Contains(t, info, "December → 2026")
	assert.NotContains(t, info, "February → 2027")
}
