package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"january", 2025, 0, 31},
		{"april", 2025, 3, 30},
		{"february common year", 2025, 1, 28},
		{"february leap year", 2024, 1, 29},
		{"december", 2025, 11, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestWeekdays(t *testing.T) {
	// June 2025 opens on a Sunday and has 21 weekdays
	weekdays := Weekdays(2025, 5)
	assert.Len(t, weekdays, 21)
	assert.Equal(t, 2, weekdays[0])
	assert.Equal(t, 30, weekdays[len(weekdays)-1])
	assert.NotContains(t, weekdays, 1)
	assert.NotContains(t, weekdays, 7)
	assert.NotContains(t, weekdays, 8)
}

func TestWeekendBlocks(t *testing.T) {
	t.Run("month opening on a Sunday yields a single-day first block", func(t *testing.T) {
		blocks := WeekendBlocks(2025, 5) // June 2025
		assert.Equal(t, [][]int{{1}, {7, 8}, {14, 15}, {21, 22}, {28, 29}}, blocks)
	})

	t.Run("month closing on a Saturday yields a single-day last block", func(t *testing.T) {
		blocks := WeekendBlocks(2026, 0) // January 2026
		assert.Equal(t, [][]int{{3, 4}, {10, 11}, {17, 18}, {24, 25}, {31}}, blocks)
	})

	t.Run("month with only full blocks", func(t *testing.T) {
		blocks := WeekendBlocks(2025, 1) // February 2025
		assert.Equal(t, [][]int{{1, 2}, {8, 9}, {15, 16}, {22, 23}}, blocks)
	})
}

func TestDefaultHolidays(t *testing.T) {
	resolver := DefaultHolidays()

	assert.Equal(t, []int{1, 6}, resolver(2025, 0))
	assert.Equal(t, []int{2, 23, 30}, resolver(2025, 5))
	assert.Empty(t, resolver(2025, 1))
	assert.Empty(t, resolver(2025, 8))

	// Mutating the returned slice must not leak into the table
	days := resolver(2025, 0)
	days[0] = 99
	assert.Equal(t, []int{1, 6}, resolver(2025, 0))
}

func TestMinimumMonthlyHours(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		resolver HolidayResolver
		want     int
	}{
		{
			// 30 days, 4 Sundays, no holidays: 26 working days
			name:     "september without holidays",
			year:     2025,
			month:    8,
			resolver: nil,
			want:     191,
		},
		{
			// 30 days, 5 Sundays, 3 holidays: 22 working days
			name:     "june with holidays",
			year:     2025,
			month:    5,
			resolver: nil,
			want:     161,
		},
		{
			// August 18th 2024 is both a Sunday and a holiday and must not
			// be subtracted twice: 31 - 4 - 2 + 1 = 26 working days
			name:     "holiday on a sunday",
			year:     2024,
			month:    7,
			resolver: nil,
			want:     191,
		},
		{
			name:  "custom resolver",
			year:  2025,
			month: 8,
			resolver: func(year, month int) []int {
				return []int{1, 2} // both weekdays in September 2025
			},
			want: 176, // 24 working days
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinimumMonthlyHours(tt.year, tt.month, tt.resolver))
		})
	}
}
