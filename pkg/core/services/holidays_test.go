package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicavida/roster/internal/config"
)

func TestBuildHolidayResolver_NoRules(t *testing.T) {
	resolver, err := BuildHolidayResolver(nil)
	require.NoError(t, err)

	// Falls back to the built-in table
	assert.Equal(t, []int{1, 6}, resolver(2025, 0))
	assert.Empty(t, resolver(2025, 8))
}

func TestBuildHolidayResolver_MergesRuleMatches(t *testing.T) {
	resolver, err := BuildHolidayResolver([]config.HolidayRule{
		{RRule: "FREQ=YEARLY;BYMONTH=6;BYMONTHDAY=9"},
	})
	require.NoError(t, err)

	// June keeps its table days and gains the rule's day, sorted
	assert.Equal(t, []int{2, 9, 23, 30}, resolver(2025, 5))

	// Months the rule never touches stay on the table
	assert.Equal(t, []int{1, 6}, resolver(2025, 0))
}

func TestBuildHolidayResolver_BadRule(t *testing.T) {
	_, err := BuildHolidayResolver([]config.HolidayRule{{RRule: "FREQ=SOMETIMES"}})
	assert.ErrorContains(t, err, "failed to parse rrule")
}

func TestComputeMinimumMonthlyHours(t *testing.T) {
	cfg := testConfig()

	result, err := ComputeMinimumMonthlyHours(cfg, zap.NewNop(), 2025, 5)
	require.NoError(t, err)

	// June 2025: 30 days, 5 Sundays, 3 table holidays on weekdays
	assert.Equal(t, 161, result.MinimumHours)
	assert.Equal(t, 22, result.WorkingDays)
}

func TestComputeMinimumMonthlyHours_MonthOutOfRange(t *testing.T) {
	_, err := ComputeMinimumMonthlyHours(testConfig(), zap.NewNop(), 2025, 12)
	assert.ErrorContains(t, err, "month index out of range")
}
