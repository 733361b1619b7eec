package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/clinicavida/roster/internal/config"
	"github.com/clinicavida/roster/pkg/core/calendar"
)

// MinimumHoursResult breaks down the legal minimum hours calculation
type MinimumHoursResult struct {
	Year         int
	Month        int // zero-based
	WorkingDays  int
	MinimumHours int
}

// ComputeMinimumMonthlyHours derives the legally required monthly hours for
// the given month using the configured holiday rules
func ComputeMinimumMonthlyHours(cfg *config.Config, logger *zap.Logger, year, month int) (*MinimumHoursResult, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month index out of range: %d", month)
	}

	resolver, err := BuildHolidayResolver(cfg.HolidayRules)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday resolver: %w", err)
	}

	workingDays := calendar.WorkingDays(year, month, resolver)
	hours := calendar.MinimumMonthlyHours(year, month, resolver)

	logger.Info("Computed minimum monthly hours",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("minimum_hours", hours))

	return &MinimumHoursResult{
		Year:         year,
		Month:        month,
		WorkingDays:  workingDays,
		MinimumHours: hours,
	}, nil
}
