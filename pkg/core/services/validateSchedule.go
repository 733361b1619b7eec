package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/clinicavida/roster/internal/config"
	"github.com/clinicavida/roster/pkg/core/model"
	"github.com/clinicavida/roster/pkg/core/validate"
	"github.com/clinicavida/roster/pkg/db"
)

// ValidateScheduleStore is the database surface the validator needs
type ValidateScheduleStore interface {
	db.StaffStore
	db.AssignmentStore
}

// ValidateSchedule rebuilds the persisted month grid and checks it against
// the coverage, ceiling, and rest rules
func ValidateSchedule(ctx context.Context, store ValidateScheduleStore, cfg *config.Config, logger *zap.Logger, year, month int) (*validate.Report, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month index out of range: %d", month)
	}

	records, err := store.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	roster, err := buildRoster(records)
	if err != nil {
		return nil, err
	}

	assignments, err := store.GetAssignments(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("no schedule persisted for %d/%d", year, month+1)
	}

	if err := loadAssignments(roster, assignments, cfg); err != nil {
		return nil, err
	}

	logger.Info("Validating persisted schedule",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("assignments", len(assignments)))

	report, err := validate.Roster(roster, year, month, validate.Config{
		DayHeadcount:   cfg.DayHeadcount,
		NightHeadcount: cfg.NightHeadcount,
		CeilingHours:   cfg.CeilingHours,
	})
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return report, nil
}

// loadAssignments writes persisted rows back onto the roster, recomputing
// hour totals from the shift codes
func loadAssignments(roster []*model.StaffMember, assignments []db.AssignmentRecord, cfg *config.Config) error {
	byID := make(map[string]*model.StaffMember, len(roster))
	for _, member := range roster {
		byID[member.ID] = member
	}

	for _, assignment := range assignments {
		member, ok := byID[assignment.StaffID]
		if !ok {
			return fmt.Errorf("assignment references unknown staff id %q", assignment.StaffID)
		}
		member.Shifts[assignment.Day] = assignment.ShiftCode
		switch assignment.ShiftCode {
		case model.CodeDay:
			member.HoursWorked += cfg.DayShiftHours
		case model.CodeNight:
			member.HoursWorked += cfg.NightShiftHours
		case model.CodeWeekend10:
			member.HoursWorked += cfg.WeekendShiftHours
		}
	}

	return nil
}
