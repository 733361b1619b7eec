package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/clinicavida/roster/internal/config"
	"github.com/clinicavida/roster/pkg/core/calendar"
	"github.com/clinicavida/roster/pkg/core/model"
)

// SheetsPublisher is the spreadsheet surface the publisher writes through
type SheetsPublisher interface {
	UpdateValues(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	ClearValues(ctx context.Context, spreadsheetID, sheetRange string) error
}

// PublishSchedule renders the persisted month grid as spreadsheet rows and
// writes them to the configured sheet, clearing the tab first
func PublishSchedule(ctx context.Context, store ValidateScheduleStore, publisher SheetsPublisher, cfg *config.Config, logger *zap.Logger, year, month int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("month index out of range: %d", month)
	}
	if cfg.ScheduleSheetID == "" {
		return fmt.Errorf("scheduleSheetID is not configured")
	}

	records, err := store.GetStaff(ctx)
	if err != nil {
		return fmt.Errorf("failed to get staff: %w", err)
	}
	roster, err := buildRoster(records)
	if err != nil {
		return err
	}

	assignments, err := store.GetAssignments(ctx, year, month)
	if err != nil {
		return fmt.Errorf("failed to get assignments: %w", err)
	}
	if len(assignments) == 0 {
		return fmt.Errorf("no schedule persisted for %d/%d", year, month+1)
	}
	if err := loadAssignments(roster, assignments, cfg); err != nil {
		return err
	}

	rows := buildScheduleRows(roster, year, month)

	sheetRange := fmt.Sprintf("%s!A1", cfg.ScheduleSheetTab)
	clearRange := fmt.Sprintf("%s!A:ZZ", cfg.ScheduleSheetTab)

	logger.Info("Publishing schedule",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("rows", len(rows)),
		zap.String("sheet_id", cfg.ScheduleSheetID))

	if err := publisher.ClearValues(ctx, cfg.ScheduleSheetID, clearRange); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}
	if err := publisher.UpdateValues(ctx, cfg.ScheduleSheetID, sheetRange, rows); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}

	logger.Info("Schedule published")
	return nil
}

// buildScheduleRows lays out the grid: a header row of day numbers, then one
// row per member with their shift codes and hour total. Members are grouped
// by department and sorted by name inside each group.
func buildScheduleRows(roster []*model.StaffMember, year, month int) [][]interface{} {
	lastDay := calendar.DaysInMonth(year, month)

	sorted := make([]*model.StaffMember, len(roster))
	copy(sorted, roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Department != sorted[j].Department {
			return sorted[i].Department < sorted[j].Department
		}
		return sorted[i].Name < sorted[j].Name
	})

	header := []interface{}{"Name", "Specialty", "Department"}
	for day := 1; day <= lastDay; day++ {
		header = append(header, strconv.Itoa(day))
	}
	header = append(header, "Hours")

	rows := [][]interface{}{header}
	for _, member := range sorted {
		row := []interface{}{member.Name, member.Specialty, string(member.Department)}
		for day := 1; day <= lastDay; day++ {
			row = append(row, member.Shifts[day])
		}
		row = append(row, member.HoursWorked)
		rows = append(rows, row)
	}

	return rows
}
