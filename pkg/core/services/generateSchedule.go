package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicavida/roster/internal/config"
	"github.com/clinicavida/roster/pkg/core/absence"
	"github.com/clinicavida/roster/pkg/core/coverage"
	"github.com/clinicavida/roster/pkg/core/model"
	"github.com/clinicavida/roster/pkg/core/rotation"
	"github.com/clinicavida/roster/pkg/core/validate"
	"github.com/clinicavida/roster/pkg/db"
)

// GenerateScheduleStore is the database surface the schedule generator needs
type GenerateScheduleStore interface {
	db.StaffStore
	db.AbsenceStore
	db.AssignmentStore
}

// GenerateOptions tunes a single generation run
type GenerateOptions struct {
	// DryRun computes the grid without persisting it
	DryRun bool
	// Seed fixes the jitter source for reproducible output; 0 means time-seeded
	Seed int64
}

// ScheduleResult is the outcome of a full generation run
type ScheduleResult struct {
	Year     int
	Month    int // zero-based
	Roster   []*model.StaffMember
	Coverage *coverage.Result
	Report   *validate.Report
	Saved    bool
}

// GenerateSchedule builds the full month grid: weekday and weekend rotation
// for the inpatient department, priority coverage for the emergency
// department, absence overrides, then validation. Unless DryRun is set the
// finished grid replaces any previously persisted one for the month.
func GenerateSchedule(ctx context.Context, store GenerateScheduleStore, cfg *config.Config, logger *zap.Logger, year, month int, opts GenerateOptions) (*ScheduleResult, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month index out of range: %d", month)
	}

	logger.Info("Generating schedule",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Bool("dry_run", opts.DryRun))

	records, err := store.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no staff found")
	}

	roster, err := buildRoster(records)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded staff roster", zap.Int("count", len(roster)))

	model.ResetAssignments(roster)

	if err := rotation.AssignWeekdays(roster, year, month); err != nil {
		return nil, fmt.Errorf("weekday rotation failed: %w", err)
	}
	if err := rotation.AssignWeekends(roster, year, month, rotation.WeekendConfig{
		CeilingHours:              cfg.CeilingHours,
		WeekendShiftHours:         cfg.WeekendShiftHours,
		SingleCoverageSpecialties: cfg.SingleCoverageSpecialties,
		SurgicalSpecialties:       cfg.SurgicalSpecialties,
	}); err != nil {
		return nil, fmt.Errorf("weekend rotation failed: %w", err)
	}

	coverageCfg := coverage.Config{
		DayHeadcount:    cfg.DayHeadcount,
		NightHeadcount:  cfg.NightHeadcount,
		CeilingHours:    cfg.CeilingHours,
		DayShiftHours:   cfg.DayShiftHours,
		NightShiftHours: cfg.NightShiftHours,
	}
	if opts.Seed != 0 {
		coverageCfg.Rand = rand.New(rand.NewSource(opts.Seed))
	}

	coverageResult, err := coverage.Assign(roster, year, month, coverageCfg)
	if err != nil {
		return nil, fmt.Errorf("coverage scheduling failed: %w", err)
	}
	if coverageResult.Skipped {
		logger.Warn("Emergency coverage skipped: not enough staff for one full day",
			zap.Int("required", cfg.DayHeadcount+cfg.NightHeadcount))
	}
	for _, shortfall := range coverageResult.Shortfalls {
		logger.Debug("Coverage shortfall",
			zap.Int("day", shortfall.Day),
			zap.String("shift", shortfall.Shift),
			zap.Int("assigned", shortfall.Assigned),
			zap.Int("required", shortfall.Required))
	}

	if err := ApplyAbsenceEvents(ctx, store, logger, roster, year, month); err != nil {
		return nil, err
	}

	report, err := validate.Roster(roster, year, month, validate.Config{
		DayHeadcount:   cfg.DayHeadcount,
		NightHeadcount: cfg.NightHeadcount,
		CeilingHours:   cfg.CeilingHours,
	})
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result := &ScheduleResult{
		Year:     year,
		Month:    month,
		Roster:   roster,
		Coverage: coverageResult,
		Report:   report,
	}

	if opts.DryRun {
		logger.Info("Dry run, not persisting schedule")
		return result, nil
	}

	assignments := toAssignmentRecords(roster, year, month)
	if err := store.ReplaceAssignments(ctx, year, month, assignments); err != nil {
		return nil, fmt.Errorf("failed to persist schedule: %w", err)
	}
	result.Saved = true

	logger.Info("Schedule persisted",
		zap.Int("assignments", len(assignments)),
		zap.Bool("valid", report.Valid))

	return result, nil
}

// ApplyAbsenceEvents fetches each member's stored absence events and stamps
// the override codes and birthday markers onto the grid
func ApplyAbsenceEvents(ctx context.Context, store db.AbsenceStore, logger *zap.Logger, roster []*model.StaffMember, year, month int) error {
	var events []model.AbsenceEvent
	for _, member := range roster {
		records, err := store.GetAbsenceEventsByStaff(ctx, member.ID)
		if err != nil {
			return fmt.Errorf("failed to get absence events for %q: %w", member.Name, err)
		}
		for _, record := range records {
			kind := model.AbsenceKind(record.Kind)
			if !kind.IsValid() {
				logger.Warn("Skipping absence event with unknown kind",
					zap.String("staff", member.Name),
					zap.String("kind", record.Kind))
				continue
			}
			events = append(events, model.AbsenceEvent{
				StaffID: record.StaffID,
				Kind:    kind,
				Start:   record.StartDate,
				End:     record.EndDate,
				Note:    record.Note,
			})
		}
	}
	logger.Debug("Applying absence events", zap.Int("count", len(events)))

	if err := absence.Apply(roster, events, year, month); err != nil {
		return fmt.Errorf("failed to apply absence events: %w", err)
	}
	return nil
}

// buildRoster converts stored staff records into scheduler entries, failing
// on any record without a recognized department
func buildRoster(records []db.StaffRecord) ([]*model.StaffMember, error) {
	roster := make([]*model.StaffMember, 0, len(records))
	for _, record := range records {
		department := model.Department(record.Department)
		if !department.IsValid() {
			return nil, fmt.Errorf("staff member %q has unknown department %q", record.Name, record.Department)
		}
		roster = append(roster, &model.StaffMember{
			ID:         record.ID,
			Name:       record.Name,
			Specialty:  record.Specialty,
			Department: department,
			BirthDate:  record.BirthDate,
			Shifts:     make(map[int]string),
		})
	}
	return roster, nil
}

// toAssignmentRecords flattens the roster's shift maps into storable rows,
// ordered by staff then day so persistence is deterministic
func toAssignmentRecords(roster []*model.StaffMember, year, month int) []db.AssignmentRecord {
	var assignments []db.AssignmentRecord
	for _, member := range roster {
		days := make([]int, 0, len(member.Shifts))
		for day := range member.Shifts {
			days = append(days, day)
		}
		sort.Ints(days)
		for _, day := range days {
			assignments = append(assignments, db.AssignmentRecord{
				ID:        uuid.NewString(),
				StaffID:   member.ID,
				Year:      year,
				Month:     month,
				Day:       day,
				ShiftCode: member.Shifts[day],
			})
		}
	}
	return assignments
}
