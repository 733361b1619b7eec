// Package validate re-derives coverage, ceiling, and rest findings from a
// finished shift grid. It shares the rule set with the schedulers but never
// mutates the roster: everything it finds is report material for human
// review, not a reason to block a run.
package validate

import (
	"fmt"
	"math"

	"github.com/clinicavida/roster/pkg/core/calendar"
	"github.com/clinicavida/roster/pkg/core/model"
)

const (
	DefaultDayHeadcount   = 4
	DefaultNightHeadcount = 4
	DefaultCeilingHours   = 166

	// shiftImbalanceTolerance is how far day and night counts may drift
	// apart before a warning is raised.
	shiftImbalanceTolerance = 3
)

// Config carries the staffing parameters the grid is checked against.
// Zero fields fall back to the defaults.
type Config struct {
	DayHeadcount   int
	NightHeadcount int
	CeilingHours   int
}

func (c Config) withDefaults() Config {
	if c.DayHeadcount == 0 {
		c.DayHeadcount = DefaultDayHeadcount
	}
	if c.NightHeadcount == 0 {
		c.NightHeadcount = DefaultNightHeadcount
	}
	if c.CeilingHours == 0 {
		c.CeilingHours = DefaultCeilingHours
	}
	return c
}

// StaffStats summarizes one emergency member's month
type StaffStats struct {
	Name        string
	HoursWorked int
	TotalShifts int
	DayShifts   int
	NightShifts int
	Balance     int // |day - night|
}

// Stats aggregates the emergency department
type Stats struct {
	Staff              []StaffStats
	AverageHours       int
	AverageDayShifts   int
	AverageNightShifts int
}

// Report is the validation outcome: hard findings in Errors, informational
// findings in Warnings, plus derived statistics.
type Report struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Stats    Stats
}

// Roster walks the finished grid and builds the validation report
func Roster(roster []*model.StaffMember, year, month int, cfg Config) (*Report, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month index out of range: %d", month)
	}
	cfg = cfg.withDefaults()

	report := &Report{
		Errors:   []string{},
		Warnings: []string{},
	}

	var emergency []*model.StaffMember
	for _, member := range roster {
		if member.Department == model.DepartmentEmergency {
			emergency = append(emergency, member)
		}
	}

	lastDay := calendar.DaysInMonth(year, month)

	// Daily coverage shortfalls
	for day := 1; day <= lastDay; day++ {
		var onDay, onNight int
		for _, member := range emergency {
			switch member.Shifts[day] {
			case model.CodeDay:
				onDay++
			case model.CodeNight:
				onNight++
			}
		}
		if onDay < cfg.DayHeadcount {
			report.Errors = append(report.Errors, fmt.Sprintf(
				"day %d: only %d staff on day shift (%d required)", day, onDay, cfg.DayHeadcount))
		}
		if onNight < cfg.NightHeadcount {
			report.Errors = append(report.Errors, fmt.Sprintf(
				"day %d: only %d staff on night shift (%d required)", day, onNight, cfg.NightHeadcount))
		}
	}

	// Per-person ceiling, rest, and balance findings
	for _, member := range roster {
		if member.HoursWorked > cfg.CeilingHours {
			report.Errors = append(report.Errors, fmt.Sprintf(
				"%s: exceeds hour ceiling (%d/%d)", member.Name, member.HoursWorked, cfg.CeilingHours))
		}
	}

	for _, member := range emergency {
		for day := 1; day < lastDay; day++ {
			if member.Shifts[day] != model.CodeNight {
				continue
			}
			next := member.Shifts[day+1]
			if next == model.CodeDay || next == model.CodeNight {
				report.Errors = append(report.Errors, fmt.Sprintf(
					"%s: works day %d immediately after night shift on day %d", member.Name, day+1, day))
			}
		}

		days, nights := countCoverageShifts(member)
		if abs(days-nights) > shiftImbalanceTolerance {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%s: shift imbalance - %d day vs %d night", member.Name, days, nights))
		}
	}

	// Rest after a weekend duty block (inpatient)
	for _, block := range calendar.WeekendBlocks(year, month) {
		next := block[len(block)-1] + 1
		if next > lastDay {
			continue
		}
		for _, member := range roster {
			if member.Department != model.DepartmentInpatient {
				continue
			}
			if member.Shifts[block[len(block)-1]] != model.CodeWeekend10 {
				continue
			}
			if model.IsWorkingCode(member.Shifts[next]) {
				report.Errors = append(report.Errors, fmt.Sprintf(
					"%s: works day %d immediately after weekend duty ending day %d",
					member.Name, next, block[len(block)-1]))
			}
		}
	}

	report.Stats = buildStats(emergency)
	report.Valid = len(report.Errors) == 0

	return report, nil
}

func buildStats(emergency []*model.StaffMember) Stats {
	stats := Stats{Staff: make([]StaffStats, 0, len(emergency))}

	var sumHours, sumDays, sumNights int
	for _, member := range emergency {
		days, nights := countCoverageShifts(member)
		stats.Staff = append(stats.Staff, StaffStats{
			Name:        member.Name,
			HoursWorked: member.HoursWorked,
			TotalShifts: days + nights,
			DayShifts:   days,
			NightShifts: nights,
			Balance:     abs(days - nights),
		})
		sumHours += member.HoursWorked
		sumDays += days
		sumNights += nights
	}

	if n := len(emergency); n > 0 {
		stats.AverageHours = int(math.Round(float64(sumHours) / float64(n)))
		stats.AverageDayShifts = int(math.Round(float64(sumDays) / float64(n)))
		stats.AverageNightShifts = int(math.Round(float64(sumNights) / float64(n)))
	}

	return stats
}

func countCoverageShifts(member *model.StaffMember) (days, nights int) {
	for _, code := range member.Shifts {
		switch code {
		case model.CodeDay:
			days++
		case model.CodeNight:
			nights++
		}
	}
	return days, nights
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
