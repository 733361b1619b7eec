// Package rotation implements the inpatient department assignor: fixed
// weekday codes derived from specialty, and quota-constrained weekend shifts
// with an hour-overflow correction pass.
package rotation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clinicavida/roster/pkg/core/calendar"
	"github.com/clinicavida/roster/pkg/core/model"
)

const (
	DefaultCeilingHours      = 166
	DefaultWeekendShiftHours = 10

	// SurgicalWeekendQuota caps weekend assignments across the whole
	// surgical group, not per specialty.
	SurgicalWeekendQuota = 2
)

// DefaultSingleCoverageSpecialties is the ordered list of specialties that
// get at most one member per weekend block. Order matters: earlier
// specialties claim candidates first.
var DefaultSingleCoverageSpecialties = []string{
	"internal medicine",
	"cardiology",
	"pediatrics",
	"oncology",
	"palliative care",
}

// DefaultSurgicalSpecialties is the group sharing the two-person weekend quota
var DefaultSurgicalSpecialties = []string{
	"general surgery",
	"hepatobiliary surgery",
	"orthopedic surgery",
}

// WeekendConfig parameterizes the weekend pass. Zero/nil fields fall back to
// the package defaults.
type WeekendConfig struct {
	CeilingHours              int
	WeekendShiftHours         int
	SingleCoverageSpecialties []string
	SurgicalSpecialties       []string
}

func (c WeekendConfig) withDefaults() WeekendConfig {
	if c.CeilingHours == 0 {
		c.CeilingHours = DefaultCeilingHours
	}
	if c.WeekendShiftHours == 0 {
		c.WeekendShiftHours = DefaultWeekendShiftHours
	}
	if c.SingleCoverageSpecialties == nil {
		c.SingleCoverageSpecialties = DefaultSingleCoverageSpecialties
	}
	if c.SurgicalSpecialties == nil {
		c.SurgicalSpecialties = DefaultSurgicalSpecialties
	}
	return c
}

// AssignWeekdays writes the fixed weekday code to every inpatient member:
// C6 for the reinforcement specialty, C8 otherwise. Weekday rotation hours
// are accounted for outside the engine, so hour totals are left alone.
func AssignWeekdays(roster []*model.StaffMember, year, month int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("month index out of range: %d", month)
	}

	weekdays := calendar.Weekdays(year, month)

	for _, member := range roster {
		if member.Department != model.DepartmentInpatient {
			continue
		}
		if member.Specialty == "" {
			return fmt.Errorf("inpatient staff member %q has no specialty", member.Name)
		}

		code := model.CodeWeekday8
		if member.HasReinforcementSpecialty() {
			code = model.CodeWeekday6
		}
		for _, day := range weekdays {
			member.Shifts[day] = code
		}
	}

	return nil
}

// AssignWeekends runs the quota-based weekend pass over each weekend block,
// then corrects hour overflows by stripping weekend assignments. Must run
// after AssignWeekdays so block candidacy sees the weekday codes.
func AssignWeekends(roster []*model.StaffMember, year, month int, cfg WeekendConfig) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("month index out of range: %d", month)
	}
	cfg = cfg.withDefaults()

	pool := make([]*model.StaffMember, 0, len(roster))
	for _, member := range roster {
		if member.Department == model.DepartmentInpatient {
			pool = append(pool, member)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	for _, block := range calendar.WeekendBlocks(year, month) {
		assignBlock(pool, block, cfg)
	}

	correctOverflow(pool, year, month, cfg)

	return nil
}

// assignBlock fills one weekend block: at most one member per
// single-coverage specialty, then up to SurgicalWeekendQuota members from
// the surgical group, all under the projected-hours ceiling test.
func assignBlock(pool []*model.StaffMember, block []int, cfg WeekendConfig) {
	blockHours := cfg.WeekendShiftHours * len(block)

	// Candidates must be free across the whole block; lowest hours first so
	// the load spreads.
	var candidates []*model.StaffMember
	for _, member := range pool {
		if blockFree(member, block) {
			candidates = append(candidates, member)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].HoursWorked < candidates[j].HoursWorked
	})

	assigned := make(map[*model.StaffMember]bool)

	take := func(member *model.StaffMember) {
		for _, day := range block {
			member.Shifts[day] = model.CodeWeekend10
		}
		member.HoursWorked += blockHours
		assigned[member] = true
	}

	for _, specialty := range cfg.SingleCoverageSpecialties {
		for _, member := range candidates {
			if assigned[member] || !strings.EqualFold(member.Specialty, specialty) {
				continue
			}
			if member.HoursWorked+blockHours > cfg.CeilingHours {
				continue
			}
			take(member)
			break
		}
	}

	surgicalTaken := 0
	for _, member := range candidates {
		if surgicalTaken == SurgicalWeekendQuota {
			break
		}
		if assigned[member] || !matchesAny(member.Specialty, cfg.SurgicalSpecialties) {
			continue
		}
		if member.HoursWorked+blockHours > cfg.CeilingHours {
			continue
		}
		take(member)
		surgicalTaken++
	}
}

// correctOverflow strips weekend assignments from anyone over the ceiling,
// Sundays first then Saturdays, most recent day first, until they fit or
// nothing is left to strip. Stripping does not revisit block coverage, so a
// block can end up without its single-coverage member; the validator reports
// the resulting gaps.
func correctOverflow(pool []*model.StaffMember, year, month int, cfg WeekendConfig) {
	for _, member := range pool {
		if member.HoursWorked <= cfg.CeilingHours {
			continue
		}

		var sundays, saturdays []int
		for day, code := range member.Shifts {
			if code != model.CodeWeekend10 {
				continue
			}
			if calendar.DateOf(year, month, day).Weekday() == time.Sunday {
				sundays = append(sundays, day)
			} else {
				saturdays = append(saturdays, day)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(sundays)))
		sort.Sort(sort.Reverse(sort.IntSlice(saturdays)))

		for _, day := range append(sundays, saturdays...) {
			if member.HoursWorked <= cfg.CeilingHours {
				break
			}
			delete(member.Shifts, day)
			member.HoursWorked -= cfg.WeekendShiftHours
		}
	}
}

func blockFree(member *model.StaffMember, block []int) bool {
	for _, day := range block {
		if member.Shifts[day] != "" {
			return false
		}
	}
	return true
}

func matchesAny(specialty string, group []string) bool {
	for _, label := range group {
		if strings.EqualFold(specialty, label) {
			return true
		}
	}
	return false
}
