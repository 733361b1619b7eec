// Package coverage implements the day-by-day scheduler for the emergency
// department, which must keep a day pool and a night pool staffed every day
// of the month.
package coverage

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/clinicavida/roster/pkg/core/calendar"
	"github.com/clinicavida/roster/pkg/core/model"
)

const (
	// Fixed ranking weights for the daily priority score. These must stay
	// stable across versions so historical grids remain comparable.

	// WeightIdleStreak rewards consecutive idle days before the target day.
	WeightIdleStreak = 100.0

	// WeightShiftShare rewards members holding fewer shifts relative to the
	// days elapsed so far.
	WeightShiftShare = 50.0

	// WeightTypeBalance steers members toward the shift type they hold
	// fewer of.
	WeightTypeBalance = 20.0

	// WeightDaysSinceLast rewards time elapsed since the last worked day.
	WeightDaysSinceLast = 10.0

	// WeightHoursHeadroom rewards remaining room under the hour ceiling.
	WeightHoursHeadroom = 30.0

	// JitterRange bounds the random tie-break term added to every score.
	JitterRange = 5.0
)

// Default staffing parameters. Hosts may override any of them but the
// defaults are part of the engine's documented contract.
const (
	DefaultDayHeadcount    = 4
	DefaultNightHeadcount  = 4
	DefaultCeilingHours    = 166
	DefaultDayShiftHours   = 12
	DefaultNightShiftHours = 12
)

// Config parameterizes a coverage run. Zero fields fall back to the package
// defaults. Rand feeds the jitter term; supply a seeded source for
// reproducible output, leave nil for a time-seeded one.
type Config struct {
	DayHeadcount    int
	NightHeadcount  int
	CeilingHours    int
	DayShiftHours   int
	NightShiftHours int
	Rand            *rand.Rand
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
	if c.DayShiftHours == 0 {
		c.DayShiftHours = DefaultDayShiftHours
	}
	if c.NightShiftHours == 0 {
		c.NightShiftHours = DefaultNightShiftHours
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// Shortfall records a day on which a pool could not be filled to its
// required headcount.
type Shortfall struct {
	Day      int
	Shift    string // model.CodeDay or model.CodeNight
	Assigned int
	Required int
}

// Result reports how a coverage run went. The run never fails on
// understaffing; shortfalls are collected for the validation report.
type Result struct {
	// Skipped is set when the department had too few members to attempt
	// the month at all and the roster was left untouched.
	Skipped    bool
	Shortfalls []Shortfall
}

// Assign walks the month in ascending day order and fills the day and night
// pools for the emergency department, mutating the Shifts maps and hour
// totals of the emergency members in roster. Other members are untouched.
func Assign(roster []*model.StaffMember, year, month int, cfg Config) (*Result, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month index out of range: %d", month)
	}
	cfg = cfg.withDefaults()

	pool := make([]*model.StaffMember, 0, len(roster))
	for _, member := range roster {
		if !member.Department.IsValid() {
			return nil, fmt.Errorf("staff member %q has no valid department", member.Name)
		}
		if member.Department == model.DepartmentEmergency {
			pool = append(pool, member)
		}
	}

	result := &Result{}

	// The month cannot be attempted with fewer members than one full day of
	// staffing; leave the roster unchanged and let the validator surface it.
	if len(pool) < cfg.DayHeadcount+cfg.NightHeadcount {
		result.Skipped = true
		return result, nil
	}

	lastDay := calendar.DaysInMonth(year, month)

	for day := 1; day <= lastDay; day++ {
		dayPicks := pickShift(pool, day, lastDay, model.CodeDay, cfg, nil)
		for _, member := range dayPicks {
			member.Shifts[day] = model.CodeDay
			member.HoursWorked += cfg.DayShiftHours
		}

		nightPicks := pickShift(pool, day, lastDay, model.CodeNight, cfg, dayPicks)
		for _, member := range nightPicks {
			member.Shifts[day] = model.CodeNight
			member.HoursWorked += cfg.NightShiftHours
		}

		if len(dayPicks) < cfg.DayHeadcount {
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				Day: day, Shift: model.CodeDay, Assigned: len(dayPicks), Required: cfg.DayHeadcount,
			})
		}
		if len(nightPicks) < cfg.NightHeadcount {
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				Day: day, Shift: model.CodeNight, Assigned: len(nightPicks), Required: cfg.NightHeadcount,
			})
		}
	}

	return result, nil
}

// pickShift filters the pool down to eligible members for the given shift
// type and returns the top scorers, at most the required headcount.
func pickShift(pool []*model.StaffMember, day, lastDay int, shiftType string, cfg Config, taken []*model.StaffMember) []*model.StaffMember {
	headcount := cfg.DayHeadcount
	shiftHours := cfg.DayShiftHours
	if shiftType == model.CodeNight {
		headcount = cfg.NightHeadcount
		shiftHours = cfg.NightShiftHours
	}

	var eligible []*model.StaffMember
	for _, member := range pool {
		if shiftType == model.CodeNight && contains(taken, member) {
			continue
		}
		if !canWorkDay(member, day) {
			continue
		}
		if shiftType == model.CodeNight && !nextDayFree(member, day, lastDay) {
			continue
		}
		if member.HoursWorked+shiftHours > cfg.CeilingHours {
			continue
		}
		eligible = append(eligible, member)
	}

	type scored struct {
		member *model.StaffMember
		score  float64
	}
	candidates := make([]scored, len(eligible))
	for i, member := range eligible {
		candidates[i] = scored{member, priorityScore(member, day, shiftType, cfg)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > headcount {
		candidates = candidates[:headcount]
	}
	picks := make([]*model.StaffMember, len(candidates))
	for i, c := range candidates {
		picks[i] = c.member
	}
	return picks
}

// priorityScore computes the weighted ranking score; higher wins
func priorityScore(member *model.StaffMember, day int, shiftType string, cfg Config) float64 {
	days, nights := countShifts(member)
	total := days + nights

	score := float64(idleStreak(member, day)) * WeightIdleStreak

	maxPossible := day
	if maxPossible < 1 {
		maxPossible = 1
	}
	score += (1 - float64(total)/float64(maxPossible)) * WeightShiftShare

	if shiftType == model.CodeDay {
		score += float64(nights-days) * WeightTypeBalance
	} else {
		score += float64(days-nights) * WeightTypeBalance
	}

	score += float64(day-lastWorkedDay(member, day)) * WeightDaysSinceLast

	score += (1 - float64(member.HoursWorked)/float64(cfg.CeilingHours)) * WeightHoursHeadroom

	score += cfg.Rand.Float64() * JitterRange

	return score
}

// canWorkDay enforces the basic per-day rules: the day must be open and the
// previous day must not have been a night shift.
func canWorkDay(member *model.StaffMember, day int) bool {
	if member.Shifts[day] != "" {
		return false
	}
	if day > 1 && member.Shifts[day-1] == model.CodeNight {
		return false
	}
	return true
}

// nextDayFree enforces the rest day after a night shift prospectively: a
// night shift may only be assigned when the following in-month day is open.
func nextDayFree(member *model.StaffMember, day, lastDay int) bool {
	next := day + 1
	if next > lastDay {
		return true
	}
	return member.Shifts[next] == ""
}

func countShifts(member *model.StaffMember) (days, nights int) {
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

// idleStreak counts consecutive unassigned days immediately before day
func idleStreak(member *model.StaffMember, day int) int {
	streak := 0
	for d := day - 1; d >= 1; d-- {
		if member.Shifts[d] != "" {
			break
		}
		streak++
	}
	return streak
}

// lastWorkedDay returns the most recent assigned day before day, 0 if none
func lastWorkedDay(member *model.StaffMember, day int) int {
	for d := day - 1; d >= 1; d-- {
		if member.Shifts[d] != "" {
			return d
		}
	}
	return 0
}

func contains(members []*model.StaffMember, target *model.StaffMember) bool {
	for _, m := range members {
		if m == target {
			return true
		}
	}
	return false
}
