// Package calendar provides the date arithmetic the scheduling passes share:
// month layout, weekend blocks, the national holiday table, and the legal
// minimum monthly hours formula.
//
// Months are zero-based (0 = January) throughout the engine, matching the
// host application's calendar widget.
package calendar

import (
	"math"
	"time"
)

// DaysInMonth returns the Gregorian day count of the given month
func DaysInMonth(year, month int) int {
	// Day zero of the following month normalizes to the last day of this one
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf builds the UTC date for a day of the given month
func DateOf(year, month, day int) time.Time {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

// IsWeekday reports whether the day falls Monday through Friday
func IsWeekday(year, month, day int) bool {
	wd := DateOf(year, month, day).Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// Days returns every day number of the month in ascending order
func Days(year, month int) []int {
	total := DaysInMonth(year, month)
	days := make([]int, total)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// Weekdays returns the Monday-to-Friday day numbers of the month
func Weekdays(year, month int) []int {
	var days []int
	for day := 1; day <= DaysInMonth(year, month); day++ {
		if IsWeekday(year, month, day) {
			days = append(days, day)
		}
	}
	return days
}

// WeekendBlocks returns maximal runs of contiguous Saturday/Sunday days in
// day order. A month opening on a Sunday or closing on a Saturday yields a
// single-day block at that edge.
func WeekendBlocks(year, month int) [][]int {
	var blocks [][]int
	var current []int

	for day := 1; day <= DaysInMonth(year, month); day++ {
		wd := DateOf(year, month, day).Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			current = append(current, day)
			continue
		}
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

// HolidayResolver reports the holiday day numbers of a month. Injectable so
// hosts can supply year-aware resolution for moving feast days; the default
// table is year-independent.
type HolidayResolver func(year, month int) []int

// defaultHolidayTable is keyed by one-based month. The moving feast days are
// frozen at the dates the table was authored for; months 2 and 9 carry none.
var defaultHolidayTable = map[int][]int{
	1:  {1, 6},
	3:  {24},
	4:  {17, 18},
	5:  {1},
	6:  {2, 23, 30},
	7:  {20},
	8:  {7, 18},
	10: {13},
	11: {3, 17},
	12: {8, 25},
}

// DefaultHolidays returns the static national holiday table resolver
func DefaultHolidays() HolidayResolver {
	return func(_ int, month int) []int {
		days := defaultHolidayTable[month+1]
		out := make([]int, len(days))
		copy(out, days)
		return out
	}
}

// WorkingDays counts the days of the month that are neither Sundays nor
// holidays. A holiday landing on a Sunday must not be subtracted twice.
func WorkingDays(year, month int, holidays HolidayResolver) int {
	if holidays == nil {
		holidays = DefaultHolidays()
	}

	holidaySet := make(map[int]bool)
	for _, day := range holidays(year, month) {
		holidaySet[day] = true
	}

	var sundays, holidayCount, holidaysOnSunday int
	for day := 1; day <= DaysInMonth(year, month); day++ {
		isSunday := DateOf(year, month, day).Weekday() == time.Sunday
		isHoliday := holidaySet[day]

		if isSunday {
			sundays++
		}
		if isHoliday {
			holidayCount++
		}
		if isSunday && isHoliday {
			holidaysOnSunday++
		}
	}

	return DaysInMonth(year, month) - sundays - holidayCount + holidaysOnSunday
}

// MinimumMonthlyHours derives the legally required monthly hours from the
// working days of the month: round(workingDays * 44/6)
func MinimumMonthlyHours(year, month int, holidays HolidayResolver) int {
	return int(math.Round(float64(WorkingDays(year, month, holidays)) * 44.0 / 6.0))
}
