package services

import (
	"fmt"
	"sort"

	"github.com/teambition/rrule-go"

	"github.com/clinicavida/roster/internal/config"
	"github.com/clinicavida/roster/pkg/core/calendar"
)

// BuildHolidayResolver turns the configured holiday recurrence rules into a
// calendar resolver. Rule matches are merged with the built-in table so the
// default holidays keep producing the same output; rules exist to add the
// moving feast days the static table cannot track across years.
func BuildHolidayResolver(rules []config.HolidayRule) (calendar.HolidayResolver, error) {
	if len(rules) == 0 {
		return calendar.DefaultHolidays(), nil
	}

	parsed := make([]*rrule.RRule, 0, len(rules))
	for i, rule := range rules {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for holiday rule %d: %w", i, err)
		}
		parsed = append(parsed, r)
	}

	defaults := calendar.DefaultHolidays()

	return func(year, month int) []int {
		seen := make(map[int]bool)
		for _, day := range defaults(year, month) {
			seen[day] = true
		}

		monthStart := calendar.DateOf(year, month, 1)
		monthEnd := calendar.DateOf(year, month, calendar.DaysInMonth(year, month))

		for _, r := range parsed {
			r.DTStart(monthStart)
			for _, occurrence := range r.Between(monthStart, monthEnd, true) {
				seen[occurrence.Day()] = true
			}
		}

		days := make([]int, 0, len(seen))
		for day := range seen {
			days = append(days, day)
		}
		sort.Ints(days)
		return days
	}, nil
}
