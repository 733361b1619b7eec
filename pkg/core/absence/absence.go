// Package absence stamps leave events and birthday markers onto a computed
// shift grid. Override codes replace whatever the schedulers wrote,
// unconditionally, for every covered day of the target month.
package absence

import (
	"fmt"
	"time"

	"github.com/clinicavida/roster/pkg/core/model"
)

const dateLayout = "2006-01-02"

// Apply overwrites grid cells with the override codes of every event that
// overlaps the target month, then stamps the birthday marker. Applying the
// same event set twice yields the same grid.
func Apply(roster []*model.StaffMember, events []model.AbsenceEvent, year, month int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("month index out of range: %d", month)
	}

	byStaff := make(map[string][]model.AbsenceEvent)
	for _, event := range events {
		byStaff[event.StaffID] = append(byStaff[event.StaffID], event)
	}

	for _, member := range roster {
		overridden := make(map[int]bool)

		for _, event := range byStaff[member.ID] {
			days, err := coveredDays(event, year, month)
			if err != nil {
				return err
			}
			code := event.Kind.Code()
			if code == "" {
				return fmt.Errorf("unknown absence kind %q for staff %q", event.Kind, member.Name)
			}
			for _, day := range days {
				member.Shifts[day] = code
				overridden[day] = true
			}
		}

		// Birthday marker: overrides computed codes only, never an event.
		if day, ok := birthdayIn(member, year, month); ok && !overridden[day] {
			member.Shifts[day] = model.CodeBirthday
		}
	}

	return nil
}

// coveredDays resolves which days of the target month an event claims.
// Vacations cover the intersection of their range with the month; every
// other kind covers its single start date when it falls inside the month.
func coveredDays(event model.AbsenceEvent, year, month int) ([]int, error) {
	start, err := time.Parse(dateLayout, event.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", event.Start, err)
	}

	if event.Kind == model.KindVacation && event.End != "" {
		end, err := time.Parse(dateLayout, event.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", event.End, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("vacation end %s precedes start %s", event.End, event.Start)
		}

		var days []int
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if int(d.Month())-1 == month && d.Year() == year {
				days = append(days, d.Day())
			}
		}
		return days, nil
	}

	if int(start.Month())-1 == month && start.Year() == year {
		return []int{start.Day()}, nil
	}
	return nil, nil
}

// birthdayIn reports the member's birth day when it falls in the target month
func birthdayIn(member *model.StaffMember, year, month int) (int, bool) {
	if member.BirthDate == "" {
		return 0, false
	}
	born, err := time.Parse(dateLayout, member.BirthDate)
	if err != nil {
		return 0, false
	}
	if int(born.Month())-1 != month {
		return 0, false
	}
	_ = year // the birthday recurs every year
	return born.Day(), true
}
