package coverage

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicavida/roster/pkg/core/calendar"
	"github.com/clinicavida/roster/pkg/core/model"
)

func makeEmergencyRoster(count int) []*model.StaffMember {
	roster := make([]*model.StaffMember, count)
	for i := range roster {
		roster[i] = &model.StaffMember{
			ID:         fmt.Sprintf("staff-%d", i),
			Name:       fmt.Sprintf("Staff %d", i),
			Department: model.DepartmentEmergency,
			Shifts:     make(map[int]string),
		}
	}
	return roster
}

func TestAssign_FullCoverage(t *testing.T) {
	// With three rotating groups of four and a generous ceiling, every day
	// of the month should end up fully staffed.
	roster := makeEmergencyRoster(12)
	cfg := Config{
		CeilingHours: 400,
		Rand:         rand.New(rand.NewSource(1)),
	}

	result, err := Assign(roster, 2025, 5, cfg)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Empty(t, result.Shortfalls)

	lastDay := calendar.DaysInMonth(2025, 5)
	for day := 1; day <= lastDay; day++ {
		var onDay, onNight int
		for _, member := range roster {
			switch member.Shifts[day] {
			case model.CodeDay:
				onDay++
			case model.CodeNight:
				onNight++
			}
		}
		assert.Equal(t, 4, onDay, "day %d day shift", day)
		assert.Equal(t, 4, onNight, "day %d night shift", day)
	}
}

func TestAssign_NoWorkAfterNightShift(t *testing.T) {
	roster := makeEmergencyRoster(12)
	cfg := Config{
		CeilingHours: 400,
		Rand:         rand.New(rand.NewSource(7)),
	}

	_, err := Assign(roster, 2025, 5, cfg)
	require.NoError(t, err)

	lastDay := calendar.DaysInMonth(2025, 5)
	for _, member := range roster {
		for day := 1; day < lastDay; day++ {
			if member.Shifts[day] == model.CodeNight {
				assert.Empty(t, member.Shifts[day+1],
					"%s assigned on day %d after a night shift", member.Name, day)
			}
		}
	}
}

func TestAssign_HourAccounting(t *testing.T) {
	roster := makeEmergencyRoster(12)
	cfg := Config{
		CeilingHours: 400,
		Rand:         rand.New(rand.NewSource(3)),
	}

	_, err := Assign(roster, 2025, 5, cfg)
	require.NoError(t, err)

	for _, member := range roster {
		var want int
		for _, code := range member.Shifts {
			switch code {
			case model.CodeDay:
				want += DefaultDayShiftHours
			case model.CodeNight:
				want += DefaultNightShiftHours
			}
		}
		assert.Equal(t, want, member.HoursWorked, member.Name)
	}
}

func TestAssign_HourCeilingRespected(t *testing.T) {
	// The default 166h ceiling cannot staff a full month with 12 people, so
	// shortfalls are expected, but nobody may cross the ceiling.
	roster := makeEmergencyRoster(12)
	cfg := Config{Rand: rand.New(rand.NewSource(11))}

	result, err := Assign(roster, 2025, 5, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Shortfalls)

	for _, member := range roster {
		assert.LessOrEqual(t, member.HoursWorked, DefaultCeilingHours, member.Name)
	}
}

func TestAssign_SkipsUndersizedDepartment(t *testing.T) {
	// Seven members cannot staff even one full day (4 + 4 required)
	roster := makeEmergencyRoster(7)

	result, err := Assign(roster, 2025, 5, Config{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, result.Shortfalls)

	for _, member := range roster {
		assert.Empty(t, member.Shifts)
		assert.Zero(t, member.HoursWorked)
	}
}

func TestAssign_IgnoresOtherDepartments(t *testing.T) {
	roster := makeEmergencyRoster(12)
	inpatient := &model.StaffMember{
		ID:         "inpatient-1",
		Name:       "Inpatient One",
		Specialty:  "cardiology",
		Department: model.DepartmentInpatient,
		Shifts:     make(map[int]string),
	}
	roster = append(roster, inpatient)

	_, err := Assign(roster, 2025, 5, Config{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)

	assert.Empty(t, inpatient.Shifts)
	assert.Zero(t, inpatient.HoursWorked)
}

func TestAssign_DeterministicWithSeed(t *testing.T) {
	run := func() []*model.StaffMember {
		roster := makeEmergencyRoster(12)
		_, err := Assign(roster, 2025, 5, Config{Rand: rand.New(rand.NewSource(42))})
		require.NoError(t, err)
		return roster
	}

	first := run()
	second := run()

	for i := range first {
		assert.Equal(t, first[i].Shifts, second[i].Shifts, first[i].Name)
		assert.Equal(t, first[i].HoursWorked, second[i].HoursWorked)
	}
}

func TestAssign_InvalidInput(t *testing.T) {
	t.Run("month out of range", func(t *testing.T) {
		_, err := Assign(makeEmergencyRoster(12), 2025, 12, Config{})
		assert.ErrorContains(t, err, "month index out of range")
	})

	t.Run("member without department", func(t *testing.T) {
		roster := makeEmergencyRoster(12)
		roster = append(roster, &model.StaffMember{
			Name:   "Lost Soul",
			Shifts: make(map[int]string),
		})
		_, err := Assign(roster, 2025, 5, Config{})
		assert.ErrorContains(t, err, "no valid department")
	})
}
