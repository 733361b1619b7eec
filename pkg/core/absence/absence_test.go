package absence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicavida/roster/pkg/core/model"
)

func member(id string) *model.StaffMember {
	return &model.StaffMember{
		ID:         id,
		Name:       "Member " + id,
		Department: model.DepartmentEmergency,
		Shifts:     make(map[int]string),
	}
}

func TestApply_VacationRange(t *testing.T) {
	m := member("s1")
	m.Shifts[10] = model.CodeDay
	m.Shifts[12] = model.CodeNight
	roster := []*model.StaffMember{m}

	events := []model.AbsenceEvent{{
		StaffID: "s1",
		Kind:    model.KindVacation,
		Start:   "2025-06-10",
		End:     "2025-06-14",
	}}

	err := Apply(roster, events, 2025, 5)
	require.NoError(t, err)

	for day := 10; day <= 14; day++ {
		assert.Equal(t, model.CodeVacation, m.Shifts[day], "day %d", day)
	}
	assert.Empty(t, m.Shifts[9])
	assert.Empty(t, m.Shifts[15])
}

func TestApply_VacationClippedToMonth(t *testing.T) {
	m := member("s1")
	roster := []*model.StaffMember{m}

	events := []model.AbsenceEvent{{
		StaffID: "s1",
		Kind:    model.KindVacation,
		Start:   "2025-05-28",
		End:     "2025-06-03",
	}}

	err := Apply(roster, events, 2025, 5)
	require.NoError(t, err)

	assert.Equal(t, model.CodeVacation, m.Shifts[1])
	assert.Equal(t, model.CodeVacation, m.Shifts[2])
	assert.Equal(t, model.CodeVacation, m.Shifts[3])
	assert.Len(t, m.Shifts, 3)
}

func TestApply_SingleDayKinds(t *testing.T) {
	tests := []struct {
		kind model.AbsenceKind
		code string
	}{
		{model.KindFamilyDay, model.CodeFamilyDay},
		{model.KindCalamity, model.CodeCalamity},
		{model.KindPersonal, model.CodePersonal},
		{model.KindIncapacity, model.CodeIncapacity},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			m := member("s1")
			m.Shifts[20] = model.CodeDay
			roster := []*model.StaffMember{m}

			err := Apply(roster, []model.AbsenceEvent{{
				StaffID: "s1",
				Kind:    tt.kind,
				Start:   "2025-06-20",
			}}, 2025, 5)
			require.NoError(t, err)

			assert.Equal(t, tt.code, m.Shifts[20])
			assert.Len(t, m.Shifts, 1)
		})
	}
}

func TestApply_EventOutsideMonthIgnored(t *testing.T) {
	m := member("s1")
	roster := []*model.StaffMember{m}

	err := Apply(roster, []model.AbsenceEvent{{
		StaffID: "s1",
		Kind:    model.KindFamilyDay,
		Start:   "2025-07-20",
	}}, 2025, 5)
	require.NoError(t, err)

	assert.Empty(t, m.Shifts)
}

func TestApply_BirthdayMarker(t *testing.T) {
	t.Run("overrides computed codes", func(t *testing.T) {
		m := member("s1")
		m.BirthDate = "1990-06-05"
		m.Shifts[5] = model.CodeDay

		err := Apply([]*model.StaffMember{m}, nil, 2025, 5)
		require.NoError(t, err)

		assert.Equal(t, model.CodeBirthday, m.Shifts[5])
	})

	t.Run("never overrides an event", func(t *testing.T) {
		m := member("s1")
		m.BirthDate = "1990-06-05"

		err := Apply([]*model.StaffMember{m}, []model.AbsenceEvent{{
			StaffID: "s1",
			Kind:    model.KindVacation,
			Start:   "2025-06-01",
			End:     "2025-06-10",
		}}, 2025, 5)
		require.NoError(t, err)

		assert.Equal(t, model.CodeVacation, m.Shifts[5])
	})

	t.Run("other months untouched", func(t *testing.T) {
		m := member("s1")
		m.BirthDate = "1990-07-05"

		err := Apply([]*model.StaffMember{m}, nil, 2025, 5)
		require.NoError(t, err)

		assert.Empty(t, m.Shifts)
	})
}

func TestApply_Idempotent(t *testing.T) {
	m := member("s1")
	m.BirthDate = "1990-06-05"
	roster := []*model.StaffMember{m}
	events := []model.AbsenceEvent{{
		StaffID: "s1",
		Kind:    model.KindVacation,
		Start:   "2025-06-10",
		End:     "2025-06-12",
	}}

	require.NoError(t, Apply(roster, events, 2025, 5))
	first := m.Clone()

	require.NoError(t, Apply(roster, events, 2025, 5))
	assert.Equal(t, first.Shifts, m.Shifts)
}

func TestApply_Errors(t *testing.T) {
	t.Run("vacation end before start", func(t *testing.T) {
		err := Apply([]*model.StaffMember{member("s1")}, []model.AbsenceEvent{{
			StaffID: "s1",
			Kind:    model.KindVacation,
			Start:   "2025-06-14",
			End:     "2025-06-10",
		}}, 2025, 5)
		assert.ErrorContains(t, err, "precedes start")
	})

	t.Run("unknown kind", func(t *testing.T) {
		err := Apply([]*model.StaffMember{member("s1")}, []model.AbsenceEvent{{
			StaffID: "s1",
			Kind:    model.AbsenceKind("sabbatical"),
			Start:   "2025-06-14",
		}}, 2025, 5)
		assert.ErrorContains(t, err, "unknown absence kind")
	})

	t.Run("month out of range", func(t *testing.T) {
		err := Apply(nil, nil, 2025, 12)
		assert.ErrorContains(t, err, "month index out of range")
	})

	t.Run("invalid start date", func(t *testing.T) {
		err := Apply([]*model.StaffMember{member("s1")}, []model.AbsenceEvent{{
			StaffID: "s1",
			Kind:    model.KindFamilyDay,
			Start:   "June 20th",
		}}, 2025, 5)
		assert.ErrorContains(t, err, "invalid start date")
	})
}
