package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicavida/roster/pkg/core/model"
	"github.com/clinicavida/roster/pkg/db"
)

func TestValidateSchedule_RebuildsGridAndHours(t *testing.T) {
	store := &mockScheduleStore{
		staff: []db.StaffRecord{
			{ID: "em-0", Name: "Emergency 0", Department: string(model.DepartmentEmergency)},
		},
		assignments: []db.AssignmentRecord{
			{ID: "a1", StaffID: "em-0", Year: 2025, Month: 5, Day: 1, ShiftCode: model.CodeDay},
			{ID: "a2", StaffID: "em-0", Year: 2025, Month: 5, Day: 3, ShiftCode: model.CodeNight},
		},
	}
	cfg := testConfig()
	cfg.DayHeadcount = 1
	cfg.NightHeadcount = 1

	report, err := ValidateSchedule(context.Background(), store, cfg, zap.NewNop(), 2025, 5)
	require.NoError(t, err)

	// One day and one night shift persisted: 24h, one fully covered day out
	// of thirty, so the report is full of shortfalls but computes.
	assert.False(t, report.Valid)
	require.Len(t, report.Stats.Staff, 1)
	assert.Equal(t, 24, report.Stats.Staff[0].HoursWorked)
	assert.Equal(t, 1, report.Stats.Staff[0].DayShifts)
	assert.Equal(t, 1, report.Stats.Staff[0].NightShifts)
}

func TestValidateSchedule_NoPersistedSchedule(t *testing.T) {
	store := &mockScheduleStore{
		staff: []db.StaffRecord{
			{ID: "em-0", Name: "Emergency 0", Department: string(model.DepartmentEmergency)},
		},
	}

	_, err := ValidateSchedule(context.Background(), store, testConfig(), zap.NewNop(), 2025, 5)
	assert.ErrorContains(t, err, "no schedule persisted")
}

func TestValidateSchedule_UnknownStaffReference(t *testing.T) {
	store := &mockScheduleStore{
		staff: []db.StaffRecord{
			{ID: "em-0", Name: "Emergency 0", Department: string(model.DepartmentEmergency)},
		},
		assignments: []db.AssignmentRecord{
			{ID: "a1", StaffID: "ghost", Year: 2025, Month: 5, Day: 1, ShiftCode: model.CodeDay},
		},
	}

	_, err := ValidateSchedule(context.Background(), store, testConfig(), zap.NewNop(), 2025, 5)
	assert.ErrorContains(t, err, "unknown staff id")
}
