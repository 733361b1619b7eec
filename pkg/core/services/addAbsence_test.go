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

func absenceStore() *mockScheduleStore {
	return &mockScheduleStore{
		staff: []db.StaffRecord{
			{ID: "em-0", Name: "Emergency 0", Department: string(model.DepartmentEmergency)},
		},
	}
}

func TestAddAbsence_Vacation(t *testing.T) {
	store := absenceStore()

	id, err := AddAbsence(context.Background(), store, zap.NewNop(), AddAbsenceArgs{
		StaffID: "em-0",
		Kind:    "vacation",
		Start:   "2025-06-10",
		End:     "2025-06-14",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	events := store.events["em-0"]
	require.Len(t, events, 1)
	assert.Equal(t, "vacation", events[0].Kind)
	assert.Equal(t, "2025-06-14", events[0].EndDate)
}

func TestAddAbsence_SingleDay(t *testing.T) {
	store := absenceStore()

	_, err := AddAbsence(context.Background(), store, zap.NewNop(), AddAbsenceArgs{
		StaffID: "em-0",
		Kind:    "family_day",
		Start:   "2025-06-10",
	})
	require.NoError(t, err)
	require.Len(t, store.events["em-0"], 1)
	assert.Empty(t, store.events["em-0"][0].EndDate)
}

func TestAddAbsence_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    AddAbsenceArgs
		wantErr string
	}{
		{
			name:    "unknown kind",
			args:    AddAbsenceArgs{StaffID: "em-0", Kind: "sabbatical", Start: "2025-06-10"},
			wantErr: "unknown absence kind",
		},
		{
			name:    "bad start date",
			args:    AddAbsenceArgs{StaffID: "em-0", Kind: "vacation", Start: "soon", End: "2025-06-14"},
			wantErr: "invalid start date",
		},
		{
			name:    "vacation without end",
			args:    AddAbsenceArgs{StaffID: "em-0", Kind: "vacation", Start: "2025-06-10"},
			wantErr: "require an end date",
		},
		{
			name:    "vacation end before start",
			args:    AddAbsenceArgs{StaffID: "em-0", Kind: "vacation", Start: "2025-06-14", End: "2025-06-10"},
			wantErr: "precedes start",
		},
		{
			name:    "end date on a single-day kind",
			args:    AddAbsenceArgs{StaffID: "em-0", Kind: "calamity", Start: "2025-06-10", End: "2025-06-11"},
			wantErr: "end date not allowed",
		},
		{
			name:    "unknown staff",
			args:    AddAbsenceArgs{StaffID: "ghost", Kind: "incapacity", Start: "2025-06-10"},
			wantErr: "no staff member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddAbsence(context.Background(), absenceStore(), zap.NewNop(), tt.args)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
