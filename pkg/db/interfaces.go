package db

import "context"

// StaffStore defines the staff roster operations the services need
type StaffStore interface {
	GetStaff(ctx context.Context) ([]StaffRecord, error)
	InsertStaff(ctx context.Context, staff *StaffRecord) error
}

// AbsenceStore defines the absence event operations the services need
type AbsenceStore interface {
	GetAbsenceEvents(ctx context.Context) ([]AbsenceEventRecord, error)
	GetAbsenceEventsByStaff(ctx context.Context, staffID string) ([]AbsenceEventRecord, error)
	InsertAbsenceEvent(ctx context.Context, event *AbsenceEventRecord) error
}

// AssignmentStore defines the persisted-grid operations the services need
type AssignmentStore interface {
	ReplaceAssignments(ctx context.Context, year, month int, assignments []AssignmentRecord) error
	GetAssignments(ctx context.Context, year, month int) ([]AssignmentRecord, error)
}

// Store is the full database surface the CLI wires up
type Store interface {
	StaffStore
	AbsenceStore
	AssignmentStore
}
