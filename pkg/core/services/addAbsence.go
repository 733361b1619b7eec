package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicavida/roster/pkg/core/model"
	"github.com/clinicavida/roster/pkg/db"
)

// AddAbsenceStore is the database surface the absence recorder needs
type AddAbsenceStore interface {
	db.StaffStore
	db.AbsenceStore
}

// AddAbsenceArgs carries the fields for a new absence event
type AddAbsenceArgs struct {
	StaffID string
	Kind    string
	Start   string // "2006-01-02"
	End     string // "2006-01-02", vacations only
	Note    string
}

// AddAbsence validates and stores a new absence event, returning its
// generated id. The staff id must reference a stored member.
func AddAbsence(ctx context.Context, store AddAbsenceStore, logger *zap.Logger, args AddAbsenceArgs) (string, error) {
	kind := model.AbsenceKind(args.Kind)
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown absence kind %q", args.Kind)
	}

	start, err := time.Parse("2006-01-02", args.Start)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", args.Start, err)
	}

	if kind == model.KindVacation {
		if args.End == "" {
			return "", fmt.Errorf("vacation events require an end date")
		}
		end, err := time.Parse("2006-01-02", args.End)
		if err != nil {
			return "", fmt.Errorf("invalid end date %q: %w", args.End, err)
		}
		if end.Before(start) {
			return "", fmt.Errorf("vacation end %s precedes start %s", args.End, args.Start)
		}
	} else if args.End != "" {
		return "", fmt.Errorf("%s events cover a single day, end date not allowed", kind)
	}

	staff, err := store.GetStaff(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get staff: %w", err)
	}
	found := false
	for _, record := range staff {
		if record.ID == args.StaffID {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("no staff member with id %q", args.StaffID)
	}

	record := &db.AbsenceEventRecord{
		ID:        uuid.NewString(),
		StaffID:   args.StaffID,
		Kind:      args.Kind,
		StartDate: args.Start,
		EndDate:   args.End,
		Note:      args.Note,
	}

	if err := store.InsertAbsenceEvent(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert absence event: %w", err)
	}

	logger.Info("Added absence event",
		zap.String("id", record.ID),
		zap.String("staff_id", record.StaffID),
		zap.String("kind", record.Kind))

	return record.ID, nil
}
