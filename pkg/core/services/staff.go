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

// AddStaffArgs carries the fields for a new staff member
type AddStaffArgs struct {
	Name       string
	Specialty  string
	Department string
	BirthDate  string // "2006-01-02", optional
	Email      string
}

// AddStaff validates and stores a new staff member, returning its generated id
func AddStaff(ctx context.Context, store db.StaffStore, logger *zap.Logger, args AddStaffArgs) (string, error) {
	if args.Name == "" {
		return "", fmt.Errorf("staff name is required")
	}
	if !model.Department(args.Department).IsValid() {
		return "", fmt.Errorf("unknown department %q (want %q or %q)",
			args.Department, model.DepartmentEmergency, model.DepartmentInpatient)
	}
	if model.Department(args.Department) == model.DepartmentInpatient && args.Specialty == "" {
		return "", fmt.Errorf("inpatient staff require a specialty")
	}
	if args.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", args.BirthDate); err != nil {
			return "", fmt.Errorf("invalid birth date %q: %w", args.BirthDate, err)
		}
	}

	record := &db.StaffRecord{
		ID:         uuid.NewString(),
		Name:       args.Name,
		Specialty:  args.Specialty,
		Department: args.Department,
		BirthDate:  args.BirthDate,
		Email:      args.Email,
	}

	if err := store.InsertStaff(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert staff: %w", err)
	}

	logger.Info("Added staff member",
		zap.String("id", record.ID),
		zap.String("name", record.Name),
		zap.String("department", record.Department))

	return record.ID, nil
}

// ListStaff returns all stored staff records
func ListStaff(ctx context.Context, store db.StaffStore, logger *zap.Logger) ([]db.StaffRecord, error) {
	records, err := store.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	logger.Debug("Listed staff", zap.Int("count", len(records)))
	return records, nil
}
