package db

import (
	"context"
	"fmt"
	"time"
)

// GetStaff retrieves all staff records
func (d *DB) GetStaff(ctx context.Context) ([]StaffRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, specialty, department, birth_date, email
		FROM staff
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []StaffRecord
	for rows.Next() {
		var s StaffRecord
		var birthDate *time.Time
		var email *string
		if err := rows.Scan(&s.ID, &s.Name, &s.Specialty, &s.Department, &birthDate, &email); err != nil {
			return nil, fmt.Errorf("failed to scan staff record: %w", err)
		}
		if birthDate != nil {
			s.BirthDate = birthDate.Format("2006-01-02")
		}
		if email != nil {
			s.Email = *email
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// InsertStaff inserts a new staff record
func (d *DB) InsertStaff(ctx context.Context, staff *StaffRecord) error {
	var birthDate any
	if staff.BirthDate != "" {
		birthDate = staff.BirthDate
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO staff (id, name, specialty, department, birth_date, email)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, staff.ID, staff.Name, staff.Specialty, staff.Department, birthDate, staff.Email)
	if err != nil {
		return fmt.Errorf("failed to insert staff record: %w", err)
	}
	return nil
}
