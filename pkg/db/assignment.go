package db

import (
	"context"
	"fmt"
)

// ReplaceAssignments atomically swaps the persisted grid for a month
func (d *DB) ReplaceAssignments(ctx context.Context, year, month int, assignments []AssignmentRecord) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM assignment WHERE year = $1 AND month = $2
	`, year, month); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for _, a := range assignments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, staff_id, year, month, day, shift_code)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.StaffID, a.Year, a.Month, a.Day, a.ShiftCode); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}

// GetAssignments retrieves the persisted grid cells for a month
func (d *DB) GetAssignments(ctx context.Context, year, month int) ([]AssignmentRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, staff_id, year, month, day, shift_code
		FROM assignment
		WHERE year = $1 AND month = $2
		ORDER BY day
	`, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []AssignmentRecord
	for rows.Next() {
		var a AssignmentRecord
		if err := rows.Scan(&a.ID, &a.StaffID, &a.Year, &a.Month, &a.Day, &a.ShiftCode); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
