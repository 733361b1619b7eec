package db

import (
	"context"
	"fmt"
	"time"
)

// GetAbsenceEvents retrieves all absence event records
func (d *DB) GetAbsenceEvents(ctx context.Context) ([]AbsenceEventRecord, error) {
	return d.queryAbsenceEvents(ctx, `
		SELECT id, staff_id, kind, start_date, end_date, note
		FROM absence_event
		ORDER BY start_date
	`)
}

// GetAbsenceEventsByStaff retrieves the absence events of one staff member
func (d *DB) GetAbsenceEventsByStaff(ctx context.Context, staffID string) ([]AbsenceEventRecord, error) {
	return d.queryAbsenceEvents(ctx, `
		SELECT id, staff_id, kind, start_date, end_date, note
		FROM absence_event
		WHERE staff_id = $1
		ORDER BY start_date
	`, staffID)
}

func (d *DB) queryAbsenceEvents(ctx context.Context, query string, args ...any) ([]AbsenceEventRecord, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence events: %w", err)
	}
	defer rows.Close()

	var events []AbsenceEventRecord
	for rows.Next() {
		var e AbsenceEventRecord
		var start time.Time
		var end *time.Time
		var note *string
		if err := rows.Scan(&e.ID, &e.StaffID, &e.Kind, &start, &end, &note); err != nil {
			return nil, fmt.Errorf("failed to scan absence event: %w", err)
		}
		e.StartDate = start.Format("2006-01-02")
		if end != nil {
			e.EndDate = end.Format("2006-01-02")
		}
		if note != nil {
			e.Note = *note
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absence events: %w", err)
	}

	return events, nil
}

// InsertAbsenceEvent inserts a new absence event record
func (d *DB) InsertAbsenceEvent(ctx context.Context, event *AbsenceEventRecord) error {
	var endDate any
	if event.EndDate != "" {
		endDate = event.EndDate
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO absence_event (id, staff_id, kind, start_date, end_date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, event.ID, event.StaffID, event.Kind, event.StartDate, endDate, event.Note)
	if err != nil {
		return fmt.Errorf("failed to insert absence event: %w", err)
	}
	return nil
}
