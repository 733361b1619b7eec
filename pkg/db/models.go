package db

// StaffRecord is a staff roster row as stored by the host application
type StaffRecord struct {
	ID         string
	Name       string
	Specialty  string
	Department string
	BirthDate  string // "2006-01-02", may be empty
	Email      string
}

// AbsenceEventRecord is a stored absence event. EndDate is set for
// vacations only; every other kind is a single day.
type AbsenceEventRecord struct {
	ID        string
	StaffID   string
	Kind      string
	StartDate string
	EndDate   string
	Note      string
}

// AssignmentRecord is one cell of a persisted month grid
type AssignmentRecord struct {
	ID        string
	StaffID   string
	Year      int
	Month     int // zero-based
	Day       int
	ShiftCode string
}
