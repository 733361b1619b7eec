package model

import "strings"

// Department identifies which scheduling pass a staff member belongs to
type Department string

const (
	// DepartmentEmergency is the 24/7 unit staffed with day and night coverage shifts
	DepartmentEmergency Department = "emergency"
	// DepartmentInpatient is the specialty unit with fixed weekday codes and weekend quotas
	DepartmentInpatient Department = "inpatient"
)

func (d Department) IsValid() bool {
	return d == DepartmentEmergency || d == DepartmentInpatient
}

// Shift codes written into the per-day grid.
// Coverage codes (emergency department):
const (
	CodeDay   = "C" // 12h day shift
	CodeNight = "N" // 12h night shift
)

// Rotation codes (inpatient department); the digit encodes the shift length in hours:
const (
	CodeWeekday6  = "C6"  // reinforcement specialty weekday shift
	CodeWeekday8  = "C8"  // standard weekday shift
	CodeWeekend10 = "C10" // weekend shift
)

// Override codes. These always win over computed codes and are exempt from
// hour-ceiling and rest checks.
const (
	CodeVacation   = "V"
	CodeFamilyDay  = "A"
	CodeCalamity   = "K"
	CodePersonal   = "P"
	CodeIncapacity = "I"
	CodeBirthday   = "C4" // cosmetic marker, adds no hours
)

// IsOverrideCode reports whether code was written by the absence/override layer
func IsOverrideCode(code string) bool {
	switch code {
	case CodeVacation, CodeFamilyDay, CodeCalamity, CodePersonal, CodeIncapacity, CodeBirthday:
		return true
	}
	return false
}

// IsWorkingCode reports whether code represents actual scheduled work
func IsWorkingCode(code string) bool {
	switch code {
	case CodeDay, CodeNight, CodeWeekday6, CodeWeekday8, CodeWeekend10:
		return true
	}
	return false
}

// SpecialtyReinforcement drives the C6 weekday code for inpatient staff
const SpecialtyReinforcement = "reinforcement"

// StaffMember is one roster entry. Shifts maps day-of-month (1..31) to a
// shift code; a day holds at most one code. The scheduler sets computed
// codes once, and only the absence layer may overwrite them afterwards.
type StaffMember struct {
	ID          string
	Name        string
	Specialty   string
	Department  Department
	BirthDate   string // "2006-01-02", optional
	Shifts      map[int]string
	HoursWorked int
}

// Clone returns a deep copy so callers keep ownership of their records
func (s *StaffMember) Clone() *StaffMember {
	shifts := make(map[int]string, len(s.Shifts))
	for day, code := range s.Shifts {
		shifts[day] = code
	}
	clone := *s
	clone.Shifts = shifts
	return &clone
}

// HasReinforcementSpecialty matches the specialty label case-insensitively
func (s *StaffMember) HasReinforcementSpecialty() bool {
	return strings.EqualFold(s.Specialty, SpecialtyReinforcement)
}

// CloneRoster deep-copies every member of a roster
func CloneRoster(roster []*StaffMember) []*StaffMember {
	cloned := make([]*StaffMember, len(roster))
	for i, member := range roster {
		cloned[i] = member.Clone()
	}
	return cloned
}

// ResetAssignments clears shift maps and hour totals before a scheduling run
func ResetAssignments(roster []*StaffMember) {
	for _, member := range roster {
		member.Shifts = make(map[int]string)
		member.HoursWorked = 0
	}
}

// AbsenceKind is the fixed vocabulary of absence event types
type AbsenceKind string

const (
	KindVacation   AbsenceKind = "vacation"
	KindFamilyDay  AbsenceKind = "family_day"
	KindCalamity   AbsenceKind = "calamity"
	KindPersonal   AbsenceKind = "personal_leave"
	KindIncapacity AbsenceKind = "incapacity"
)

func (k AbsenceKind) IsValid() bool {
	switch k {
	case KindVacation, KindFamilyDay, KindCalamity, KindPersonal, KindIncapacity:
		return true
	}
	return false
}

// Code returns the override code stamped on the grid for this kind
func (k AbsenceKind) Code() string {
	switch k {
	case KindVacation:
		return CodeVacation
	case KindFamilyDay:
		return CodeFamilyDay
	case KindCalamity:
		return CodeCalamity
	case KindPersonal:
		return CodePersonal
	case KindIncapacity:
		return CodeIncapacity
	}
	return ""
}

// AbsenceEvent is a dated leave record supplied by the host. Only vacation
// events carry an end date; every other kind covers a single day.
type AbsenceEvent struct {
	StaffID string
	Kind    AbsenceKind
	Start   string // "2006-01-02"
	End     string // "2006-01-02", vacations only
	Note    string
}
