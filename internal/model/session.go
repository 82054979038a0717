package model

// Date and time layouts used across the session tables.  Dates and
// clock times are stored as strings in DB format; zero-padded HH:MM
// strings compare lexicographically in chronological order, which the
// overlap checks rely on.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ExamSession represents one committed exam occurrence at one location.
// A planning commit creates one session per non-empty slot, each
// carrying its contiguous slice of the cohort's student codes.
//
// Fields:
//  ID               – primary key identifier.
//  ModuleCode       – code of the examined module; a combined label when
//                     several modules/groups were merged into one plan.
//  ModuleName       – display name matching ModuleCode.
//  GroupName        – free-text group label of the merged selection.
//  ExamDate         – calendar date ("2006-01-02").
//  StartTime        – session start ("15:04"); interval is half-open.
//  EndTime          – session end ("15:04"); must be after StartTime.
//  LocationName     – name of the hosting Location.
//  ProfessorName    – supervising professor, optional free text.
//  AssignedStudents – ordered student codes seated in this session.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type ExamSession struct {
	ID               uint64   // exam_sessions.id
	ModuleCode       string   // exam_sessions.module_code
	ModuleName       string   // exam_sessions.module_name
	GroupName        string   // exam_sessions.group_name
	ExamDate         string   // exam_sessions.exam_date
	StartTime        string   // exam_sessions.start_time
	EndTime          string   // exam_sessions.end_time
	LocationName     string   // exam_sessions.location_name
	ProfessorName    string   // exam_sessions.professor_name
	AssignedStudents []string // session_students rows, ordered by position
	CreatedAt        string   // exam_sessions.created_at
	UpdatedAt        string   // exam_sessions.updated_at
}

// Overlaps reports whether two sessions clash in time on the same date.
// Intervals are half-open, so a session ending at 10:00 does not
// overlap one starting at 10:00.
func (s *ExamSession) Overlaps(o *ExamSession) bool {
	if s.ExamDate != o.ExamDate {
		return false
	}
	return s.StartTime < o.EndTime && o.StartTime < s.EndTime
}
