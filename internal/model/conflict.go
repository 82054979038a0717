package model

// SessionSummary carries the fields of a session a conflict report
// needs so the back-office screen can render the clash without further
// lookups.
type SessionSummary struct {
	SessionID     uint64 `json:"session_id"`
	ModuleCode    string `json:"module_code"`
	ModuleName    string `json:"module_name"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	LocationName  string `json:"location_name"`
	ProfessorName string `json:"professor_name"`
}

// Conflict records one student double-booked into two time-overlapping
// sessions on the same date.  Conflicts are computed on demand and
// never persisted.
type Conflict struct {
	CodEtu   string         `json:"cod_etu"`
	ExamDate string         `json:"exam_date"`
	First    SessionSummary `json:"first"`
	Second   SessionSummary `json:"second"`
}
