// Package queue defines message payloads exchanged over the message broker.
package queue

// CommittedSessionInfo summarizes one session of a committed plan for
// downstream consumers.
type CommittedSessionInfo struct {
	SessionID    uint64 `json:"session_id"`
	LocationName string `json:"location_name"`
	Count        int    `json:"count"`
}

// PlanCommittedEvent is published when a seating plan is successfully
// committed. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type PlanCommittedEvent struct {
	ModuleCode    string                 `json:"module_code"`
	ModuleName    string                 `json:"module_name"`
	GroupName     string                 `json:"group_name"`
	ExamDate      string                 `json:"exam_date"`
	StartTime     string                 `json:"start_time"`
	EndTime       string                 `json:"end_time"`
	Sessions      []CommittedSessionInfo `json:"sessions"`
	TotalStudents int                    `json:"total_students"`
	CommittedBy   string                 `json:"committed_by"` // opaque caller identity for auditing
	CommittedAt   string                 `json:"committed_at"`
}

// ConflictsDetectedEvent is published when a detection pass after a
// commit or refresh finds double-booked students. The host portal
// consumes it to raise end-user notifications; this service only
// exposes the counts and detail.
type ConflictsDetectedEvent struct {
	TriggeredBy      string `json:"triggered_by"` // commit | refresh
	ConflictCount    int    `json:"conflict_count"`
	AffectedStudents int    `json:"affected_students"`
	DetectedAt       string `json:"detected_at"`
}
