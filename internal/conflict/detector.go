// Package conflict finds students double-booked into time-overlapping
// exam sessions. Detection is a pure scan over the persisted session
// set, run on demand after a commit or refresh; nothing is stored.
package conflict

import (
	"sort"

	"github.com/scolarite/exam-scheduling/internal/model"
)

// Detect reports every (student, session pair) clash. Sessions are
// grouped by date; within a date every unordered pair is tested with
// the half-open overlap predicate, so sessions that merely touch at an
// endpoint do not conflict. One Conflict is emitted per shared student
// per overlapping pair.
//
// The scan is O(n²) per date, which is fine: sessions per calendar day
// are bounded by rooms × time slots.
func Detect(sessions []model.ExamSession) []model.Conflict {
	byDate := make(map[string][]*model.ExamSession)
	for i := range sessions {
		s := &sessions[i]
		byDate[s.ExamDate] = append(byDate[s.ExamDate], s)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var out []model.Conflict
	for _, date := range dates {
		group := byDate[date]
		// Stable pair ordering keeps the report deterministic for a
		// given session set.
		sort.Slice(group, func(i, j int) bool {
			if group[i].StartTime != group[j].StartTime {
				return group[i].StartTime < group[j].StartTime
			}
			return group[i].ID < group[j].ID
		})
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if !a.Overlaps(b) {
					continue
				}
				inB := make(map[string]bool, len(b.AssignedStudents))
				for _, code := range b.AssignedStudents {
					inB[code] = true
				}
				for _, code := range a.AssignedStudents {
					if !inB[code] {
						continue
					}
					out = append(out, model.Conflict{
						CodEtu:   code,
						ExamDate: date,
						First:    summarize(a),
						Second:   summarize(b),
					})
				}
			}
		}
	}
	return out
}

// Count returns the number of distinct students involved in at least
// one conflict. It is the cheap variant backing the back office's
// summary indicator.
func Count(sessions []model.ExamSession) int {
	affected := make(map[string]bool)
	for _, c := range Detect(sessions) {
		affected[c.CodEtu] = true
	}
	return len(affected)
}

func summarize(s *model.ExamSession) model.SessionSummary {
	return model.SessionSummary{
		SessionID:     s.ID,
		ModuleCode:    s.ModuleCode,
		ModuleName:    s.ModuleName,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		LocationName:  s.LocationName,
		ProfessorName: s.ProfessorName,
	}
}
