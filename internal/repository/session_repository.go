// Package repository contains data access logic for the exam session
// store. This file defines repository methods for exam_sessions and
// their session_students assignment rows. A session row never exists
// without its assignment rows being written in the same transaction;
// commit is all-or-nothing.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/scolarite/exam-scheduling/internal/model"
)

// ErrSessionNotFound indicates that an exam session was not located in the DB.
var ErrSessionNotFound = errors.New("exam session not found")

// ErrDuplicateSession indicates that another session already occupies
// the same location at the same date and time range. The unique index
// on (location_name, exam_date, start_time, end_time) is the guard that
// serializes racing commits targeting the same room.
var ErrDuplicateSession = errors.New("location already booked for this date and time range")

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// SessionRepo manages persistence for exam sessions.
type SessionRepo struct {
	db   *sql.DB
	locs *LocationRepo
}

// NewSessionRepo constructs a SessionRepo with the given DB handle and
// the location repository used for referential checks.
func NewSessionRepo(db *sql.DB, locs *LocationRepo) *SessionRepo {
	return &SessionRepo{db: db, locs: locs}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple session inserts.  The planner uses
// this to commit a whole plan atomically.
func (r *SessionRepo) DB() *sql.DB {
	return r.db
}

// validate runs the store-level referential checks: sane half-open
// interval and a location name that resolves to a known Location.
func (r *SessionRepo) validate(ctx context.Context, s *model.ExamSession) error {
	if s.ExamDate == "" || s.StartTime == "" || s.EndTime == "" {
		return fmt.Errorf("%w: exam date, start time and end time are required", ErrValidation)
	}
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrValidation, s.StartTime, s.EndTime)
	}
	ok, err := r.locs.ExistsName(ctx, s.LocationName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown location %q", ErrValidation, s.LocationName)
	}
	return nil
}

// Create inserts a session and its assignment rows in a transaction.
func (r *SessionRepo) Create(ctx context.Context, s *model.ExamSession) error {
	if err := r.validate(ctx, s); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	err = r.CreateTx(ctx, tx, s)
	return err
}

// CreateTx inserts a new session using the provided transaction instead
// of the repository's DB handle.  It behaves like Create but performs
// no referential checks and does not commit; the caller must validate
// first (see Validate) and commit or roll back the transaction.  On
// success the generated ID and DB-default fields are populated on the
// given session and its assignment rows are written.
func (r *SessionRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.ExamSession) error {
	const q = `INSERT INTO exam_sessions
	           (module_code, module_name, group_name, exam_date, start_time, end_time, location_name, professor_name)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		s.ModuleCode, s.ModuleName, s.GroupName, s.ExamDate, s.StartTime, s.EndTime, s.LocationName, s.ProfessorName)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: %s at %s %s-%s", ErrDuplicateSession, s.LocationName, s.ExamDate, s.StartTime, s.EndTime)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	if err := insertStudentsTx(ctx, tx, s.ID, s.AssignedStudents); err != nil {
		return err
	}

	const sel = `SELECT id, module_code, module_name, group_name, exam_date, start_time, end_time,
	                    location_name, professor_name, created_at, updated_at
	             FROM exam_sessions WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.ModuleCode, &s.ModuleName, &s.GroupName, &s.ExamDate, &s.StartTime, &s.EndTime,
		&s.LocationName, &s.ProfessorName, &s.CreatedAt, &s.UpdatedAt,
	)
}

// CreateBatch persists several sessions in a single transaction: the
// planner's commit path. Every session is validated before the first
// insert so a failing plan leaves the store untouched.
func (r *SessionRepo) CreateBatch(ctx context.Context, sessions []*model.ExamSession) error {
	for _, s := range sessions {
		if err := r.validate(ctx, s); err != nil {
			return err
		}
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	for _, s := range sessions {
		if err = r.CreateTx(ctx, tx, s); err != nil {
			return err
		}
	}
	return nil
}

// Validate exposes the referential checks for callers that batch
// several CreateTx calls into one transaction and must validate every
// session before the first insert.
func (r *SessionRepo) Validate(ctx context.Context, s *model.ExamSession) error {
	return r.validate(ctx, s)
}

// insertStudentsTx bulk-inserts assignment rows in a single statement,
// preserving cohort order through the position column.
func insertStudentsTx(ctx context.Context, tx *sql.Tx, sessionID uint64, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	query := `INSERT INTO session_students (session_id, position, cod_etu) VALUES `
	args := make([]interface{}, 0, len(codes)*3)
	for i, code := range codes {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, sessionID, i, code)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a session by its ID, including its ordered
// assigned-student codes.  It returns ErrSessionNotFound if there is no
// matching row.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.ExamSession, error) {
	const q = `SELECT id, module_code, module_name, group_name, exam_date, start_time, end_time,
	                  location_name, professor_name, created_at, updated_at
	           FROM exam_sessions WHERE id = ?`
	var s model.ExamSession
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.ModuleCode, &s.ModuleName, &s.GroupName, &s.ExamDate, &s.StartTime, &s.EndTime,
		&s.LocationName, &s.ProfessorName, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	const qs = `SELECT cod_etu FROM session_students WHERE session_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, qs, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		s.AssignedStudents = append(s.AssignedStudents, code)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListFilter narrows List queries.  Zero values mean "no constraint".
type ListFilter struct {
	FromDate   string // inclusive lower bound on exam_date
	ToDate     string // inclusive upper bound on exam_date
	ModuleCode string // exact match on module_code
}

// List returns sessions matching the filter ordered by date then start
// time, each with its ordered assigned-student codes. When no sessions
// match it returns an empty slice and nil error.
func (r *SessionRepo) List(ctx context.Context, f ListFilter) ([]model.ExamSession, error) {
	q := `SELECT id, module_code, module_name, group_name, exam_date, start_time, end_time,
	             location_name, professor_name, created_at, updated_at
	      FROM exam_sessions WHERE 1=1`
	var args []interface{}
	if f.FromDate != "" {
		q += ` AND exam_date >= ?`
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		q += ` AND exam_date <= ?`
		args = append(args, f.ToDate)
	}
	if f.ModuleCode != "" {
		q += ` AND module_code = ?`
		args = append(args, f.ModuleCode)
	}
	q += ` ORDER BY exam_date, start_time, location_name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []model.ExamSession{}
	index := map[uint64]int{}
	for rows.Next() {
		var s model.ExamSession
		if err := rows.Scan(
			&s.ID, &s.ModuleCode, &s.ModuleName, &s.GroupName, &s.ExamDate, &s.StartTime, &s.EndTime,
			&s.LocationName, &s.ProfessorName, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		index[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	// Pull every assignment row in one pass and attach by session ID.
	const qs = `SELECT session_id, cod_etu FROM session_students ORDER BY session_id, position`
	srows, err := r.db.QueryContext(ctx, qs)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var sid uint64
		var code string
		if err := srows.Scan(&sid, &code); err != nil {
			return nil, err
		}
		if i, ok := index[sid]; ok {
			sessions[i].AssignedStudents = append(sessions[i].AssignedStudents, code)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListFrom returns every session on or after the given date, with
// assigned students loaded. Participant refresh works off this view.
func (r *SessionRepo) ListFrom(ctx context.Context, date string) ([]model.ExamSession, error) {
	return r.List(ctx, ListFilter{FromDate: date})
}

// Delete removes a session and its assignment rows. The deletion occurs
// within a transaction to ensure that no partial cleanup occurs. If the
// session does not exist, ErrSessionNotFound is returned.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM exam_sessions WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrSessionNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM session_students WHERE session_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM exam_sessions WHERE id = ?`, id)
	return err
}

// ReplaceAssignedStudents swaps a session's student list for the given
// ordered codes. Used by participant refresh; room and time fields are
// untouched. The delete and re-insert run in one transaction so a
// concurrent reader never observes a half-replaced list.
func (r *SessionRepo) ReplaceAssignedStudents(ctx context.Context, id uint64, codes []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM exam_sessions WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrSessionNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM session_students WHERE session_id = ?`, id); err != nil {
		return err
	}
	if err = insertStudentsTx(ctx, tx, id, codes); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `UPDATE exam_sessions SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}
