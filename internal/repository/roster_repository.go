package repository

import (
	"context"
	"database/sql"

	"github.com/scolarite/exam-scheduling/internal/model"
)

// GroupWildcard selects every group of a module when passed as the
// group name to GetStudents.
const GroupWildcard = "*"

// RosterRepo implements the roster provider over the synced enrollment
// tables (etudiants + inscriptions). It is the only read path the
// planner and participant refresh use to learn current enrollment.
type RosterRepo struct {
	db *sql.DB
}

// NewRosterRepo returns a RosterRepo bound to the given database.
func NewRosterRepo(db *sql.DB) *RosterRepo { return &RosterRepo{db: db} }

// GetStudents returns the current enrollment for a module, optionally
// restricted to one group. Rows are ordered by surname then first name
// so cohort slicing stays deterministic. Duplicate cod_etu across
// selections are dealt with by the caller when merging selections.
func (r *RosterRepo) GetStudents(ctx context.Context, moduleCode, groupName string) ([]model.StudentRef, error) {
	const q = `SELECT e.cod_etu, e.nom, e.prenom
	           FROM etudiants e
	           JOIN inscriptions i ON i.cod_etu = e.cod_etu
	           WHERE i.module_code = ? AND (? = '*' OR i.group_name = ?)
	           ORDER BY e.nom, e.prenom, e.cod_etu`
	rows, err := r.db.QueryContext(ctx, q, moduleCode, groupName, groupName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StudentRef
	for rows.Next() {
		var s model.StudentRef
		if err := rows.Scan(&s.CodEtu, &s.Nom, &s.Prenom); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup resolves student codes to full references, keyed by cod_etu.
// Codes with no matching etudiants row are simply absent from the map;
// the export renders them with empty names rather than failing.
func (r *RosterRepo) Lookup(ctx context.Context, codes []string) (map[string]model.StudentRef, error) {
	out := make(map[string]model.StudentRef, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	query := `SELECT cod_etu, nom, prenom FROM etudiants WHERE cod_etu IN (`
	args := make([]interface{}, 0, len(codes))
	for i, code := range codes {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, code)
	}
	query += ")"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.StudentRef
		if err := rows.Scan(&s.CodEtu, &s.Nom, &s.Prenom); err != nil {
			return nil, err
		}
		out[s.CodEtu] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ModuleName resolves the display name of a module code. Missing
// modules resolve to the code itself so labels never come out empty.
func (r *RosterRepo) ModuleName(ctx context.Context, moduleCode string) (string, error) {
	const q = `SELECT lib_module FROM modules WHERE cod_module = ?`
	var name string
	err := r.db.QueryRowContext(ctx, q, moduleCode).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return moduleCode, nil
		}
		return "", err
	}
	return name, nil
}
