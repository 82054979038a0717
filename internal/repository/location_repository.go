package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions
	"fmt"
	"sort"
	"strings"

	"github.com/scolarite/exam-scheduling/internal/model"
	"github.com/scolarite/exam-scheduling/internal/utils"
)

// ErrLocationNotFound is returned when a location lookup fails.
var ErrLocationNotFound = errors.New("location not found")

// LocationRepo provides methods to create, list and delete exam
// locations.  It embeds a database handle to perform queries and
// commands.
type LocationRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewLocationRepo constructs a LocationRepo with the given DB handle.
func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// Create inserts a new location. Name must be non-empty and capacity
// strictly positive; both are checked here so malformed admin input is
// rejected with ErrValidation before touching the table. After insert
// the row is read back so timestamps are populated on the model.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return fmt.Errorf("%w: location name is required", ErrValidation)
	}
	if l.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be a positive integer, got %d", ErrValidation, l.Capacity)
	}
	if l.Type == "" {
		l.Type = model.LocationTypeRoom
	}

	const qInsert = `INSERT INTO locations (name, capacity, type) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, l.Name, l.Capacity, l.Type)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: location name %q already exists", ErrConflict, l.Name)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)

	const qSelect = `SELECT id, name, capacity, type, created_at, updated_at FROM locations WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, l.ID).
		Scan(&l.ID, &l.Name, &l.Capacity, &l.Type, &l.CreatedAt, &l.UpdatedAt)
}

// List returns all locations ordered by name with a numeric-aware
// comparator, so "Amphi 10" comes after "Amphi 2". The ordering is
// applied in Go because MySQL's collation sorts digit runs
// lexicographically; auto-distribution selects a contiguous range of
// this list, so the order is load-bearing.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	const q = `SELECT id, name, capacity, type, created_at, updated_at FROM locations`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Capacity, &l.Type, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return utils.NaturalLess(out[i].Name, out[j].Name) })
	return out, nil
}

// GetByID retrieves a location by its ID. It returns
// ErrLocationNotFound when no row is found.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
	const q = `SELECT id, name, capacity, type, created_at, updated_at FROM locations WHERE id = ?`
	var l model.Location
	err := r.db.QueryRowContext(ctx, q, id).Scan(&l.ID, &l.Name, &l.Capacity, &l.Type, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

// GetByName retrieves a location by its unique name. Plans reference
// locations by name, so commit resolves capacities through this lookup
// rather than trusting client-supplied numbers.
func (r *LocationRepo) GetByName(ctx context.Context, name string) (*model.Location, error) {
	const q = `SELECT id, name, capacity, type, created_at, updated_at FROM locations WHERE name = ?`
	var l model.Location
	err := r.db.QueryRowContext(ctx, q, name).Scan(&l.ID, &l.Name, &l.Capacity, &l.Type, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ExistsName reports whether a location with the given name exists.
// The session store uses it as its referential check before creating a
// session.
func (r *LocationRepo) ExistsName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT 1 FROM locations WHERE name = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a location by ID. A location still referenced by a
// committed session cannot be removed and yields ErrConflict; a
// missing ID yields ErrLocationNotFound.
func (r *LocationRepo) Delete(ctx context.Context, id uint64) error {
	loc, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	var refs int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exam_sessions WHERE location_name = ?`, loc.Name,
	).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: location %q is referenced by %d session(s)", ErrConflict, loc.Name, refs)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLocationNotFound
	}
	return nil
}
