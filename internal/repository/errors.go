// Package repository defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers such
// as handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that an operation cannot proceed due to
// existing dependent records (e.g. deleting a location that still hosts
// committed sessions), while ErrValidation marks malformed input that
// never reached the database.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as removing a location still
// referenced by exam sessions. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrValidation is returned when input fails a referential or range
// check before any row is written (empty name, non-positive capacity,
// inverted time interval, unknown location name). Handlers should
// translate this into an HTTP 400 response.
var ErrValidation = errors.New("validation failed")
