package model

// Location types as stored in the locations.type column.
const (
	LocationTypeAmphi = "AMPHI"
	LocationTypeRoom  = "ROOM"
)

// Location represents a physical exam venue (an amphitheatre or a
// classroom).  Locations are managed by the scolarité back office and
// referenced by name from committed exam sessions.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique human readable label (e.g. "Amphi 1").
//  Capacity  – number of students the venue can seat; always > 0.
//  Type      – venue category (AMPHI, ROOM).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Location struct {
	ID        uint64 // locations.id
	Name      string // locations.name
	Capacity  int    // locations.capacity
	Type      string // locations.type
	CreatedAt string // locations.created_at
	UpdatedAt string // locations.updated_at
}
