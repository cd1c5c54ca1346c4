package models

// Tribe is a named participant grouping, global across editions. Names are
// unique; the database enforces the constraint.
type Tribe struct {
	ID        string
	Name      string
	CreatedAt int64
}

// Sector is a named staff work area, global across editions, with the same
// uniqueness behavior as Tribe. A staff person may hold any number of
// sector assignments.
type Sector struct {
	ID        string
	Name      string
	CreatedAt int64
}
