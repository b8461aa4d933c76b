package models

import "time"

// Unit represents a named vocabulary set. Units are authored by the import
// tool or the content pipeline and are read-only to the scoring engine.
type Unit struct {
	ID        int64
	Title     string
	Position  int
	CreatedAt time.Time
}

// UnitWord represents a single vocabulary word within a unit
type UnitWord struct {
	ID       int64
	UnitID   int64
	Word     string
	Position int
}
