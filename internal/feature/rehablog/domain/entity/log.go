// Package entity defines the domain entities for the rehablog feature.
package entity

import "time"

// Log is a single rehabilitation exercise entry owned by one user.
// Entries are created and deleted, never updated in place.
type Log struct {
	// ID is the unique identifier, assigned at creation.
	ID uint `gorm:"primaryKey"`

	// OwnerID references the owning user. Required and immutable; a log
	// is only visible within its owner's scope.
	OwnerID uint `gorm:"index;not null"`

	// Exercise is the primary label. A log is never persisted without one.
	Exercise string `gorm:"size:120;not null"`

	// Optional payload fields. Nil means the field was not submitted.
	Reps      *int
	Sets      *int
	PainLevel *int // 1-10 when present

	// Notes is optional free text.
	Notes string `gorm:"size:500"`

	// CreatedAt is server-assigned at creation and never mutated.
	CreatedAt time.Time
}
