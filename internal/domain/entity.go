package domain

import "time"

// Base carries the fields every stored document has: a store-assigned
// identifier and server-assigned timestamps. Entities embed it.
//
// The identifier is kept out of the BSON body; each gateway maps it to its
// own primary key representation.
type Base struct {
	ID        string    `json:"id" bson:"-"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// GetID returns the store-assigned identifier.
func (b *Base) GetID() string { return b.ID }

// SetID sets the store-assigned identifier.
func (b *Base) SetID(id string) { b.ID = id }

// Stamp sets both timestamps to now, truncated to millisecond precision
// so the value survives a round trip through any of the stores unchanged.
func (b *Base) Stamp(now time.Time) {
	now = now.UTC().Truncate(time.Millisecond)
	b.CreatedAt = now
	b.UpdatedAt = now
}
