package model

import "time"

// Review is a guest review as stored in the `reviews` table. Reviews
// are standalone records: they carry the reviewer's display name
// rather than referencing a customer row.
type Review struct {
	ID        uint64    `json:"id"`         // reviews.id
	Name      string    `json:"name"`       // reviews.name
	Rating    uint8     `json:"rating"`     // reviews.rating (1..5)
	Comment   string    `json:"comment"`    // reviews.comment
	CreatedAt time.Time `json:"created_at"` // reviews.created_at
}
