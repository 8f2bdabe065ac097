package models

import "time"

// Category is a user-defined grouping label for trackers. Label uniqueness
// is not enforced by the stores; CreatedAt gives categories their stable
// display order.
type Category struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
