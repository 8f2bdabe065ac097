package models

import "time"

// Tracker is a user-defined habit or one-off event being monitored.
//
// A nil Schedule marks an irregular event that is shown on every date. The
// CategoryID reference is weak: deleting a category neither blocks on nor
// cascades to its trackers, so a tracker may outlive its category and
// callers must handle a lookup miss.
type Tracker struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Emoji         string    `json:"emoji"`
	Color         Color     `json:"color"`
	CompletedDays int       `json:"completed_days"`
	Schedule      Schedule  `json:"schedule,omitempty"`
	Pinned        bool      `json:"pinned"`
	Finished      bool      `json:"finished"`
	CreatedAt     time.Time `json:"created_at"`
	CategoryID    string    `json:"category_id"`
}
