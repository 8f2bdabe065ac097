package models

import "time"

// Record is evidence that a tracker was marked done on a specific date. At
// most one record per (tracker, calendar day) exists by convention; the
// toggling protocol in the store layer maintains that invariant, the
// persistence layer does not enforce it.
type Record struct {
	ID        string    `json:"id"`
	TrackerID string    `json:"tracker_id"`
	Date      time.Time `json:"date"`
}
