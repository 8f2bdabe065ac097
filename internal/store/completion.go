package store

import (
	"time"

	"github.com/osolodkova/tracker/internal/utils"
)

// Completion implements the toggling protocol on top of the tracker and
// record stores. Toggling is keyed by the calendar day of the selected
// date: marking a tracker complete on a day it already has a record undoes
// that completion; a record from a different day is treated as stale and
// replaced.
type Completion struct {
	trackers *TrackerStore
	records  *RecordStore
}

func NewCompletion(trackers *TrackerStore, records *RecordStore) *Completion {
	return &Completion{
		trackers: trackers,
		records:  records,
	}
}

// Toggle marks the tracker complete for day, or unmarks it if it is
// already completed on that calendar day. Returns the resulting completed
// state for the day.
func (c *Completion) Toggle(trackerID string, day time.Time) (bool, error) {
	tracker, err := c.trackers.Get(trackerID)
	if err != nil {
		return false, err
	}

	record, exists, err := c.records.Latest(trackerID)
	if err != nil {
		return false, err
	}

	if exists && utils.SameDay(record.Date, day) {
		// Undo today's completion
		if err := c.records.Remove(record); err != nil {
			return false, err
		}
		if tracker.CompletedDays > 0 {
			tracker.CompletedDays--
		}
		return false, c.trackers.Update(tracker)
	}

	if exists {
		// Stale record from another day: replace it and count the new day
		if err := c.records.Remove(record); err != nil {
			return false, err
		}
	}
	if _, err := c.records.Add(trackerID, day); err != nil {
		return false, err
	}
	tracker.CompletedDays++
	return true, c.trackers.Update(tracker)
}

// CompletedOn reports whether the tracker has a record on the calendar day
// of date.
func (c *Completion) CompletedOn(trackerID string, date time.Time) (bool, error) {
	record, exists, err := c.records.Latest(trackerID)
	if err != nil {
		return false, err
	}
	return exists && utils.SameDay(record.Date, date), nil
}
