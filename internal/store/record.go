package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/osolodkova/tracker/internal/logger"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

// RecordStore owns completion records. Mutations notify subscribers with
// the full updated record set.
type RecordStore struct {
	provider storage.Provider
	events   *Events
}

func NewRecordStore(provider storage.Provider, events *Events) *RecordStore {
	return &RecordStore{
		provider: provider,
		events:   events,
	}
}

// Latest returns the most recent record for the tracker, if any. By the
// toggling convention a tracker carries at most one record of interest.
func (s *RecordStore) Latest(trackerID string) (models.Record, bool, error) {
	records, err := s.provider.GetRecordsForTracker(trackerID)
	if err != nil {
		return models.Record{}, false, err
	}
	if len(records) == 0 {
		return models.Record{}, false, nil
	}
	return records[0], true, nil
}

// All returns every completion record.
func (s *RecordStore) All() ([]models.Record, error) {
	return s.provider.GetAllRecords()
}

// Add persists a completion record for the tracker on the given date.
// Fails if the tracker does not exist.
func (s *RecordStore) Add(trackerID string, date time.Time) (models.Record, error) {
	record := models.Record{
		ID:        uuid.New().String(),
		TrackerID: trackerID,
		Date:      date,
	}
	if err := s.provider.AddRecord(record); err != nil {
		return models.Record{}, err
	}

	s.notify("add")
	return record, nil
}

// Remove deletes the record. Removing an absent record is a no-op.
func (s *RecordStore) Remove(record models.Record) error {
	if err := s.provider.DeleteRecord(record.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}

	s.notify("remove")
	return nil
}

func (s *RecordStore) notify(action string) {
	records, err := s.provider.GetAllRecords()
	if err != nil {
		logger.Error("Failed to load records for notification", "error", err)
	}
	s.events.publish(Event{Kind: EventRecordsChanged, Action: action, Records: records})
}
