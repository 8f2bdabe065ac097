package postgres

import (
	"fmt"

	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

func (s *Store) AddRecord(r models.Record) error {
	var exists int
	err := s.db.QueryRow(`SELECT count(*) FROM trackers WHERE id = $1`, r.TrackerID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("tracker %s: %w", r.TrackerID, storage.ErrNotFound)
	}

	_, err = s.db.Exec(`
		INSERT INTO records (id, tracker_id, date)
		VALUES ($1, $2, $3)`,
		r.ID, r.TrackerID, r.Date)
	return err
}

func (s *Store) GetRecordsForTracker(trackerID string) ([]models.Record, error) {
	return s.queryRecords(`
		SELECT id, tracker_id, date
		FROM records WHERE tracker_id = $1 ORDER BY date DESC`, trackerID)
}

func (s *Store) GetAllRecords() ([]models.Record, error) {
	return s.queryRecords(`
		SELECT id, tracker_id, date
		FROM records ORDER BY date`)
}

func (s *Store) DeleteRecord(id string) error {
	result, err := s.db.Exec(`DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, fmt.Sprintf("record %s", id))
}

func (s *Store) queryRecords(query string, args ...any) ([]models.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.TrackerID, &r.Date); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
