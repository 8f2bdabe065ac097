package sqlite

import (
	"fmt"
	"time"

	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

func (s *Store) AddRecord(r models.Record) error {
	var exists int
	err := s.db.QueryRow(`SELECT count(*) FROM trackers WHERE id = ?`, r.TrackerID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("tracker %s: %w", r.TrackerID, storage.ErrNotFound)
	}

	_, err = s.db.Exec(`
		INSERT INTO records (id, tracker_id, date)
		VALUES (?, ?, ?)`,
		r.ID, r.TrackerID, r.Date.Format(timeLayout))
	return err
}

func (s *Store) GetRecordsForTracker(trackerID string) ([]models.Record, error) {
	return s.queryRecords(`
		SELECT id, tracker_id, date
		FROM records WHERE tracker_id = ? ORDER BY date DESC`, trackerID)
}

func (s *Store) GetAllRecords() ([]models.Record, error) {
	return s.queryRecords(`
		SELECT id, tracker_id, date
		FROM records ORDER BY date`)
}

func (s *Store) DeleteRecord(id string) error {
	result, err := s.db.Exec(`DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("record %s: %w", id, storage.ErrNotFound)
	}

	return nil
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
		var date string
		if err := rows.Scan(&r.ID, &r.TrackerID, &date); err != nil {
			return nil, err
		}
		r.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("record %s: bad date: %w", r.ID, storage.ErrDecode)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
