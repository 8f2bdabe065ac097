package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osolodkova/tracker/internal/logger"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

const trackerColumns = "id, label, emoji, color, schedule, pinned, finished, completed_days, created_at, category_id"

func (s *Store) AddTracker(t models.Tracker) error {
	_, err := s.db.Exec(`
		INSERT INTO trackers (`+trackerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Label, t.Emoji, t.Color.Hex(), scheduleValue(t.Schedule),
		t.Pinned, t.Finished, t.CompletedDays,
		t.CreatedAt.Format(timeLayout), t.CategoryID)
	return err
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	row := s.db.QueryRow(`
		SELECT `+trackerColumns+`
		FROM trackers WHERE id = ?`, id)

	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tracker{}, fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}
	return t, err
}

func (s *Store) GetTrackerByLabel(label string) (models.Tracker, error) {
	row := s.db.QueryRow(`
		SELECT `+trackerColumns+`
		FROM trackers WHERE label = ? ORDER BY created_at LIMIT 1`, label)

	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tracker{}, fmt.Errorf("tracker %q: %w", label, storage.ErrNotFound)
	}
	return t, err
}

func (s *Store) GetAllTrackers() ([]models.Tracker, error) {
	return s.queryTrackers(`
		SELECT `+trackerColumns+`
		FROM trackers ORDER BY created_at`)
}

func (s *Store) GetScheduledTrackers(weekday time.Weekday, search string) ([]models.Tracker, error) {
	// The schedule column is a Monday-first positional bitstring; substr is
	// 1-based. NULL schedule means the tracker is shown every day.
	query := `
		SELECT ` + trackerColumns + `
		FROM trackers
		WHERE (schedule IS NULL OR substr(schedule, ?, 1) = '1')`
	args := []any{models.MondayIndex(weekday) + 1}

	if search != "" {
		query += ` AND lower(label) LIKE lower(?)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at`

	return s.queryTrackers(query, args...)
}

func (s *Store) GetPinnedTrackers(search string) ([]models.Tracker, error) {
	query := `
		SELECT ` + trackerColumns + `
		FROM trackers WHERE pinned = 1`
	var args []any
	if search != "" {
		query += ` AND lower(label) LIKE lower(?)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at`

	return s.queryTrackers(query, args...)
}

func (s *Store) GetCompletedTrackers() ([]models.Tracker, error) {
	return s.queryTrackers(`
		SELECT ` + trackerColumns + `
		FROM trackers WHERE finished = 1 ORDER BY created_at`)
}

func (s *Store) UpdateTracker(t models.Tracker) error {
	result, err := s.db.Exec(`
		UPDATE trackers SET
			label = ?, emoji = ?, color = ?, schedule = ?,
			pinned = ?, finished = ?, completed_days = ?, category_id = ?
		WHERE id = ?`,
		t.Label, t.Emoji, t.Color.Hex(), scheduleValue(t.Schedule),
		t.Pinned, t.Finished, t.CompletedDays, t.CategoryID, t.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("tracker %s: %w", t.ID, storage.ErrNotFound)
	}

	return nil
}

func (s *Store) SetTrackerPinned(id string, pinned bool) error {
	result, err := s.db.Exec(`UPDATE trackers SET pinned = ? WHERE id = ?`, pinned, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}

	return nil
}

// DeleteTracker removes the tracker and, in the same transaction, every
// completion record referencing it.
func (s *Store) DeleteTracker(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM trackers WHERE id = ?`, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("tracker %s: %w", id, storage.ErrNotFound)
	}

	if _, err := tx.Exec(`DELETE FROM records WHERE tracker_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// queryTrackers runs a tracker SELECT and decodes the rows. A row with a
// malformed color or timestamp is skipped and logged instead of failing the
// listing.
func (s *Store) queryTrackers(query string, args ...any) ([]models.Tracker, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trackers []models.Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			if errors.Is(err, storage.ErrDecode) {
				logger.Warn("Skipping malformed tracker row", "error", err)
				continue
			}
			return nil, err
		}
		trackers = append(trackers, t)
	}

	return trackers, rows.Err()
}

func scanTracker(row rowScanner) (models.Tracker, error) {
	var t models.Tracker
	var colorHex, createdAt string
	var schedule sql.NullString

	err := row.Scan(&t.ID, &t.Label, &t.Emoji, &colorHex, &schedule,
		&t.Pinned, &t.Finished, &t.CompletedDays, &createdAt, &t.CategoryID)
	if err != nil {
		return models.Tracker{}, err
	}

	color, err := models.ParseHexColor(colorHex)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("tracker %s: bad color %q: %w", t.ID, colorHex, storage.ErrDecode)
	}
	t.Color = color

	if schedule.Valid {
		t.Schedule = models.DecodeSchedule(schedule.String)
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("tracker %s: bad created_at: %w", t.ID, storage.ErrDecode)
	}

	return t, nil
}

func scheduleValue(s models.Schedule) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: s.Encode(), Valid: true}
}
