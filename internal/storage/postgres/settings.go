package postgres

import (
	"database/sql"
	"errors"

	"github.com/osolodkova/tracker/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(`SELECT timezone FROM settings WHERE id = 1`).Scan(&settings.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, nil
	}
	return settings, err
}

func (s *Store) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET timezone = EXCLUDED.timezone`,
		settings.Timezone)
	return err
}
