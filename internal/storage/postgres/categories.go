package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

func (s *Store) AddCategory(c models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, label, created_at)
		VALUES ($1, $2, $3)`,
		c.ID, c.Label, c.CreatedAt)
	return err
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	var c models.Category
	err := s.db.QueryRow(`
		SELECT id, label, created_at
		FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Label, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
	}
	return c, err
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, label, created_at
		FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Label, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) UpdateCategory(c models.Category) error {
	result, err := s.db.Exec(`
		UPDATE categories SET label = $1 WHERE id = $2`,
		c.Label, c.ID)
	if err != nil {
		return err
	}
	return checkAffected(result, fmt.Sprintf("category %s", c.ID))
}

// DeleteCategory removes only the category row; trackers keep their weak
// reference.
func (s *Store) DeleteCategory(id string) error {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, fmt.Sprintf("category %s", id))
}

func checkAffected(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", entity, storage.ErrNotFound)
	}
	return nil
}
