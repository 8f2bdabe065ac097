package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

func (s *Store) AddCategory(c models.Category) error {
	_, err := s.db.Exec(`
		INSERT INTO categories (id, label, created_at)
		VALUES (?, ?, ?)`,
		c.ID, c.Label, c.CreatedAt.Format(timeLayout))
	return err
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow(`
		SELECT id, label, created_at
		FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
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
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) UpdateCategory(c models.Category) error {
	result, err := s.db.Exec(`
		UPDATE categories SET label = ? WHERE id = ?`,
		c.Label, c.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("category %s: %w", c.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteCategory removes only the category row. Trackers referencing it
// keep their category_id; the reference is weak.
func (s *Store) DeleteCategory(id string) error {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	var createdAt string

	if err := row.Scan(&c.ID, &c.Label, &createdAt); err != nil {
		return models.Category{}, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("category %s: bad created_at: %w", c.ID, storage.ErrDecode)
	}
	c.CreatedAt = t

	return c, nil
}
