package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

// CategoryStore owns category records. Labels are not required to be
// unique; ordering is by creation time. Deleting a category leaves its
// trackers in place (see TrackerStore).
type CategoryStore struct {
	provider storage.Provider
	events   *Events
}

func NewCategoryStore(provider storage.Provider, events *Events) *CategoryStore {
	return &CategoryStore{
		provider: provider,
		events:   events,
	}
}

// List returns all categories ordered by creation time ascending.
func (s *CategoryStore) List() ([]models.Category, error) {
	return s.provider.GetAllCategories()
}

func (s *CategoryStore) Get(id string) (models.Category, error) {
	return s.provider.GetCategory(id)
}

// Create assigns an identifier and timestamp, persists the category and
// returns the stored value.
func (s *CategoryStore) Create(label string) (models.Category, error) {
	if strings.TrimSpace(label) == "" {
		return models.Category{}, fmt.Errorf("category label cannot be empty")
	}

	category := models.Category{
		ID:        uuid.New().String(),
		Label:     label,
		CreatedAt: time.Now(),
	}
	if err := s.provider.AddCategory(category); err != nil {
		return models.Category{}, err
	}

	s.events.publish(Event{Kind: EventCategoriesChanged, Action: "add"})
	return category, nil
}

// Rename updates the category label only.
func (s *CategoryStore) Rename(id, label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("category label cannot be empty")
	}

	category, err := s.provider.GetCategory(id)
	if err != nil {
		return err
	}
	category.Label = label
	if err := s.provider.UpdateCategory(category); err != nil {
		return err
	}

	s.events.publish(Event{Kind: EventCategoriesChanged, Action: "update"})
	return nil
}

// Delete removes the category without touching trackers that reference it.
func (s *CategoryStore) Delete(id string) error {
	if err := s.provider.DeleteCategory(id); err != nil {
		return err
	}

	s.events.publish(Event{Kind: EventCategoriesChanged, Action: "delete"})
	return nil
}
