package storage

import (
	"time"

	"github.com/osolodkova/tracker/internal/models"
)

// Provider is the persistence backend for categories, trackers, completion
// records and settings. All calls are synchronous and blocking; providers
// are driven from a single goroutine and carry no locking of their own.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Migrate(logFn func(string)) (int, error)
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	UpdateCategory(models.Category) error
	DeleteCategory(id string) error

	// Trackers
	AddTracker(models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	GetTrackerByLabel(label string) (models.Tracker, error)
	GetAllTrackers() ([]models.Tracker, error)
	// GetScheduledTrackers returns trackers whose schedule is NULL or
	// contains the given weekday, optionally narrowed by a case-insensitive
	// label substring, ordered by creation time.
	GetScheduledTrackers(weekday time.Weekday, search string) ([]models.Tracker, error)
	// GetPinnedTrackers returns pinned trackers regardless of schedule,
	// optionally narrowed by a case-insensitive label substring.
	GetPinnedTrackers(search string) ([]models.Tracker, error)
	GetCompletedTrackers() ([]models.Tracker, error)
	UpdateTracker(models.Tracker) error
	SetTrackerPinned(id string, pinned bool) error
	// DeleteTracker removes the tracker and cascades to its records.
	DeleteTracker(id string) error

	// Records
	AddRecord(models.Record) error
	GetRecordsForTracker(trackerID string) ([]models.Record, error)
	GetAllRecords() ([]models.Record, error)
	DeleteRecord(id string) error
}
