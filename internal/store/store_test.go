package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage/sqlite"
)

// testEnv wires the full domain layer over a throwaway sqlite database.
type testEnv struct {
	categories *CategoryStore
	trackers   *TrackerStore
	records    *RecordStore
	completion *Completion
	stats      *Stats
	events     *Events
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	provider := sqlite.NewStore(filepath.Join(t.TempDir(), "tracker.db"))
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to initialize provider: %v", err)
	}
	t.Cleanup(func() { provider.Close() })

	events := NewEvents()
	trackers := NewTrackerStore(provider, events)
	records := NewRecordStore(provider, events)
	return &testEnv{
		categories: NewCategoryStore(provider, events),
		trackers:   trackers,
		records:    records,
		completion: NewCompletion(trackers, records),
		stats:      NewStats(provider),
		events:     events,
	}
}

func (e *testEnv) mustCategory(t *testing.T, label string) models.Category {
	t.Helper()
	c, err := e.categories.Create(label)
	if err != nil {
		t.Fatalf("failed to create category %q: %v", label, err)
	}
	return c
}

func (e *testEnv) mustTracker(t *testing.T, label, emoji, categoryID string, schedule models.Schedule, pinned bool) models.Tracker {
	t.Helper()
	color, err := models.ParseHexColor("#007BFA")
	if err != nil {
		t.Fatalf("bad test color: %v", err)
	}
	tr, err := e.trackers.Create(models.Tracker{
		Label:      label,
		Emoji:      emoji,
		Color:      color,
		Schedule:   schedule,
		Pinned:     pinned,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("failed to create tracker %q: %v", label, err)
	}
	return tr
}

// monday returns noon of the next Monday strictly after now, so test days
// always postdate tracker creation.
func monday() time.Time {
	now := time.Now()
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}

func tuesday() time.Time {
	return monday().AddDate(0, 0, 1)
}
