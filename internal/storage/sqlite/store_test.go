package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "tracker.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustColor(t *testing.T, hex string) models.Color {
	t.Helper()
	c, err := models.ParseHexColor(hex)
	if err != nil {
		t.Fatalf("bad test color %q: %v", hex, err)
	}
	return c
}

func addTestCategory(t *testing.T, store *Store, id, label string, createdAt time.Time) models.Category {
	t.Helper()
	c := models.Category{ID: id, Label: label, CreatedAt: createdAt}
	if err := store.AddCategory(c); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}
	return c
}

func addTestTracker(t *testing.T, store *Store, tr models.Tracker) models.Tracker {
	t.Helper()
	if tr.Color == (models.Color{}) {
		tr.Color = mustColor(t, "#FD4C49")
	}
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now()
	}
	if err := store.AddTracker(tr); err != nil {
		t.Fatalf("failed to add tracker: %v", err)
	}
	return tr
}

func TestInitSeedsSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, "Local")
	}
}

func TestLoadWithoutInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("Load on missing database succeeded, want error")
	}
}

func TestSaveSettingsUpsert(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveSettings(models.Settings{Timezone: "Europe/Berlin"}); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if settings.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want Europe/Berlin", settings.Timezone)
	}
}

func TestCategoryCRUD(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	addTestCategory(t, store, "c1", "Health", now)
	addTestCategory(t, store, "c2", "Work", now.Add(time.Second))

	t.Run("get", func(t *testing.T) {
		c, err := store.GetCategory("c1")
		if err != nil {
			t.Fatalf("GetCategory returned error: %v", err)
		}
		if c.Label != "Health" {
			t.Errorf("Label = %q, want Health", c.Label)
		}
	})

	t.Run("list in creation order", func(t *testing.T) {
		categories, err := store.GetAllCategories()
		if err != nil {
			t.Fatalf("GetAllCategories returned error: %v", err)
		}
		if len(categories) != 2 || categories[0].ID != "c1" || categories[1].ID != "c2" {
			t.Errorf("unexpected order: %+v", categories)
		}
	})

	t.Run("update", func(t *testing.T) {
		if err := store.UpdateCategory(models.Category{ID: "c1", Label: "Fitness"}); err != nil {
			t.Fatalf("UpdateCategory returned error: %v", err)
		}
		c, _ := store.GetCategory("c1")
		if c.Label != "Fitness" {
			t.Errorf("Label = %q after update", c.Label)
		}
	})

	t.Run("missing id yields ErrNotFound", func(t *testing.T) {
		if _, err := store.GetCategory("nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetCategory error = %v, want ErrNotFound", err)
		}
		if err := store.UpdateCategory(models.Category{ID: "nope"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateCategory error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteCategory("nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteCategory error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete leaves trackers untouched", func(t *testing.T) {
		addTestTracker(t, store, models.Tracker{ID: "t1", Label: "Run", Emoji: "🏃", CategoryID: "c2"})
		if err := store.DeleteCategory("c2"); err != nil {
			t.Fatalf("DeleteCategory returned error: %v", err)
		}
		tr, err := store.GetTracker("t1")
		if err != nil {
			t.Fatalf("tracker vanished with its category: %v", err)
		}
		if tr.CategoryID != "c2" {
			t.Errorf("CategoryID = %q, want the dangling c2", tr.CategoryID)
		}
	})
}

func TestTrackerQueries(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	addTestCategory(t, store, "c1", "Health", now)

	addTestTracker(t, store, models.Tracker{
		ID: "mon-fri", Label: "Run", Emoji: "🏃", CategoryID: "c1",
		Schedule:  models.NewSchedule(time.Monday, time.Friday),
		CreatedAt: now,
	})
	addTestTracker(t, store, models.Tracker{
		ID: "daily", Label: "Water", Emoji: "💧", CategoryID: "c1",
		CreatedAt: now.Add(time.Second),
	})
	addTestTracker(t, store, models.Tracker{
		ID: "pinned", Label: "Meditate", Emoji: "🧘", CategoryID: "c1",
		Schedule:  models.NewSchedule(time.Sunday),
		Pinned:    true,
		CreatedAt: now.Add(2 * time.Second),
	})

	t.Run("scheduled on matching weekday", func(t *testing.T) {
		trackers, err := store.GetScheduledTrackers(time.Monday, "")
		if err != nil {
			t.Fatalf("GetScheduledTrackers returned error: %v", err)
		}
		ids := idsOf(trackers)
		if len(ids) != 2 || ids[0] != "mon-fri" || ids[1] != "daily" {
			t.Errorf("Monday trackers = %v, want [mon-fri daily]", ids)
		}
	})

	t.Run("nil schedule matches every weekday", func(t *testing.T) {
		trackers, err := store.GetScheduledTrackers(time.Wednesday, "")
		if err != nil {
			t.Fatalf("GetScheduledTrackers returned error: %v", err)
		}
		ids := idsOf(trackers)
		if len(ids) != 1 || ids[0] != "daily" {
			t.Errorf("Wednesday trackers = %v, want [daily]", ids)
		}
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		trackers, err := store.GetScheduledTrackers(time.Monday, "rU")
		if err != nil {
			t.Fatalf("GetScheduledTrackers returned error: %v", err)
		}
		ids := idsOf(trackers)
		if len(ids) != 1 || ids[0] != "mon-fri" {
			t.Errorf("search trackers = %v, want [mon-fri]", ids)
		}
	})

	t.Run("pinned regardless of schedule", func(t *testing.T) {
		trackers, err := store.GetPinnedTrackers("")
		if err != nil {
			t.Fatalf("GetPinnedTrackers returned error: %v", err)
		}
		ids := idsOf(trackers)
		if len(ids) != 1 || ids[0] != "pinned" {
			t.Errorf("pinned trackers = %v, want [pinned]", ids)
		}
	})

	t.Run("get by label", func(t *testing.T) {
		tr, err := store.GetTrackerByLabel("Water")
		if err != nil {
			t.Fatalf("GetTrackerByLabel returned error: %v", err)
		}
		if tr.ID != "daily" {
			t.Errorf("ID = %q, want daily", tr.ID)
		}
	})

	t.Run("schedule survives a round trip", func(t *testing.T) {
		tr, err := store.GetTracker("mon-fri")
		if err != nil {
			t.Fatalf("GetTracker returned error: %v", err)
		}
		if !tr.Schedule.Contains(time.Monday) || !tr.Schedule.Contains(time.Friday) || tr.Schedule.Contains(time.Tuesday) {
			t.Errorf("schedule = %v", tr.Schedule)
		}
	})

	t.Run("update missing tracker yields ErrNotFound", func(t *testing.T) {
		err := store.UpdateTracker(models.Tracker{ID: "nope", Color: mustColor(t, "#000000")})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateTracker error = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteTrackerCascadesRecords(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	addTestCategory(t, store, "c1", "Health", now)
	addTestTracker(t, store, models.Tracker{ID: "t1", Label: "Run", Emoji: "🏃", CategoryID: "c1"})
	addTestTracker(t, store, models.Tracker{ID: "t2", Label: "Read", Emoji: "📚", CategoryID: "c1"})

	for i, rec := range []models.Record{
		{ID: "r1", TrackerID: "t1", Date: now},
		{ID: "r2", TrackerID: "t1", Date: now.AddDate(0, 0, -1)},
		{ID: "r3", TrackerID: "t2", Date: now},
	} {
		if err := store.AddRecord(rec); err != nil {
			t.Fatalf("failed to add record %d: %v", i, err)
		}
	}

	if err := store.DeleteTracker("t1"); err != nil {
		t.Fatalf("DeleteTracker returned error: %v", err)
	}

	records, err := store.GetAllRecords()
	if err != nil {
		t.Fatalf("GetAllRecords returned error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r3" {
		t.Errorf("records after cascade = %+v, want only r3", records)
	}

	if err := store.DeleteTracker("t1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestRecords(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	addTestCategory(t, store, "c1", "Health", now)
	addTestTracker(t, store, models.Tracker{ID: "t1", Label: "Run", Emoji: "🏃", CategoryID: "c1"})

	t.Run("record for missing tracker is rejected", func(t *testing.T) {
		err := store.AddRecord(models.Record{ID: "r0", TrackerID: "ghost", Date: now})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("AddRecord error = %v, want ErrNotFound", err)
		}
	})

	t.Run("per-tracker records come newest first", func(t *testing.T) {
		old := models.Record{ID: "old", TrackerID: "t1", Date: now.AddDate(0, 0, -2)}
		recent := models.Record{ID: "recent", TrackerID: "t1", Date: now}
		for _, r := range []models.Record{old, recent} {
			if err := store.AddRecord(r); err != nil {
				t.Fatalf("AddRecord returned error: %v", err)
			}
		}

		records, err := store.GetRecordsForTracker("t1")
		if err != nil {
			t.Fatalf("GetRecordsForTracker returned error: %v", err)
		}
		if len(records) != 2 || records[0].ID != "recent" {
			t.Errorf("records = %+v, want recent first", records)
		}
	})

	t.Run("duplicate day records are not rejected", func(t *testing.T) {
		dup := models.Record{ID: "dup", TrackerID: "t1", Date: now}
		if err := store.AddRecord(dup); err != nil {
			t.Errorf("AddRecord for a duplicate day returned error: %v", err)
		}
	})

	t.Run("delete missing record yields ErrNotFound", func(t *testing.T) {
		if err := store.DeleteRecord("ghost"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteRecord error = %v, want ErrNotFound", err)
		}
	})
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	addTestCategory(t, store, "c1", "Health", now)
	addTestTracker(t, store, models.Tracker{ID: "good", Label: "Run", Emoji: "🏃", CategoryID: "c1"})

	// Corrupt row straight into the table, bypassing the model layer
	_, err := store.db.Exec(`
		INSERT INTO trackers (id, label, emoji, color, schedule, pinned, finished, completed_days, created_at, category_id)
		VALUES ('bad', 'Broken', 'x', 'not-a-color', NULL, 0, 0, 0, ?, 'c1')`,
		now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("failed to insert corrupt row: %v", err)
	}

	trackers, err := store.GetAllTrackers()
	if err != nil {
		t.Fatalf("GetAllTrackers returned error: %v", err)
	}
	if len(trackers) != 1 || trackers[0].ID != "good" {
		t.Errorf("trackers = %v, want only the well-formed row", idsOf(trackers))
	}

	// Point reads do fail, with a decode error
	if _, err := store.GetTracker("bad"); !errors.Is(err, storage.ErrDecode) {
		t.Errorf("GetTracker(bad) error = %v, want ErrDecode", err)
	}
}

func idsOf(trackers []models.Tracker) []string {
	ids := make([]string, 0, len(trackers))
	for _, t := range trackers {
		ids = append(ids, t.ID)
	}
	return ids
}
