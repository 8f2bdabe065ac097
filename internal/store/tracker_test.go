package store

import (
	"errors"
	"testing"
	"time"

	"github.com/osolodkova/tracker/internal/constants"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

func sectionTitles(sections []Section) []string {
	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	return titles
}

func sectionLabels(s Section) []string {
	labels := make([]string, 0, len(s.Trackers))
	for _, t := range s.Trackers {
		labels = append(labels, t.Label)
	}
	return labels
}

func TestCreateTrackerValidation(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	color, _ := models.ParseHexColor("#007BFA")

	t.Run("empty label rejected", func(t *testing.T) {
		_, err := env.trackers.Create(models.Tracker{Emoji: "🏃", Color: color, CategoryID: health.ID})
		if err == nil {
			t.Error("Create accepted an empty label")
		}
	})

	t.Run("missing category rejected", func(t *testing.T) {
		_, err := env.trackers.Create(models.Tracker{Label: "Run", Emoji: "🏃", Color: color, CategoryID: "ghost"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Create error = %v, want ErrNotFound", err)
		}
	})

	t.Run("counter and flag start at zero", func(t *testing.T) {
		tr, err := env.trackers.Create(models.Tracker{
			Label: "Run", Emoji: "🏃", Color: color, CategoryID: health.ID,
			CompletedDays: 99, Finished: true,
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if tr.CompletedDays != 0 || tr.Finished {
			t.Errorf("new tracker = %d days, finished=%v, want fresh zeros", tr.CompletedDays, tr.Finished)
		}
	})
}

func TestLoadFilteredScheduleMatch(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	env.mustTracker(t, "Run", "🏃", health.ID, models.NewSchedule(time.Monday, time.Wednesday), false)

	t.Run("scheduled weekday yields the section", func(t *testing.T) {
		if err := env.trackers.LoadFiltered(monday(), ""); err != nil {
			t.Fatalf("LoadFiltered returned error: %v", err)
		}
		sections := env.trackers.Sections()
		if len(sections) != 1 || sections[0].Title != "Health" {
			t.Fatalf("sections = %v, want [Health]", sectionTitles(sections))
		}
		if labels := sectionLabels(sections[0]); len(labels) != 1 || labels[0] != "Run" {
			t.Errorf("Health section = %v, want [Run]", labels)
		}
	})

	t.Run("unscheduled weekday yields no sections", func(t *testing.T) {
		if err := env.trackers.LoadFiltered(tuesday(), ""); err != nil {
			t.Fatalf("LoadFiltered returned error: %v", err)
		}
		if n := env.trackers.SectionCount(); n != 0 {
			t.Errorf("SectionCount = %d, want 0", n)
		}
	})
}

func TestLoadFilteredNilScheduleMatchesEveryDate(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	env.mustTracker(t, "Water", "💧", health.ID, nil, false)

	for _, date := range []time.Time{monday(), tuesday(), monday().AddDate(0, 0, 5)} {
		if err := env.trackers.LoadFiltered(date, ""); err != nil {
			t.Fatalf("LoadFiltered returned error: %v", err)
		}
		sections := env.trackers.Sections()
		if len(sections) != 1 || len(sections[0].Trackers) != 1 {
			t.Errorf("on %s: sections = %v, want Water present", date.Weekday(), sectionTitles(sections))
		}
	}
}

func TestLoadFilteredPinnedFirst(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	env.mustTracker(t, "Run", "🏃", health.ID, models.NewSchedule(time.Monday), false)
	// Pinned, but scheduled for a day that never matches the filter below
	env.mustTracker(t, "Meditate", "🧘", health.ID, models.NewSchedule(time.Sunday), true)

	if err := env.trackers.LoadFiltered(monday(), ""); err != nil {
		t.Fatalf("LoadFiltered returned error: %v", err)
	}

	sections := env.trackers.Sections()
	if len(sections) != 2 {
		t.Fatalf("sections = %v, want [Pinned Health]", sectionTitles(sections))
	}
	if sections[0].Title != constants.PinnedSectionLabel {
		t.Errorf("first section = %q, want %q", sections[0].Title, constants.PinnedSectionLabel)
	}
	if labels := sectionLabels(sections[0]); len(labels) != 1 || labels[0] != "Meditate" {
		t.Errorf("pinned section = %v, want [Meditate]", labels)
	}
	// No duplicate in the category section
	if labels := sectionLabels(sections[1]); len(labels) != 1 || labels[0] != "Run" {
		t.Errorf("Health section = %v, want [Run] without the pinned tracker", labels)
	}
}

func TestLoadFilteredSearch(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	env.mustTracker(t, "Run", "🏃", health.ID, nil, false)
	env.mustTracker(t, "Read", "📚", health.ID, nil, false)
	env.mustTracker(t, "Meditate", "🧘", health.ID, nil, true)

	if err := env.trackers.LoadFiltered(monday(), "re"); err != nil {
		t.Fatalf("LoadFiltered returned error: %v", err)
	}

	sections := env.trackers.Sections()
	// Search narrows the pinned section too, so Meditate drops out entirely
	if len(sections) != 1 || sections[0].Title != "Health" {
		t.Fatalf("sections = %v, want [Health]", sectionTitles(sections))
	}
	if labels := sectionLabels(sections[0]); len(labels) != 1 || labels[0] != "Read" {
		t.Errorf("matches = %v, want [Read]", labels)
	}
}

func TestLoadFilteredSectionOrder(t *testing.T) {
	env := newTestEnv(t)
	// Creation order must drive section order, not label order
	work := env.mustCategory(t, "Work")
	health := env.mustCategory(t, "Health")
	env.mustTracker(t, "Standup", "🗣", work.ID, nil, false)
	env.mustTracker(t, "Run", "🏃", health.ID, nil, false)

	if err := env.trackers.LoadFiltered(monday(), ""); err != nil {
		t.Fatalf("LoadFiltered returned error: %v", err)
	}

	titles := sectionTitles(env.trackers.Sections())
	if len(titles) != 2 || titles[0] != "Work" || titles[1] != "Health" {
		t.Errorf("section order = %v, want [Work Health]", titles)
	}
}

func TestDanglingCategoryReference(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	run := env.mustTracker(t, "Run", "🏃", health.ID, nil, false)

	if err := env.categories.Delete(health.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	t.Run("omitted from the sectioned view", func(t *testing.T) {
		if err := env.trackers.LoadFiltered(monday(), ""); err != nil {
			t.Fatalf("LoadFiltered returned error: %v", err)
		}
		if n := env.trackers.SectionCount(); n != 0 {
			t.Errorf("SectionCount = %d, want 0 for a dangling tracker", n)
		}
	})

	t.Run("still retrievable via ListAll", func(t *testing.T) {
		all, err := env.trackers.ListAll()
		if err != nil {
			t.Fatalf("ListAll returned error: %v", err)
		}
		if len(all) != 1 || all[0].ID != run.ID {
			t.Errorf("ListAll = %+v, want the dangling tracker", all)
		}
	})
}

func TestDeleteMissingTrackerLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	env.mustTracker(t, "Run", "🏃", health.ID, nil, false)

	if err := env.trackers.Delete("ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Delete error = %v, want ErrNotFound", err)
	}

	all, err := env.trackers.ListAll()
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("tracker count = %d after failed delete, want 1", len(all))
	}
}

func TestViewAccessors(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	run := env.mustTracker(t, "Run", "🏃", health.ID, nil, false)
	env.mustTracker(t, "Water", "💧", health.ID, nil, false)

	if err := env.trackers.LoadFiltered(monday(), ""); err != nil {
		t.Fatalf("LoadFiltered returned error: %v", err)
	}

	if n := env.trackers.SectionCount(); n != 1 {
		t.Fatalf("SectionCount = %d, want 1", n)
	}
	if n := env.trackers.RowCount(0); n != 2 {
		t.Errorf("RowCount(0) = %d, want 2", n)
	}
	if n := env.trackers.RowCount(5); n != 0 {
		t.Errorf("RowCount(5) = %d, want 0", n)
	}
	if got := env.trackers.HeaderLabel(0); got != "Health" {
		t.Errorf("HeaderLabel(0) = %q, want Health", got)
	}
	if got := env.trackers.HeaderLabel(9); got != "" {
		t.Errorf("HeaderLabel(9) = %q, want empty", got)
	}
	if tr, ok := env.trackers.TrackerAt(0, 0); !ok || tr.ID != run.ID {
		t.Errorf("TrackerAt(0,0) = %v/%v, want Run", tr.Label, ok)
	}
	if _, ok := env.trackers.TrackerAt(0, 7); ok {
		t.Error("TrackerAt out of range reported ok")
	}
	if got := env.trackers.Filter(); !got.Date.Equal(monday()) || got.Search != "" {
		t.Errorf("Filter = %+v", got)
	}
}

func TestTogglePin(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	run := env.mustTracker(t, "Run", "🏃", health.ID, nil, false)

	if err := env.trackers.TogglePin(run.ID); err != nil {
		t.Fatalf("TogglePin returned error: %v", err)
	}
	got, err := env.trackers.Get(run.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !got.Pinned {
		t.Error("tracker not pinned after toggle")
	}

	if err := env.trackers.TogglePin(run.ID); err != nil {
		t.Fatalf("TogglePin returned error: %v", err)
	}
	got, _ = env.trackers.Get(run.ID)
	if got.Pinned {
		t.Error("tracker still pinned after second toggle")
	}
}
