package store

import (
	"testing"
	"time"
)

func TestToggleMarksAndUnmarks(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	run := env.mustTracker(t, "Run", "🏃", health.ID, nil, false)
	day := monday()

	t.Run("first toggle marks", func(t *testing.T) {
		done, err := env.completion.Toggle(run.ID, day)
		if err != nil {
			t.Fatalf("Toggle returned error: %v", err)
		}
		if !done {
			t.Error("Toggle = false, want marked")
		}

		got, _ := env.trackers.Get(run.ID)
		if got.CompletedDays != 1 {
			t.Errorf("CompletedDays = %d, want 1", got.CompletedDays)
		}
		if on, _ := env.completion.CompletedOn(run.ID, day); !on {
			t.Error("CompletedOn = false after marking")
		}
	})

	t.Run("second toggle on the same day unmarks", func(t *testing.T) {
		// A later hour, still the same calendar day
		done, err := env.completion.Toggle(run.ID, day.Add(7*time.Hour))
		if err != nil {
			t.Fatalf("Toggle returned error: %v", err)
		}
		if done {
			t.Error("Toggle = true, want unmarked")
		}

		got, _ := env.trackers.Get(run.ID)
		if got.CompletedDays != 0 {
			t.Errorf("CompletedDays = %d, want 0", got.CompletedDays)
		}
		records, _ := env.records.All()
		if len(records) != 0 {
			t.Errorf("records = %d, want none", len(records))
		}
	})
}

func TestToggleReplacesStaleRecord(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	run := env.mustTracker(t, "Run", "🏃", health.ID, nil, false)

	if _, err := env.completion.Toggle(run.ID, monday()); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	done, err := env.completion.Toggle(run.ID, tuesday())
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if !done {
		t.Error("Toggle on a new day = false, want marked")
	}

	got, _ := env.trackers.Get(run.ID)
	if got.CompletedDays != 2 {
		t.Errorf("CompletedDays = %d, want 2", got.CompletedDays)
	}

	// The stale record is replaced, not accumulated
	records, _ := env.records.All()
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if on, _ := env.completion.CompletedOn(run.ID, monday()); on {
		t.Error("CompletedOn(Monday) = true after the record moved to Tuesday")
	}
	if on, _ := env.completion.CompletedOn(run.ID, tuesday()); !on {
		t.Error("CompletedOn(Tuesday) = false")
	}
}

func TestToggleCounterNeverGoesNegative(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	run := env.mustTracker(t, "Run", "🏃", health.ID, nil, false)
	day := monday()

	if _, err := env.completion.Toggle(run.ID, day); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	// Zero the counter behind the protocol's back, then unmark
	run, _ = env.trackers.Get(run.ID)
	run.CompletedDays = 0
	if err := env.trackers.Update(run); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if _, err := env.completion.Toggle(run.ID, day); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	got, _ := env.trackers.Get(run.ID)
	if got.CompletedDays != 0 {
		t.Errorf("CompletedDays = %d, want floor at 0", got.CompletedDays)
	}
}

func TestListCompletedTracksFinishedFlag(t *testing.T) {
	env := newTestEnv(t)
	health := env.mustCategory(t, "Health")
	run := env.mustTracker(t, "Run", "🏃", health.ID, nil, false)

	// Marking complete does not finish the tracker
	if _, err := env.completion.Toggle(run.ID, monday()); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	completed, err := env.trackers.ListCompleted()
	if err != nil {
		t.Fatalf("ListCompleted returned error: %v", err)
	}
	if len(completed) != 0 {
		t.Errorf("ListCompleted = %d trackers, want 0 before the flag is set", len(completed))
	}

	run, _ = env.trackers.Get(run.ID)
	run.Finished = true
	if err := env.trackers.Update(run); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	completed, _ = env.trackers.ListCompleted()
	if len(completed) != 1 || completed[0].ID != run.ID {
		t.Errorf("ListCompleted = %+v, want Run", completed)
	}
}
