package store

import (
	"math"
	"sort"
	"time"

	"github.com/osolodkova/tracker/internal/constants"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

// Summary holds the aggregate counters shown on the statistics screen.
type Summary struct {
	CompletedTrackers int
	BestStreak        int
	PerfectDays       int
	Average           int
}

// Stats derives summary counters from all trackers and completion records.
type Stats struct {
	provider storage.Provider
}

func NewStats(provider storage.Provider) *Stats {
	return &Stats{provider: provider}
}

// Compute derives the summary:
//   - CompletedTrackers: trackers with a completed-day counter above zero.
//   - BestStreak: the longest run of consecutive calendar days on which any
//     single tracker has completion records.
//   - PerfectDays: days (drawn from the record set) on which every tracker
//     scheduled for that weekday and already created was completed.
//   - Average: mean of per-tracker completed-day counts, rounded.
//
// An empty tracker set yields the zero summary.
func (s *Stats) Compute() (Summary, error) {
	trackers, err := s.provider.GetAllTrackers()
	if err != nil {
		return Summary{}, err
	}
	if len(trackers) == 0 {
		return Summary{}, nil
	}

	records, err := s.provider.GetAllRecords()
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	total := 0
	for _, t := range trackers {
		if t.CompletedDays > 0 {
			summary.CompletedTrackers++
		}
		total += t.CompletedDays
	}
	summary.Average = int(math.Round(float64(total) / float64(len(trackers))))
	summary.BestStreak = bestStreak(records)
	summary.PerfectDays = perfectDays(trackers, records)

	return summary, nil
}

// bestStreak finds the longest consecutive-day run within any one
// tracker's records.
func bestStreak(records []models.Record) int {
	daysByTracker := make(map[string]map[string]bool)
	for _, r := range records {
		day := r.Date.Format(constants.DateFormat)
		if daysByTracker[r.TrackerID] == nil {
			daysByTracker[r.TrackerID] = make(map[string]bool)
		}
		daysByTracker[r.TrackerID][day] = true
	}

	best := 0
	for _, days := range daysByTracker {
		sorted := make([]string, 0, len(days))
		for d := range days {
			sorted = append(sorted, d)
		}
		sort.Strings(sorted)

		streak := 0
		var prev time.Time
		for i, d := range sorted {
			t, err := time.Parse(constants.DateFormat, d)
			if err != nil {
				continue
			}
			if i > 0 && t.Equal(prev.AddDate(0, 0, 1)) {
				streak++
			} else {
				streak = 1
			}
			if streak > best {
				best = streak
			}
			prev = t
		}
	}
	return best
}

// perfectDays counts the days on which every tracker scheduled for that
// weekday (irregular trackers count as scheduled every day) and created by
// then has a completion record.
func perfectDays(trackers []models.Tracker, records []models.Record) int {
	completedOn := make(map[string]map[string]bool)
	for _, r := range records {
		day := r.Date.Format(constants.DateFormat)
		if completedOn[day] == nil {
			completedOn[day] = make(map[string]bool)
		}
		completedOn[day][r.TrackerID] = true
	}

	count := 0
	for day, done := range completedOn {
		t, err := time.Parse(constants.DateFormat, day)
		if err != nil {
			continue
		}
		perfect := true
		for _, tracker := range trackers {
			if !tracker.Schedule.Contains(t.Weekday()) {
				continue
			}
			if tracker.CreatedAt.Format(constants.DateFormat) > day {
				// Not yet created on that day
				continue
			}
			if !done[tracker.ID] {
				perfect = false
				break
			}
		}
		if perfect {
			count++
		}
	}
	return count
}
