package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osolodkova/tracker/internal/constants"
	"github.com/osolodkova/tracker/internal/logger"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
)

// Filter is the current view state: the selected date plus an optional
// case-insensitive label search.
type Filter struct {
	Date   time.Time
	Search string
}

// Section is one group of the sectioned view: an optional leading "Pinned"
// section followed by one section per category with matches.
type Section struct {
	Title    string
	Trackers []models.Tracker
}

// TrackerStore owns tracker records and the cached sectioned view. Every
// filter change or mutation synchronously re-derives the view and notifies
// subscribers; there is no intermediate state. A failed fetch yields an
// empty view and a log entry, never a partial one.
type TrackerStore struct {
	provider storage.Provider
	events   *Events
	filter   Filter
	sections []Section
}

func NewTrackerStore(provider storage.Provider, events *Events) *TrackerStore {
	return &TrackerStore{
		provider: provider,
		events:   events,
		filter:   Filter{Date: time.Now()},
	}
}

// Create persists a new tracker under the given category. The completed-day
// counter and completion flag always start at zero regardless of the input.
func (s *TrackerStore) Create(t models.Tracker) (models.Tracker, error) {
	if strings.TrimSpace(t.Label) == "" {
		return models.Tracker{}, fmt.Errorf("tracker label cannot be empty")
	}
	if t.Emoji == "" {
		return models.Tracker{}, fmt.Errorf("tracker emoji cannot be empty")
	}
	if _, err := s.provider.GetCategory(t.CategoryID); err != nil {
		return models.Tracker{}, err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now()
	t.CompletedDays = 0
	t.Finished = false

	if err := s.provider.AddTracker(t); err != nil {
		return models.Tracker{}, err
	}

	s.refresh()
	s.events.publish(Event{Kind: EventTrackersChanged, Action: "add"})
	return t, nil
}

func (s *TrackerStore) Get(id string) (models.Tracker, error) {
	return s.provider.GetTracker(id)
}

func (s *TrackerStore) GetByLabel(label string) (models.Tracker, error) {
	return s.provider.GetTrackerByLabel(label)
}

// Update replaces label, emoji, color, schedule, category, completed-day
// counter and completion flag of an existing tracker.
func (s *TrackerStore) Update(t models.Tracker) error {
	if err := s.provider.UpdateTracker(t); err != nil {
		return err
	}

	s.refresh()
	s.events.publish(Event{Kind: EventTrackersChanged, Action: "update"})
	return nil
}

// Delete removes the tracker; its completion records go with it at the
// storage layer.
func (s *TrackerStore) Delete(id string) error {
	if err := s.provider.DeleteTracker(id); err != nil {
		return err
	}

	s.refresh()
	s.events.publish(Event{Kind: EventTrackersChanged, Action: "delete"})
	return nil
}

// TogglePin flips the pinned flag in isolation.
func (s *TrackerStore) TogglePin(id string) error {
	t, err := s.provider.GetTracker(id)
	if err != nil {
		return err
	}
	if err := s.provider.SetTrackerPinned(id, !t.Pinned); err != nil {
		return err
	}

	s.refresh()
	s.events.publish(Event{Kind: EventTrackersChanged, Action: "pin"})
	return nil
}

// LoadFiltered sets the current filter, recomputes the cached sectioned
// view and notifies subscribers. Matching trackers are those whose schedule
// is nil or contains the weekday of date, narrowed by the search text.
// Pinned trackers lead the view regardless of schedule match and never
// reappear in their category section.
func (s *TrackerStore) LoadFiltered(date time.Time, search string) error {
	s.filter = Filter{Date: date, Search: search}
	err := s.rebuild()
	s.events.publish(Event{Kind: EventTrackersChanged, Action: "filter"})
	return err
}

// Filter returns the current filter.
func (s *TrackerStore) Filter() Filter {
	return s.filter
}

// Sections returns the cached sectioned view.
func (s *TrackerStore) Sections() []Section {
	return s.sections
}

func (s *TrackerStore) SectionCount() int {
	return len(s.sections)
}

func (s *TrackerStore) RowCount(section int) int {
	if section < 0 || section >= len(s.sections) {
		return 0
	}
	return len(s.sections[section].Trackers)
}

// HeaderLabel returns the section title, or "" when out of range.
func (s *TrackerStore) HeaderLabel(section int) string {
	if section < 0 || section >= len(s.sections) {
		return ""
	}
	return s.sections[section].Title
}

func (s *TrackerStore) TrackerAt(section, row int) (models.Tracker, bool) {
	if section < 0 || section >= len(s.sections) {
		return models.Tracker{}, false
	}
	if row < 0 || row >= len(s.sections[section].Trackers) {
		return models.Tracker{}, false
	}
	return s.sections[section].Trackers[row], true
}

// ListCompleted returns trackers whose completion flag is set.
func (s *TrackerStore) ListCompleted() ([]models.Tracker, error) {
	return s.provider.GetCompletedTrackers()
}

// ListAll returns every tracker, unfiltered. Trackers with a dangling
// category reference are included.
func (s *TrackerStore) ListAll() ([]models.Tracker, error) {
	return s.provider.GetAllTrackers()
}

// refresh recomputes the view after a mutation. Failures degrade to an
// empty view and are logged; the mutation itself has already succeeded.
func (s *TrackerStore) refresh() {
	if err := s.rebuild(); err != nil {
		logger.Error("Failed to rebuild sectioned view", "error", err)
	}
}

func (s *TrackerStore) rebuild() error {
	sections, err := s.buildSections()
	if err != nil {
		s.sections = nil
		return err
	}
	s.sections = sections
	return nil
}

func (s *TrackerStore) buildSections() ([]Section, error) {
	pinned, err := s.provider.GetPinnedTrackers(s.filter.Search)
	if err != nil {
		return nil, err
	}
	scheduled, err := s.provider.GetScheduledTrackers(s.filter.Date.Weekday(), s.filter.Search)
	if err != nil {
		return nil, err
	}
	categories, err := s.provider.GetAllCategories()
	if err != nil {
		return nil, err
	}

	var sections []Section
	if len(pinned) > 0 {
		sections = append(sections, Section{
			Title:    constants.PinnedSectionLabel,
			Trackers: pinned,
		})
	}

	pinnedIDs := make(map[string]bool, len(pinned))
	for _, t := range pinned {
		pinnedIDs[t.ID] = true
	}

	byCategory := make(map[string][]models.Tracker)
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	for _, t := range scheduled {
		if pinnedIDs[t.ID] {
			continue
		}
		if !known[t.CategoryID] {
			// Dangling reference: the category was deleted out from under
			// the tracker. It stays retrievable via ListAll but has no
			// section to live in.
			logger.Debug("Tracker references missing category", "tracker", t.ID, "category", t.CategoryID)
			continue
		}
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	for _, c := range categories {
		if trackers := byCategory[c.ID]; len(trackers) > 0 {
			sections = append(sections, Section{
				Title:    c.Label,
				Trackers: trackers,
			})
		}
	}

	return sections, nil
}
