package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/osolodkova/tracker/internal/backup"
	"github.com/osolodkova/tracker/internal/constants"
	"github.com/osolodkova/tracker/internal/logger"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
	"github.com/osolodkova/tracker/internal/store"
	"github.com/osolodkova/tracker/internal/utils"
)

// Context carries the wired stores into every command.
type Context struct {
	Store      storage.Provider
	Events     *store.Events
	Categories *store.CategoryStore
	Trackers   *store.TrackerStore
	Records    *store.RecordStore
	Completion *store.Completion
	Stats      *store.Stats
}

// NewContext wires the domain stores over a storage provider.
func NewContext(provider storage.Provider) *Context {
	events := store.NewEvents()
	trackers := store.NewTrackerStore(provider, events)
	records := store.NewRecordStore(provider, events)

	return &Context{
		Store:      provider,
		Events:     events,
		Categories: store.NewCategoryStore(provider, events),
		Trackers:   trackers,
		Records:    records,
		Completion: store.NewCompletion(trackers, records),
		Stats:      store.NewStats(provider),
	}
}

// Today returns the current moment in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, err
	}
	return utils.NowInTimezone(settings.Timezone)
}

// ResolveDate parses a YYYY-MM-DD argument in the configured timezone, or
// returns today when the argument is empty.
func (c *Context) ResolveDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return c.Today()
	}

	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	t, err := utils.ParseDateInLocation(dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}
	return t, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles
// errors. Only the sqlite backend is file-based; the postgres backend is
// skipped.
func (c *Context) PerformAutomaticBackup() {
	if storage.IsPostgresTarget(c.Store.GetConfigPath()) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindCategory resolves a category by exact label first, then by id.
func (c *Context) FindCategory(ref string) (models.Category, error) {
	categories, err := c.Categories.List()
	if err != nil {
		return models.Category{}, err
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Label, ref) {
			return cat, nil
		}
	}
	for _, cat := range categories {
		if cat.ID == ref {
			return cat, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %q not found", ref)
}

// FindTracker resolves a tracker by exact label first, then by id.
func (c *Context) FindTracker(ref string) (models.Tracker, error) {
	if t, err := c.Trackers.GetByLabel(ref); err == nil {
		return t, nil
	}
	if t, err := c.Trackers.Get(ref); err == nil {
		return t, nil
	}
	return models.Tracker{}, fmt.Errorf("tracker %q not found", ref)
}

// ParseWeekdays parses a comma-separated list of weekdays into a schedule.
// An empty input yields a nil schedule (irregular event).
func ParseWeekdays(s string) (models.Schedule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	dayMap := map[string]time.Weekday{
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
		"sun": time.Sunday, "sunday": time.Sunday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Numeric form, Monday-first (1=Monday ... 7=Sunday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 7 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num%7))
	}

	return models.NewSchedule(weekdays...), nil
}

// FormatDate renders a time as the standard YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}
