package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/osolodkova/tracker/internal/constants"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/utils"
)

type AddCmd struct {
	Label    string `arg:"" optional:"" help:"Tracker label. Omit to use the interactive form."`
	Emoji    string `help:"Emoji glyph." default:""`
	Color    string `help:"Display color as #RRGGBB." default:""`
	Category string `help:"Category label or id." default:""`
	Schedule string `help:"Comma-separated weekdays (mon,wed,...). Omit for a one-off event." default:""`
	Pin      bool   `help:"Pin the tracker."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if c.Label == "" {
		return runAddForm(ctx)
	}

	if c.Emoji == "" || c.Color == "" || c.Category == "" {
		return fmt.Errorf("--emoji, --color and --category are required when a label is given")
	}

	color, err := models.ParseHexColor(c.Color)
	if err != nil {
		return err
	}
	schedule, err := ParseWeekdays(c.Schedule)
	if err != nil {
		return err
	}
	category, err := ctx.FindCategory(c.Category)
	if err != nil {
		return err
	}

	tracker, err := ctx.Trackers.Create(models.Tracker{
		Label:      c.Label,
		Emoji:      c.Emoji,
		Color:      color,
		Schedule:   schedule,
		Pinned:     c.Pin,
		CategoryID: category.ID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added tracker: %s %s (%s)\n", tracker.Emoji, tracker.Label, tracker.Schedule)
	return nil
}

// runAddForm collects the tracker fields interactively.
func runAddForm(ctx *Context) error {
	categories, err := ctx.Categories.List()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories yet, create one first with 'tracker category add'")
	}

	categoryOptions := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Label, c.ID))
	}

	colorOptions := make([]huh.Option[string], 0, len(constants.Palette))
	for _, hex := range constants.Palette {
		colorOptions = append(colorOptions, huh.NewOption(hex, hex))
	}

	weekdayOptions := []huh.Option[time.Weekday]{
		huh.NewOption("Monday", time.Monday),
		huh.NewOption("Tuesday", time.Tuesday),
		huh.NewOption("Wednesday", time.Wednesday),
		huh.NewOption("Thursday", time.Thursday),
		huh.NewOption("Friday", time.Friday),
		huh.NewOption("Saturday", time.Saturday),
		huh.NewOption("Sunday", time.Sunday),
	}

	var (
		label      string
		emoji      string
		colorHex   string
		categoryID string
		weekdays   []time.Weekday
		pinned     bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Value(&label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("label cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Value(&emoji).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("emoji cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions...).
				Value(&colorHex),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&categoryID),
			huh.NewMultiSelect[time.Weekday]().
				Title("Schedule").
				Description("Leave empty for a one-off event").
				Options(weekdayOptions...).
				Value(&weekdays),
			huh.NewConfirm().
				Title("Pin the tracker?").
				Value(&pinned),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	color, err := models.ParseHexColor(colorHex)
	if err != nil {
		return err
	}

	tracker, err := ctx.Trackers.Create(models.Tracker{
		Label:      label,
		Emoji:      emoji,
		Color:      color,
		Schedule:   models.NewSchedule(weekdays...),
		Pinned:     pinned,
		CategoryID: categoryID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added tracker: %s %s (%s)\n", tracker.Emoji, tracker.Label, tracker.Schedule)
	return nil
}

type ListCmd struct {
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Search string `help:"Filter by label substring." default:""`
}

func (c *ListCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Trackers.LoadFiltered(date, c.Search); err != nil {
		return err
	}

	sections := ctx.Trackers.Sections()
	if len(sections) == 0 {
		fmt.Printf("Nothing to track on %s.\n", FormatDate(date))
		return nil
	}

	records, err := ctx.Records.All()
	if err != nil {
		return err
	}
	doneToday := make(map[string]bool)
	for _, r := range records {
		if utils.SameDay(r.Date, date) {
			doneToday[r.TrackerID] = true
		}
	}

	for _, section := range sections {
		fmt.Printf("%s\n", section.Title)
		for _, t := range section.Trackers {
			mark := "○"
			if doneToday[t.ID] {
				mark = "✓"
			}
			fmt.Printf("  %s %s %s · %d days (%s)\n", mark, t.Emoji, t.Label, t.CompletedDays, t.Schedule)
		}
	}
	return nil
}

type EditCmd struct {
	Tracker  string  `arg:"" help:"Tracker label or id."`
	Label    *string `help:"New label."`
	Emoji    *string `help:"New emoji glyph."`
	Color    *string `help:"New display color as #RRGGBB."`
	Category *string `help:"New category label or id."`
	Schedule *string `help:"New comma-separated weekdays; empty string makes it a one-off event."`
	Finished *bool   `help:"Set the completion flag."`
}

func (c *EditCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTracker(c.Tracker)
	if err != nil {
		return err
	}

	if c.Label != nil {
		tracker.Label = *c.Label
	}
	if c.Emoji != nil {
		tracker.Emoji = *c.Emoji
	}
	if c.Color != nil {
		color, err := models.ParseHexColor(*c.Color)
		if err != nil {
			return err
		}
		tracker.Color = color
	}
	if c.Category != nil {
		category, err := ctx.FindCategory(*c.Category)
		if err != nil {
			return err
		}
		tracker.CategoryID = category.ID
	}
	if c.Schedule != nil {
		schedule, err := ParseWeekdays(*c.Schedule)
		if err != nil {
			return err
		}
		tracker.Schedule = schedule
	}
	if c.Finished != nil {
		tracker.Finished = *c.Finished
	}

	if err := ctx.Trackers.Update(tracker); err != nil {
		return err
	}
	fmt.Printf("Updated tracker: %s\n", tracker.Label)
	return nil
}

type DeleteCmd struct {
	Tracker string `arg:"" help:"Tracker label or id."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTracker(c.Tracker)
	if err != nil {
		return err
	}
	if err := ctx.Trackers.Delete(tracker.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted tracker: %s\n", tracker.Label)
	return nil
}

type PinCmd struct {
	Tracker string `arg:"" help:"Tracker label or id."`
}

func (c *PinCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTracker(c.Tracker)
	if err != nil {
		return err
	}
	if err := ctx.Trackers.TogglePin(tracker.ID); err != nil {
		return err
	}
	if tracker.Pinned {
		fmt.Printf("Unpinned tracker: %s\n", tracker.Label)
	} else {
		fmt.Printf("Pinned tracker: %s\n", tracker.Label)
	}
	return nil
}

type CompleteCmd struct {
	Tracker string `arg:"" help:"Tracker label or id."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	tracker, err := ctx.FindTracker(c.Tracker)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	completed, err := ctx.Completion.Toggle(tracker.ID, date)
	if err != nil {
		return err
	}
	if completed {
		fmt.Printf("Marked %q complete for %s\n", tracker.Label, FormatDate(date))
	} else {
		fmt.Printf("Unmarked %q for %s\n", tracker.Label, FormatDate(date))
	}
	return nil
}

type CompletedCmd struct{}

func (c *CompletedCmd) Run(ctx *Context) error {
	trackers, err := ctx.Trackers.ListCompleted()
	if err != nil {
		return err
	}
	if len(trackers) == 0 {
		fmt.Println("No completed trackers.")
		return nil
	}
	for _, t := range trackers {
		fmt.Printf("%s %s · %d days\n", t.Emoji, t.Label, t.CompletedDays)
	}
	return nil
}
