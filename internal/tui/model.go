// Package tui renders the interactive day view: the filtered, sectioned
// tracker list for a selected date with completion toggling.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osolodkova/tracker/internal/constants"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/store"
	"github.com/osolodkova/tracker/internal/utils"
)

// row is one selectable line of the flattened sectioned view.
type row struct {
	section int
	index   int
	tracker models.Tracker
}

type Model struct {
	trackers   *store.TrackerStore
	records    *store.RecordStore
	completion *store.Completion

	state  constants.SessionState
	keys   KeyMap
	help   help.Model
	search textinput.Model

	date   time.Time
	rows   []row
	cursor int
	done   map[string]bool

	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(trackers *store.TrackerStore, records *store.RecordStore, completion *store.Completion, today func() (time.Time, error)) (Model, error) {
	date, err := today()
	if err != nil {
		return Model{}, err
	}

	search := textinput.New()
	search.Placeholder = "search trackers"
	search.CharLimit = 64

	m := Model{
		trackers:   trackers,
		records:    records,
		completion: completion,
		state:      constants.StateBrowsing,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		search:     search,
		date:       utils.DayOf(date),
		done:       map[string]bool{},
	}
	m.reload()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state == constants.StateSearching {
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PrevDay):
		m.date = m.date.AddDate(0, 0, -1)
		m.reload()

	case key.Matches(msg, m.keys.NextDay):
		m.date = m.date.AddDate(0, 0, 1)
		m.reload()

	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.current(); ok {
			_, m.err = m.completion.Toggle(r.tracker.ID, m.date)
			m.reload()
		}

	case key.Matches(msg, m.keys.Pin):
		if r, ok := m.current(); ok {
			m.err = m.trackers.TogglePin(r.tracker.ID)
			m.reload()
		}

	case key.Matches(msg, m.keys.Search):
		m.state = constants.StateSearching
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ExitMode):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.reload()
		}
	}
	return m, nil
}

func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = constants.StateBrowsing
		m.search.Blur()
		return m, nil
	case "esc":
		m.state = constants.StateBrowsing
		m.search.Blur()
		m.search.SetValue("")
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.reload()
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Trackers · %s (%s)",
		m.date.Format(constants.DateFormat), m.date.Weekday())))
	b.WriteString("\n")

	if m.state == constants.StateSearching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to track on this day."))
		b.WriteString("\n")
	}

	flat := 0
	for _, section := range m.trackers.Sections() {
		b.WriteString(headerStyle.Render(section.Title))
		b.WriteString("\n")
		for _, t := range section.Trackers {
			mark := "○"
			if m.done[t.ID] {
				mark = doneStyle.Render("✓")
			}
			line := fmt.Sprintf("%s %s %s  %s", mark, t.Emoji, t.Label,
				mutedStyle.Render(fmt.Sprintf("%d days", t.CompletedDays)))

			if flat == m.cursor {
				b.WriteString(selectedRowStyle.Render("> " + line))
			} else {
				b.WriteString(rowStyle.Render("  " + line))
			}
			b.WriteString("\n")
			flat++
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// reload re-applies the filter for the current date and search text, then
// flattens the sectioned view and refreshes the completion marks.
func (m *Model) reload() {
	if err := m.trackers.LoadFiltered(m.date, m.search.Value()); err != nil {
		m.err = err
	}

	m.rows = m.rows[:0]
	for si, section := range m.trackers.Sections() {
		for ri, t := range section.Trackers {
			m.rows = append(m.rows, row{section: si, index: ri, tracker: t})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	m.done = map[string]bool{}
	records, err := m.records.All()
	if err != nil {
		m.err = err
		return
	}
	for _, r := range records {
		if utils.SameDay(r.Date, m.date) {
			m.done[r.TrackerID] = true
		}
	}
}
