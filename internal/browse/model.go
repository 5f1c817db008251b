// Package browse implements an interactive terminal browser over a contact
// book: contacts, notes, and upcoming birthdays in switchable tabs.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/book"
)

// Tab identifies which collection is listed.
type Tab int

const (
	TabContacts Tab = iota
	TabNotes
	TabBirthdays
	tabCount
)

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabContacts:
		return "Contacts"
	case TabNotes:
		return "Notes"
	case TabBirthdays:
		return "Birthdays"
	default:
		return "?"
	}
}

// Model is the Bubble Tea model for the browser. It reads and deletes
// through the book; it never holds its own copy between updates.
type Model struct {
	book       *book.Book
	windowDays int
	tab        Tab
	cursor     int
	query      string
	filtering  bool
	status     string
	input      textinput.Model
	help       help.Model
	keys       listKeys
	filterKeys filterKeys
	width      int
}

// Option configures a Model.
type Option func(*Model)

// WithWindowDays sets how many days ahead the birthdays tab looks.
func WithWindowDays(days int) Option {
	return func(m *Model) {
		m.windowDays = days
	}
}

// NewModel creates a Model on the contacts tab.
func NewModel(b *book.Book, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"

	m := Model{
		book:       b,
		windowDays: 7,
		input:      ti,
		help:       help.New(),
		keys:       ListKeyMap(),
		filterKeys: FilterKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if n := len(m.rows()); n > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = n - 1
			}
		}

	case key.Matches(msg, m.keys.Down):
		if n := len(m.rows()); n > 0 {
			m.cursor++
			if m.cursor >= n {
				m.cursor = 0
			}
		}

	case key.Matches(msg, m.keys.Tab):
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0
		m.status = ""

	case key.Matches(msg, m.keys.Filter):
		if m.tab == TabBirthdays {
			return m, nil
		}
		m.filtering = true
		m.input.SetValue(m.query)
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Clear):
		m.query = ""
		m.cursor = 0

	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.filterKeys.Apply):
		m.filtering = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.filterKeys.Cancel):
		m.filtering = false
		m.input.Blur()
		m.query = ""
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	m.cursor = 0
	return m, cmd
}

// deleteSelected removes the selected contact or note through the book.
// Deletion is by exact name or content, so duplicates go together.
func (m *Model) deleteSelected() {
	switch m.tab {
	case TabContacts:
		found := m.book.FindContact(m.query)
		if m.cursor >= len(found) {
			return
		}
		name := found[m.cursor].Name
		n := m.book.DeleteContact(name)
		m.status = fmt.Sprintf("Deleted %s named %q", plural(n, "contact"), name)
	case TabNotes:
		found := m.book.FindNote(m.query)
		if m.cursor >= len(found) {
			return
		}
		n := m.book.DeleteNote(found[m.cursor].Content)
		m.status = fmt.Sprintf("Deleted %s", plural(n, "note"))
	default:
		return
	}
	if rows := len(m.rows()); m.cursor >= rows && rows > 0 {
		m.cursor = rows - 1
	} else if rows == 0 {
		m.cursor = 0
	}
}

// rows returns the display lines of the current tab.
func (m Model) rows() []string {
	switch m.tab {
	case TabContacts:
		found := m.book.FindContact(m.query)
		rows := make([]string, len(found))
		for i, c := range found {
			rows[i] = c.String()
		}
		return rows
	case TabNotes:
		found := m.book.FindNote(m.query)
		rows := make([]string, len(found))
		for i, n := range found {
			rows[i] = n.Content
		}
		return rows
	case TabBirthdays:
		found := m.book.UpcomingBirthdays(m.windowDays)
		rows := make([]string, len(found))
		for i, c := range found {
			rows[i] = fmt.Sprintf("Name: %s, Birthday: %s", c.Name, c.BirthdayString())
		}
		return rows
	}
	return nil
}

// View renders the tabs, current list, and help bar.
func (m Model) View() string {
	var b strings.Builder

	labels := make([]string, 0, tabCount)
	for t := TabContacts; t < tabCount; t++ {
		if t == m.tab {
			labels = append(labels, ActiveTab().Render(t.String()))
		} else {
			labels = append(labels, InactiveTab().Render(t.String()))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	b.WriteString("\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(StatusLine().Render("  " + m.emptyText()))
		b.WriteString("\n")
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(SelectedRow().Render(CursorMarker + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.filtering:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case m.query != "":
		b.WriteString(StatusLine().Render(fmt.Sprintf("filter: %q", m.query)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StatusLine().Render(m.status))
		b.WriteString("\n")
	}

	if m.filtering {
		b.WriteString(m.help.View(m.filterKeys))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) emptyText() string {
	switch {
	case m.tab == TabBirthdays:
		return fmt.Sprintf("No upcoming birthdays within %d days.", m.windowDays)
	case m.query != "":
		return fmt.Sprintf("No %s match %q.", strings.ToLower(m.tab.String()), m.query)
	default:
		return fmt.Sprintf("No %s.", strings.ToLower(m.tab.String()))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
