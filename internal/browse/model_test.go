package browse

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/contact"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestBook returns a book with two contacts and two notes whose clock
// puts Dan Iom's birthday exactly seven days out.
func newTestBook(t *testing.T) *book.Book {
	t.Helper()
	now := time.Date(2024, time.March, 8, 10, 0, 0, 0, time.Local)
	b := book.New(book.WithClock(func() time.Time { return now }))
	for _, in := range [][5]string{
		{"Ana Maria", "Strada Livezii", "123-456-7890", "ana@example.com", "1990-08-10"},
		{"Dan Iom", "Strada Tisa", "987-654-3210", "dan@example.com", "1985-03-15"},
	} {
		c, err := contact.NewContact(in[0], in[1], in[2], in[3], in[4])
		if err != nil {
			t.Fatal(err)
		}
		if err := b.AddContact(c); err != nil {
			t.Fatal(err)
		}
	}
	b.AddNote(contact.NewNote("Buy groceries"))
	b.AddNote(contact.NewNote("Call the dentist"))
	return b
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(newTestBook(t))
	if m.tab != TabContacts {
		t.Errorf("tab = %v, want %v", m.tab, TabContacts)
	}
	if m.windowDays != 7 {
		t.Errorf("windowDays = %d, want 7", m.windowDays)
	}
	if m.Init() != nil {
		t.Error("Init() should return nil")
	}
}

func TestNewModel_WithWindowDays(t *testing.T) {
	m := NewModel(newTestBook(t), WithWindowDays(30))
	if m.windowDays != 30 {
		t.Errorf("windowDays = %d, want 30", m.windowDays)
	}
}

func TestView_ListsContacts(t *testing.T) {
	m := NewModel(newTestBook(t))
	view := m.View()

	for _, want := range []string{"Contacts", "Notes", "Birthdays", CursorMarker + "Name: Ana Maria", "Name: Dan Iom"} {
		if !containsPlainText(view, want) {
			t.Errorf("View() missing %q:\n%s", want, stripANSI(view))
		}
	}
}

func TestUpdate_TabCycles(t *testing.T) {
	tab := tea.KeyMsg{Type: tea.KeyTab}
	m := NewModel(newTestBook(t))

	want := []Tab{TabNotes, TabBirthdays, TabContacts}
	for _, w := range want {
		m = update(t, m, tab)
		if m.tab != w {
			t.Fatalf("tab = %v, want %v", m.tab, w)
		}
	}
}

func TestUpdate_TabResetsCursor(t *testing.T) {
	m := NewModel(newTestBook(t))
	m = update(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after tab switch", m.cursor)
	}
}

func TestUpdate_CursorWraps(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		want int
	}{
		{name: "down", keys: []tea.Msg{runes("j")}, want: 1},
		{name: "down wraps", keys: []tea.Msg{runes("j"), runes("j")}, want: 0},
		{name: "up wraps", keys: []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}}, want: 1},
		{name: "arrow down", keys: []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := update(t, NewModel(newTestBook(t)), tt.keys...)
			if m.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", m.cursor, tt.want)
			}
		})
	}
}

func TestUpdate_Filter(t *testing.T) {
	m := NewModel(newTestBook(t))

	m = update(t, m, runes("/"))
	if !m.filtering {
		t.Fatal("'/' should start filtering")
	}

	m = update(t, m, runes("d"), runes("a"), runes("n"))
	if m.query != "dan" {
		t.Errorf("query = %q, want %q", m.query, "dan")
	}
	if rows := m.rows(); len(rows) != 1 || !strings.Contains(rows[0], "Dan Iom") {
		t.Errorf("rows = %v, want only Dan Iom", rows)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.filtering {
		t.Error("enter should stop filtering")
	}
	if m.query != "dan" {
		t.Errorf("query = %q, want kept after apply", m.query)
	}
	if !containsPlainText(m.View(), `filter: "dan"`) {
		t.Error("View() should show the active filter")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.query != "" {
		t.Errorf("query = %q, want cleared by esc", m.query)
	}
	if got := len(m.rows()); got != 2 {
		t.Errorf("rows = %d, want 2 after clear", got)
	}
}

func TestUpdate_FilterCancel(t *testing.T) {
	m := NewModel(newTestBook(t))
	m = update(t, m, runes("/"), runes("z"), tea.KeyMsg{Type: tea.KeyEsc})

	if m.filtering {
		t.Error("esc should stop filtering")
	}
	if m.query != "" {
		t.Errorf("query = %q, want empty after cancel", m.query)
	}
}

func TestUpdate_FilterTypingQIsNotQuit(t *testing.T) {
	m := NewModel(newTestBook(t))
	m = update(t, m, runes("/"))

	m = update(t, m, runes("q"))
	if !m.filtering {
		t.Error("typing q in the filter should keep filtering")
	}
	if m.query != "q" {
		t.Errorf("query = %q, want %q", m.query, "q")
	}
}

func TestUpdate_FilterNotes(t *testing.T) {
	m := NewModel(newTestBook(t))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("/"), runes("D"), runes("E"), runes("N"))

	rows := m.rows()
	if len(rows) != 1 || rows[0] != "Call the dentist" {
		t.Errorf("rows = %v, want [Call the dentist]", rows)
	}
}

func TestUpdate_FilterDisabledOnBirthdays(t *testing.T) {
	tab := tea.KeyMsg{Type: tea.KeyTab}
	m := NewModel(newTestBook(t))
	m = update(t, m, tab, tab, runes("/"))
	if m.filtering {
		t.Error("filter should not start on the birthdays tab")
	}
}

func TestUpdate_DeleteContact(t *testing.T) {
	b := newTestBook(t)
	m := NewModel(b)

	m = update(t, m, runes("j"), runes("x"))

	if got := len(b.Contacts()); got != 1 {
		t.Fatalf("contact count = %d, want 1", got)
	}
	if b.Contacts()[0].Name != "Ana Maria" {
		t.Errorf("remaining = %q, want Ana Maria", b.Contacts()[0].Name)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
	if !containsPlainText(m.View(), `Deleted 1 contact named "Dan Iom"`) {
		t.Errorf("View() missing status:\n%s", stripANSI(m.View()))
	}
}

func TestUpdate_DeleteNote(t *testing.T) {
	b := newTestBook(t)
	m := NewModel(b)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("x"))

	notes := b.DisplayNotes()
	if len(notes) != 1 || notes[0] != "Call the dentist" {
		t.Errorf("notes = %v, want [Call the dentist]", notes)
	}
	if !containsPlainText(m.View(), "Deleted 1 note") {
		t.Errorf("View() missing status:\n%s", stripANSI(m.View()))
	}
}

func TestUpdate_DeleteOnBirthdaysIsNoop(t *testing.T) {
	tab := tea.KeyMsg{Type: tea.KeyTab}
	b := newTestBook(t)
	m := NewModel(b)
	m = update(t, m, tab, tab, runes("x"))

	if got := len(b.Contacts()); got != 2 {
		t.Errorf("contact count = %d, want 2", got)
	}
}

func TestUpdate_DeleteEmptyList(t *testing.T) {
	b := book.New()
	m := update(t, NewModel(b), runes("x"))
	if m.status != "" {
		t.Errorf("status = %q, want empty", m.status)
	}
	if !containsPlainText(m.View(), "No contacts.") {
		t.Errorf("View() missing empty text:\n%s", stripANSI(m.View()))
	}
}

func TestView_Birthdays(t *testing.T) {
	tab := tea.KeyMsg{Type: tea.KeyTab}
	m := update(t, NewModel(newTestBook(t)), tab, tab)

	if !containsPlainText(m.View(), "Name: Dan Iom, Birthday: 1985-03-15") {
		t.Errorf("View() missing birthday:\n%s", stripANSI(m.View()))
	}

	m = update(t, NewModel(newTestBook(t), WithWindowDays(3)), tab, tab)
	if !containsPlainText(m.View(), "No upcoming birthdays within 3 days.") {
		t.Errorf("View() missing empty birthdays text:\n%s", stripANSI(m.View()))
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := NewModel(newTestBook(t))
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := update(t, NewModel(newTestBook(t)), tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 100 {
		t.Errorf("width = %d, want 100", m.width)
	}
}

func TestTab_String(t *testing.T) {
	if got := Tab(99).String(); got != "?" {
		t.Errorf("Tab(99).String() = %q, want %q", got, "?")
	}
}

// TestModel_Teatest_DeleteAndQuit drives the model through a real program loop.
func TestModel_Teatest_DeleteAndQuit(t *testing.T) {
	b := newTestBook(t)
	tm := teatest.NewTestModel(t, NewModel(b), teatest.WithInitialTermSize(120, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(runes("x"))
	tm.Send(runes("q"))

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.tab != TabNotes {
		t.Errorf("final tab = %v, want %v", final.tab, TabNotes)
	}
	if got := len(b.Notes()); got != 1 {
		t.Errorf("note count = %d, want 1", got)
	}
}
