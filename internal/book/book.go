// Package book implements the contacts book: the aggregate that owns all
// contacts and notes and is the only surface for mutating or querying them.
package book

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/contact"
)

// Book holds contacts and notes in insertion order. Duplicates are allowed.
// A Book is not safe for concurrent use.
type Book struct {
	contacts []contact.Contact
	notes    []contact.Note
	now      func() time.Time
	log      *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithClock sets the time source used by UpcomingBirthdays.
func WithClock(now func() time.Time) Option {
	return func(b *Book) {
		b.now = now
	}
}

// WithLogger sets the logger for mutation records.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) {
		b.log = l
	}
}

// New creates an empty Book.
func New(opts ...Option) *Book {
	b := &Book{
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddContact validates c and appends it. An invalid contact is not stored
// and the validation error is returned.
func (b *Book) AddContact(c contact.Contact) error {
	if err := c.Validate(); err != nil {
		b.log.Debug("contact rejected", zap.String("name", c.Name), zap.Error(err))
		return err
	}
	b.contacts = append(b.contacts, c)
	b.log.Debug("contact added", zap.String("name", c.Name), zap.Int("contacts", len(b.contacts)))
	return nil
}

// FindContact returns copies of the contacts whose name contains term,
// ignoring case.
func (b *Book) FindContact(term string) []contact.Contact {
	needle := strings.ToLower(term)
	var found []contact.Contact
	for _, c := range b.contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			found = append(found, c)
		}
	}
	return found
}

// EditContact applies p to every contact named exactly name, re-validating
// each one after the patch is applied. On a validation failure the error is
// returned immediately: that contact keeps the patched (invalid) values and
// later matches are left unedited. The returned count is the number of
// contacts edited and validated successfully.
func (b *Book) EditContact(name string, p contact.Patch) (int, error) {
	edited := 0
	for i := range b.contacts {
		if b.contacts[i].Name != name {
			continue
		}
		if err := p.Apply(&b.contacts[i]); err != nil {
			return edited, err
		}
		if err := b.contacts[i].Validate(); err != nil {
			b.log.Warn("edited contact failed validation",
				zap.String("name", name), zap.Int("index", i), zap.Error(err))
			return edited, err
		}
		edited++
	}
	b.log.Debug("contacts edited", zap.String("name", name), zap.Int("edited", edited))
	return edited, nil
}

// DeleteContact removes every contact named exactly name and returns how
// many were removed.
func (b *Book) DeleteContact(name string) int {
	kept := b.contacts[:0]
	for _, c := range b.contacts {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	removed := len(b.contacts) - len(kept)
	clear(b.contacts[len(kept):])
	b.contacts = kept
	b.log.Debug("contacts deleted", zap.String("name", name), zap.Int("removed", removed))
	return removed
}

// AddNote appends n.
func (b *Book) AddNote(n contact.Note) {
	b.notes = append(b.notes, n)
	b.log.Debug("note added", zap.Int("notes", len(b.notes)))
}

// FindNote returns copies of the notes whose content contains term,
// ignoring case.
func (b *Book) FindNote(term string) []contact.Note {
	needle := strings.ToLower(term)
	var found []contact.Note
	for _, n := range b.notes {
		if strings.Contains(strings.ToLower(n.Content), needle) {
			found = append(found, n)
		}
	}
	return found
}

// EditNote replaces the content of every note equal to oldContent and
// returns how many changed.
func (b *Book) EditNote(oldContent, newContent string) int {
	edited := 0
	for i := range b.notes {
		if b.notes[i].Content == oldContent {
			b.notes[i].Content = newContent
			edited++
		}
	}
	b.log.Debug("notes edited", zap.Int("edited", edited))
	return edited
}

// DeleteNote removes every note equal to content and returns how many were
// removed.
func (b *Book) DeleteNote(content string) int {
	kept := b.notes[:0]
	for _, n := range b.notes {
		if n.Content != content {
			kept = append(kept, n)
		}
	}
	removed := len(b.notes) - len(kept)
	clear(b.notes[len(kept):])
	b.notes = kept
	b.log.Debug("notes deleted", zap.Int("removed", removed))
	return removed
}

// Contacts returns a copy of all contacts in order.
func (b *Book) Contacts() []contact.Contact {
	return append([]contact.Contact(nil), b.contacts...)
}

// Notes returns a copy of all notes in order.
func (b *Book) Notes() []contact.Note {
	return append([]contact.Note(nil), b.notes...)
}

// DisplayContacts returns one display line per contact, in order.
func (b *Book) DisplayContacts() []string {
	lines := make([]string, len(b.contacts))
	for i, c := range b.contacts {
		lines[i] = c.String()
	}
	return lines
}

// DisplayNotes returns the content of each note, in order.
func (b *Book) DisplayNotes() []string {
	lines := make([]string, len(b.notes))
	for i, n := range b.notes {
		lines[i] = n.Content
	}
	return lines
}
