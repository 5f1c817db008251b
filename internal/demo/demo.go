// Package demo runs the fixed demonstration sequence against a contact book
// and writes the transcript through a renderer.
package demo

import (
	"fmt"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/render"
)

// BirthdayWindow is the number of days ahead the demo checks for birthdays.
const BirthdayWindow = 7

type sample struct {
	name, address, phone, email, birthday string
}

var samples = []sample{
	{"Ana Maria", "Strada Livezii", "123-456-7890", "ana@example.com", "1990-08-10"},
	{"Dan Iom", "Strada Tisa", "987-654-3210", "dan@example.com", "1985-03-15"},
}

// Run exercises every book operation once, in order, writing each result to
// out. Parse and validation errors are returned unchanged.
func Run(out render.Renderer, b *book.Book) error {
	for _, s := range samples {
		c, err := contact.NewContact(s.name, s.address, s.phone, s.email, s.birthday)
		if err != nil {
			return err
		}
		if err := b.AddContact(c); err != nil {
			return err
		}
	}

	out.Section("All Contacts:")
	lines(out, b.DisplayContacts())

	out.Section(fmt.Sprintf("Upcoming Birthdays (within %d days):", BirthdayWindow))
	Birthdays(out, b.UpcomingBirthdays(BirthdayWindow), BirthdayWindow)

	b.AddNote(contact.NewNote("Buy groceries"))
	b.AddNote(contact.NewNote("Call the dentist"))

	out.Section("Notes:")
	lines(out, b.DisplayNotes())

	out.Section("Search Results for 'Ana':")
	for _, c := range b.FindContact("Ana") {
		out.Line("Found: " + c.Name)
	}

	if _, err := b.EditContact("Ana Maria", contact.Patch{Phone: contact.String("111-222-3333")}); err != nil {
		return err
	}
	out.Section("Contacts after editing Ana's phone number:")
	lines(out, b.DisplayContacts())

	b.DeleteContact("Dan Iom")
	out.Section("Contacts after deleting Dan Iom:")
	lines(out, b.DisplayContacts())

	b.EditNote("Buy groceries", "Buy groceries and cook dinner")
	out.Section("Notes after editing:")
	lines(out, b.DisplayNotes())

	b.DeleteNote("Call the dentist")
	out.Section("Notes after deleting 'Call the dentist':")
	lines(out, b.DisplayNotes())

	return nil
}

// Birthdays writes one line per contact, or a placeholder when none match.
func Birthdays(out render.Renderer, cs []contact.Contact, days int) {
	if len(cs) == 0 {
		out.Line(fmt.Sprintf("No upcoming birthdays within %d days.", days))
		return
	}
	for _, c := range cs {
		out.Line(fmt.Sprintf("Name: %s, Birthday: %s", c.Name, c.BirthdayString()))
	}
}

func lines(out render.Renderer, ls []string) {
	for _, l := range ls {
		out.Line(l)
	}
}
