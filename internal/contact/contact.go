// Package contact defines the records stored in a contact book: contacts,
// notes, and the patches used to edit contacts.
package contact

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the ISO calendar date layout used for birthdays.
const DateLayout = "2006-01-02"

// Patterns are anchored at the start only; trailing text is accepted.
var (
	phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}`)
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)
)

// Contact is a stored person record.
type Contact struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	Birthday time.Time
}

// NewContact builds a Contact, parsing birthday as YYYY-MM-DD.
// Phone and email are not checked here; the book validates on insertion.
func NewContact(name, address, phone, email, birthday string) (Contact, error) {
	bd, err := ParseBirthday(birthday)
	if err != nil {
		return Contact{}, err
	}
	return Contact{
		Name:     name,
		Address:  address,
		Phone:    phone,
		Email:    email,
		Birthday: bd,
	}, nil
}

// ParseBirthday parses an ISO calendar date.
func ParseBirthday(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

// Validate checks phone then email against their patterns.
func (c Contact) Validate() error {
	if !phonePattern.MatchString(c.Phone) {
		return &ValidationError{Kind: InvalidPhone, Value: c.Phone}
	}
	if !emailPattern.MatchString(c.Email) {
		return &ValidationError{Kind: InvalidEmail, Value: c.Email}
	}
	return nil
}

// BirthdayString formats the birthday as YYYY-MM-DD.
func (c Contact) BirthdayString() string {
	return c.Birthday.Format(DateLayout)
}

// String returns the one-line display form of the contact.
func (c Contact) String() string {
	return fmt.Sprintf("Name: %s, Address: %s, Phone: %s, Email: %s, Birthday: %s",
		c.Name, c.Address, c.Phone, c.Email, c.BirthdayString())
}

// Note is a stored free-text memo.
type Note struct {
	Content string
}

// NewNote returns a Note holding content.
func NewNote(content string) Note {
	return Note{Content: content}
}

// Patch holds optional replacements for a contact's fields.
// A nil field leaves the contact's value unchanged.
type Patch struct {
	Name     *string
	Address  *string
	Phone    *string
	Email    *string
	Birthday *string // YYYY-MM-DD
}

// Apply writes the present fields onto c. The birthday is parsed before any
// field is assigned, so a ParseError leaves c untouched. Apply does not
// validate the result.
func (p Patch) Apply(c *Contact) error {
	var bd time.Time
	if p.Birthday != nil {
		parsed, err := ParseBirthday(*p.Birthday)
		if err != nil {
			return err
		}
		bd = parsed
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Birthday != nil {
		c.Birthday = bd
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Phone == nil && p.Email == nil && p.Birthday == nil
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string {
	return &s
}
