package book

import (
	"time"

	"github.com/smileynet/contactbook/internal/contact"
)

// UpcomingBirthdays returns the contacts whose birthday falls on the single
// calendar date days from today. It is not a range: a birthday between today
// and the target date is not reported.
func (b *Book) UpcomingBirthdays(days int) []contact.Contact {
	target := TargetDate(b.now(), days)
	var found []contact.Contact
	for _, c := range b.contacts {
		if c.Birthday.Month() == target.Month() && c.Birthday.Day() == target.Day() {
			found = append(found, c)
		}
	}
	return found
}

// TargetDate returns the calendar date days after now's date, in now's
// location. Calendar arithmetic keeps DST shifts from moving the day.
func TargetDate(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
}
