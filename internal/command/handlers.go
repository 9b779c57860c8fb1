package command

import (
	"strings"
	"time"

	"github.com/roach88/assistant/internal/book"
)

// Handler is the signature shared by all commands.
type Handler func(args []string, b *book.AddressBook) Result

// Hello answers the greeting command.
func Hello(_ []string, _ *book.AddressBook) Result {
	return OK("How can I help you?")
}

// AddContact finds or creates the record for args[0] and adds phone args[1].
// The phone is validated before a new record is created.
func AddContact(args []string, b *book.AddressBook) Result {
	if err := need(args, 2); err != nil {
		return Fail(err)
	}
	name, phone := args[0], args[1]

	if _, err := book.NewPhone(phone); err != nil {
		return Fail(err)
	}

	record, found := b.Find(name)
	message := "Contact updated."
	if !found {
		record = book.NewRecord(name)
		b.AddRecord(record)
		message = "Contact added."
	}
	if err := record.AddPhone(phone); err != nil {
		return Fail(err)
	}
	return OK(message)
}

// ChangePhone replaces args[1] with args[2] on the record named args[0].
func ChangePhone(args []string, b *book.AddressBook) Result {
	if err := need(args, 3); err != nil {
		return Fail(err)
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	record, found := b.Find(name)
	if !found {
		return Fail(book.ErrContactNotFound)
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return Fail(err)
	}
	return OK("Phone number updated.")
}

// ShowPhone lists the phones of the record named args[0].
func ShowPhone(args []string, b *book.AddressBook) Result {
	if err := need(args, 1); err != nil {
		return Fail(err)
	}
	record, found := b.Find(args[0])
	if !found {
		return Fail(book.ErrContactNotFound)
	}
	return OK(record.PhoneList())
}

// ShowAll lists every contact as "name: phone1, phone2".
func ShowAll(_ []string, b *book.AddressBook) Result {
	if b.Len() == 0 {
		return OK("Address book is empty.")
	}
	lines := make([]string, 0, b.Len())
	for _, r := range b.Records() {
		lines = append(lines, r.Name().String()+": "+r.PhoneList())
	}
	return OK(strings.Join(lines, "\n"))
}

// AddBirthday sets the birthday args[1] on the record named args[0].
func AddBirthday(args []string, b *book.AddressBook) Result {
	if err := need(args, 2); err != nil {
		return Fail(err)
	}
	record, found := b.Find(args[0])
	if !found {
		return Fail(book.ErrContactNotFound)
	}
	if err := record.AddBirthday(args[1]); err != nil {
		return Fail(err)
	}
	return OK("Birthday added.")
}

// ShowBirthday prints the birthday of the record named args[0] as DD.MM.YYYY.
func ShowBirthday(args []string, b *book.AddressBook) Result {
	if err := need(args, 1); err != nil {
		return Fail(err)
	}
	record, found := b.Find(args[0])
	if !found {
		return Fail(ErrBirthdayNotFound)
	}
	bd, ok := record.Birthday()
	if !ok {
		return Fail(ErrBirthdayNotFound)
	}
	return OK(bd.String())
}

// Birthdays returns the handler for the birthdays command.
// The clock is read on every call.
func Birthdays(clock book.Clock, window int) Handler {
	return func(_ []string, b *book.AddressBook) Result {
		return OK(FormatUpcoming(b.UpcomingBirthdays(clock.Now(), window)))
	}
}

// FormatUpcoming renders upcoming birthdays as "name: DD.MM.YYYY" lines.
func FormatUpcoming(upcoming []book.Upcoming) string {
	if len(upcoming) == 0 {
		return "No upcoming birthdays."
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = u.Name + ": " + formatDate(u.CongratulationDate)
	}
	return strings.Join(lines, "\n")
}

func formatDate(t time.Time) string {
	return t.Format(book.DateLayout)
}
