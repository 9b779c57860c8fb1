package book

import "time"

// DefaultWindow is the default look-ahead for upcoming birthdays, in days.
const DefaultWindow = 7

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Upcoming is one contact to congratulate.
type Upcoming struct {
	Name               string
	CongratulationDate time.Time
}

// UpcomingBirthdays returns contacts whose next birthday falls within
// [today, today+window] days, inclusive.
//
// The next birthday is this year's occurrence, or next year's if this year's
// is strictly before today. Feb 29 in a non-leap year rolls to Mar 1.
// Saturday and Sunday occurrences move to the following Monday. Results keep
// the book's order.
func (b *AddressBook) UpcomingBirthdays(now time.Time, window int) []Upcoming {
	var out []Upcoming
	if window < 0 {
		return out
	}

	today := dateOf(now)
	for _, r := range b.records {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}

		next := anniversary(bd.Date(), today.Year())
		if next.Before(today) {
			next = anniversary(bd.Date(), today.Year()+1)
		}

		days := int(next.Sub(today).Hours() / 24)
		if days < 0 || days > window {
			continue
		}

		switch next.Weekday() {
		case time.Saturday:
			next = next.AddDate(0, 0, 2)
		case time.Sunday:
			next = next.AddDate(0, 0, 1)
		}

		out = append(out, Upcoming{Name: r.name.value, CongratulationDate: next})
	}
	return out
}

// dateOf drops the time of day, keeping the calendar date of t in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// anniversary returns the month/day of d in the given year.
// time.Date normalizes Feb 29 to Mar 1 in non-leap years.
func anniversary(d time.Time, year int) time.Time {
	return time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
