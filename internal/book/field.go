package book

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/unicode/norm"
)

// DateLayout is the only accepted birthday format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	datePattern  = regexp.MustCompile(`^[0-9]{2}\.[0-9]{2}\.[0-9]{4}$`)
)

// Name is a contact's display name.
//
// Names are NFC-normalized so that visually identical names typed with
// precomposed or combining characters compare equal.
type Name struct {
	value string
}

// NewName wraps raw as a Name. No rejection is performed.
func NewName(raw string) Name {
	return Name{value: norm.NFC.String(raw)}
}

func (n Name) String() string { return n.value }

// Phone is a validated 10-digit phone number.
type Phone struct {
	value string
}

// NewPhone validates raw and returns a Phone.
// Returns an *Error of KindInvalidPhoneFormat unless raw is exactly 10 ASCII digits.
func NewPhone(raw string) (Phone, error) {
	err := validation.Validate(raw,
		validation.Required,
		validation.Match(phonePattern),
	)
	if err != nil {
		return Phone{}, invalidPhone(raw)
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }

// Birthday is a calendar date parsed from DD.MM.YYYY.
// The date is stored at midnight UTC.
type Birthday struct {
	date time.Time
}

// ParseBirthday validates raw against DateLayout.
// The shape is checked first, then the calendar: impossible dates
// (31.02.2024, 00.01.2020) are rejected.
func ParseBirthday(raw string) (Birthday, error) {
	err := validation.Validate(raw,
		validation.Required,
		validation.Match(datePattern),
	)
	if err != nil {
		return Birthday{}, invalidDate(raw)
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Birthday{}, invalidDate(raw)
	}
	return Birthday{date: t}, nil
}

// Date returns the birthday as a time at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

// String formats the birthday as DD.MM.YYYY.
func (b Birthday) String() string { return b.date.Format(DateLayout) }
