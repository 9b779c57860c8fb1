package book

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Record is one contact: a name, zero or more phones, an optional birthday.
//
// The name is fixed at construction. Phones and the birthday are replaced
// wholesale, never mutated in place. Duplicate phones are permitted.
type Record struct {
	id       uuid.UUID
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with a fresh UUIDv7 identity.
func NewRecord(name string) *Record {
	return &Record{
		id:   uuid.Must(uuid.NewV7()),
		name: NewName(name),
	}
}

// RestoreRecord rebuilds a persisted record.
// Every phone and the birthday (if non-empty) are re-validated.
func RestoreRecord(id uuid.UUID, name string, phones []string, birthday string) (*Record, error) {
	r := &Record{id: id, name: NewName(name)}
	for _, raw := range phones {
		if err := r.AddPhone(raw); err != nil {
			return nil, fmt.Errorf("restore record %s: %w", id, err)
		}
	}
	if birthday != "" {
		if err := r.AddBirthday(birthday); err != nil {
			return nil, fmt.Errorf("restore record %s: %w", id, err)
		}
	}
	return r, nil
}

// ID returns the record's stable identity.
func (r *Record) ID() uuid.UUID { return r.id }

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes every phone equal to value. Missing values are a no-op.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.value != value {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces oldValue with newValue.
//
// newValue is validated first; on failure the record is left untouched.
// The new phone is appended at the end, matching remove-then-add ordering.
func (r *Record) EditPhone(oldValue, newValue string) error {
	p, err := NewPhone(newValue)
	if err != nil {
		return err
	}
	r.RemovePhone(oldValue)
	r.phones = append(r.phones, p)
	return nil
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, p := range r.phones {
		if p.value == value {
			return p, true
		}
	}
	return Phone{}, false
}

// AddBirthday validates raw and sets (or overwrites) the birthday.
func (r *Record) AddBirthday(raw string) error {
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// PhoneList joins the phones with ", ".
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return strings.Join(values, ", ")
}

func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, r.PhoneList())
}
