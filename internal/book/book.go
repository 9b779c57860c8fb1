package book

import "golang.org/x/text/unicode/norm"

// AddressBook is the ordered collection of records for a session.
// Insertion order is preserved and names are not required to be unique.
type AddressBook struct {
	records []*Record
}

// New creates an empty address book.
func New() *AddressBook {
	return &AddressBook{}
}

// AddRecord appends r.
func (b *AddressBook) AddRecord(r *Record) {
	b.records = append(b.records, r)
}

// Find returns the first record whose name equals name exactly (case-sensitive).
func (b *AddressBook) Find(name string) (*Record, bool) {
	want := norm.NFC.String(name)
	for _, r := range b.records {
		if r.name.value == want {
			return r, true
		}
	}
	return nil, false
}

// Records returns the records in insertion order.
// The slice is a copy; the records are shared.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, len(b.records))
	copy(out, b.records)
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.records)
}
