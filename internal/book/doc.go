// Package book provides the contact domain for the assistant.
//
// The package is layered leaf-first:
//   - Field values: Name, Phone, Birthday (validated, immutable)
//   - Record: one contact aggregate (name, phones, optional birthday)
//   - AddressBook: ordered collection of records with lookup by name
//
// Upcoming-birthday computation lives here as well because it is pure date
// arithmetic over the book. "Today" is always supplied by the caller (see
// Clock) so results are deterministic in tests.
//
// book imports nothing internal. All other internal packages import book.
package book
