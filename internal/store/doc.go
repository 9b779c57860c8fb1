// Package store provides SQLite-backed persistence for the address book.
//
// The whole book is loaded once at startup and saved once at shutdown:
//   - contacts: one row per record, ordered by position
//   - phones: one row per phone, ordered by position within a contact
//
// Save is a full overwrite inside a single transaction, so a failed save
// leaves the previous state intact. There is no incremental persistence.
//
// # Database Configuration
//
//   - WAL mode: readers do not block the exit-time save
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: phones cascade with their contact
//
// Snapshot provides a portable YAML/JSON form of the same data for the
// export and import commands.
package store
