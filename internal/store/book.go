package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/assistant/internal/book"
)

// Load reads the whole address book.
// Records come back in saved order, phones in insertion order.
// An empty database yields an empty book.
func (s *Store) Load(ctx context.Context) (*book.AddressBook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, birthday
		FROM contacts
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	type contactRow struct {
		id       string
		name     string
		birthday sql.NullString
	}
	var contacts []contactRow
	for rows.Next() {
		var c contactRow
		if err := rows.Scan(&c.id, &c.name, &c.birthday); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}

	phones, err := s.loadPhones(ctx)
	if err != nil {
		return nil, err
	}

	ab := book.New()
	for _, c := range contacts {
		id, err := uuid.Parse(c.id)
		if err != nil {
			return nil, fmt.Errorf("parse contact id %q: %w", c.id, err)
		}
		r, err := book.RestoreRecord(id, c.name, phones[c.id], c.birthday.String)
		if err != nil {
			return nil, fmt.Errorf("load contact: %w", err)
		}
		ab.AddRecord(r)
	}
	return ab, nil
}

// loadPhones returns phone values keyed by contact id, each in position order.
func (s *Store) loadPhones(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT contact_id, value
		FROM phones
		ORDER BY contact_id, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query phones: %w", err)
	}
	defer rows.Close()

	phones := make(map[string][]string)
	for rows.Next() {
		var contactID, value string
		if err := rows.Scan(&contactID, &value); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones[contactID] = append(phones[contactID], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phones: %w", err)
	}
	return phones, nil
}

// Save overwrites the stored book with ab in a single transaction.
func (s *Store) Save(ctx context.Context, ab *book.AddressBook) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save book: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM phones`); err != nil {
		return fmt.Errorf("save book: clear phones: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("save book: clear contacts: %w", err)
	}

	contactStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (id, position, name, birthday)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save book: prepare contacts: %w", err)
	}
	defer contactStmt.Close()

	phoneStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO phones (contact_id, position, value)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save book: prepare phones: %w", err)
	}
	defer phoneStmt.Close()

	for i, r := range ab.Records() {
		var birthday sql.NullString
		if bd, ok := r.Birthday(); ok {
			birthday = sql.NullString{String: bd.String(), Valid: true}
		}

		id := r.ID().String()
		if _, err := contactStmt.ExecContext(ctx, id, i, r.Name().String(), birthday); err != nil {
			return fmt.Errorf("save book: insert contact %q: %w", r.Name(), err)
		}
		for j, p := range r.Phones() {
			if _, err := phoneStmt.ExecContext(ctx, id, j, p.String()); err != nil {
				return fmt.Errorf("save book: insert phone: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save book: commit: %w", err)
	}
	return nil
}
