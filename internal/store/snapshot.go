package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/roach88/assistant/internal/book"
)

// SnapshotVersion is the current export format version.
const SnapshotVersion = 1

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Snapshot is the portable form of an address book.
type Snapshot struct {
	Version  int          `yaml:"version" json:"version"`
	Contacts []ContactDoc `yaml:"contacts" json:"contacts"`
}

// ContactDoc is one record in a Snapshot.
type ContactDoc struct {
	ID       string   `yaml:"id,omitempty" json:"id,omitempty"`
	Name     string   `yaml:"name" json:"name"`
	Phones   []string `yaml:"phones,omitempty" json:"phones,omitempty"`
	Birthday string   `yaml:"birthday,omitempty" json:"birthday,omitempty"`
}

// SnapshotOf captures ab.
func SnapshotOf(ab *book.AddressBook) Snapshot {
	snap := Snapshot{Version: SnapshotVersion, Contacts: []ContactDoc{}}
	for _, r := range ab.Records() {
		doc := ContactDoc{
			ID:   r.ID().String(),
			Name: r.Name().String(),
		}
		for _, p := range r.Phones() {
			doc.Phones = append(doc.Phones, p.String())
		}
		if bd, ok := r.Birthday(); ok {
			doc.Birthday = bd.String()
		}
		snap.Contacts = append(snap.Contacts, doc)
	}
	return snap
}

// Book rebuilds an address book from the snapshot.
//
// Contacts without an ID, or whose ID repeats an earlier one, get a fresh
// UUIDv7. Phones and birthdays are validated.
func (s Snapshot) Book() (*book.AddressBook, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}

	ab := book.New()
	seen := make(map[uuid.UUID]bool, len(s.Contacts))
	for i, doc := range s.Contacts {
		if doc.Name == "" {
			return nil, fmt.Errorf("contact %d: name is required", i)
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil || seen[id] {
			id = uuid.Must(uuid.NewV7())
		}
		seen[id] = true

		r, err := book.RestoreRecord(id, doc.Name, doc.Phones, doc.Birthday)
		if err != nil {
			return nil, fmt.Errorf("contact %d (%s): %w", i, doc.Name, err)
		}
		ab.AddRecord(r)
	}
	return ab, nil
}

// Encode writes snap to w in the given format.
func Encode(w io.Writer, snap Snapshot, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: must be %s or %s", format, FormatYAML, FormatJSON)
	}
}

// Decode reads a snapshot in the given format.
// Unknown fields are rejected in both formats.
func Decode(r io.Reader, format string) (Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return snap, fmt.Errorf("read snapshot: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&snap); err != nil {
			return snap, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return snap, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return snap, fmt.Errorf("unknown format %q: must be %s or %s", format, FormatYAML, FormatJSON)
	}
	return snap, nil
}

// FormatForPath guesses the format from a file extension, defaulting to YAML.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
