package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/assistant/internal/book"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestBook builds a book with n records, each with m phones.
// Every other record gets a birthday.
func createTestBook(t *testing.T, n, m int) *book.AddressBook {
	t.Helper()
	ab := book.New()
	for i := 0; i < n; i++ {
		r := book.NewRecord(string(rune('A'+i)) + "-contact")
		for j := 0; j < m; j++ {
			phone := []byte("0000000000")
			phone[8] = byte('0' + i%10)
			phone[9] = byte('0' + j%10)
			if err := r.AddPhone(string(phone)); err != nil {
				t.Fatalf("AddPhone() failed: %v", err)
			}
		}
		if i%2 == 0 {
			if err := r.AddBirthday("0" + string(rune('1'+i%9)) + ".03.1990"); err != nil {
				t.Fatalf("AddBirthday() failed: %v", err)
			}
		}
		ab.AddRecord(r)
	}
	return ab
}
