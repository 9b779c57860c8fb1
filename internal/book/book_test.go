package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressBook_AddAndFind(t *testing.T) {
	b := New()
	assert.Equal(t, 0, b.Len())

	_, ok := b.Find("Alice")
	assert.False(t, ok)

	alice := NewRecord("Alice")
	b.AddRecord(alice)
	b.AddRecord(NewRecord("Bob"))

	got, ok := b.Find("Alice")
	require.True(t, ok)
	assert.Same(t, alice, got)

	// Case-sensitive.
	_, ok = b.Find("alice")
	assert.False(t, ok)
}

func TestAddressBook_DuplicateNamesFindFirst(t *testing.T) {
	b := New()
	first := NewRecord("Alice")
	second := NewRecord("Alice")
	b.AddRecord(first)
	b.AddRecord(second)

	assert.Equal(t, 2, b.Len())
	got, ok := b.Find("Alice")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestAddressBook_RecordsPreservesOrder(t *testing.T) {
	b := New()
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		b.AddRecord(NewRecord(name))
	}

	var names []string
	for _, r := range b.Records() {
		names = append(names, r.Name().String())
	}
	assert.Equal(t, []string{"Carol", "Alice", "Bob"}, names)
}

func TestAddressBook_FindNormalizesName(t *testing.T) {
	b := New()
	b.AddRecord(NewRecord("José"))

	_, ok := b.Find("Jose\u0301")
	assert.True(t, ok)
}
