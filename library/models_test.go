package library

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPerson(t *testing.T) {
	p, err := NewPerson("Ana Silva", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", p.Name())
	assert.Equal(t, "ana@example.com", p.Email())
	assert.Equal(t, PersonInfo{Name: "Ana Silva", Email: "ana@example.com"}, p.Info())
	assert.Equal(t, "Ana Silva (ana@example.com)", p.String())
}

func TestNewPersonRejectsBadInput(t *testing.T) {
	tests := []struct {
		name, pname, email, field string
	}{
		{"empty name", "", "ana@example.com", "name"},
		{"email without at", "Ana", "anaexample.com", "email"},
		{"empty email", "Ana", "", "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPerson(tt.pname, tt.email)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestAuthor(t *testing.T) {
	a, err := NewAuthor("Carlos Z", "carlos@example.com", "Famous writer")
	require.NoError(t, err)
	assert.Equal(t, "Famous writer", a.Biography())
	assert.Empty(t, a.PublishedTitles())

	require.NoError(t, a.AddPublishedTitle("The Secret"))
	require.NoError(t, a.AddPublishedTitle("The Secret"))
	assert.Equal(t, []string{"The Secret", "The Secret"}, a.PublishedTitles())

	err = a.AddPublishedTitle("")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, a.PublishedTitles(), 2)
}

func TestNewAuthorRejectsBadEmail(t *testing.T) {
	_, err := NewAuthor("Carlos Z", "nope", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewPatron(t *testing.T) {
	p, err := NewPatron("João Reader", "joao@example.com", "MAT001")
	require.NoError(t, err)
	assert.Equal(t, "MAT001", p.ID())
	assert.Empty(t, p.Borrowed())
	assert.Equal(t, "Patron: João Reader, ID: MAT001", p.String())

	_, err = NewPatron("João Reader", "joao@example.com", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "identifier", verr.Field)
}

func TestPatronBorrowAndReturn(t *testing.T) {
	author := newAuthor(t)
	available := newBook(t, "Test Book", author)
	taken := newBook(t, "Other Book", author)
	require.True(t, taken.MarkBorrowed())

	p, err := NewPatron("João Reader", "joao@example.com", "MAT001")
	require.NoError(t, err)

	assert.True(t, p.Borrow(available))
	assert.False(t, available.IsAvailable())
	assert.True(t, p.Holds(available))

	assert.False(t, p.Borrow(taken), "unavailable item must be refused")
	assert.False(t, p.Holds(taken))

	assert.True(t, p.ReturnItem(available))
	assert.True(t, available.IsAvailable())
	assert.Empty(t, p.Borrowed())

	assert.False(t, p.ReturnItem(available), "item no longer held")
	assert.False(t, p.ReturnItem(taken))
	assert.False(t, taken.IsAvailable(), "returning an item not held must not touch it")
}

func newAuthor(t *testing.T) *Author {
	t.Helper()
	a, err := NewAuthor("Test Author", "author@test.com", "")
	if err != nil {
		t.Fatalf("author: %v", err)
	}
	return a
}

func newBook(t *testing.T, title string, a *Author) *Book {
	t.Helper()
	b, err := NewBook(title, 2023, "12345", a, "")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return b
}
