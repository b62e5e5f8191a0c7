package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"library-catalog/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock reader to simulate user input during testing
type mockReader struct {
	inputs []string
	index  int
}

func (m *mockReader) Read(p []byte) (n int, err error) {
	if m.index >= len(m.inputs) {
		return 0, io.EOF
	}
	input := m.inputs[m.index] + "\n"
	m.index++
	n = copy(p, input)
	return n, nil
}

func runSession(t *testing.T, lib *library.Library, inputs ...string) string {
	t.Helper()
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := newSession(lib, library.DefaultConfig(), &mockReader{inputs: inputs}, &out, log)
	s.now = func() time.Time { return time.Date(2023, 2, 1, 15, 0, 0, 0, time.UTC) }
	s.loop()
	return out.String()
}

func seededLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib := library.New(libraryName)
	require.NoError(t, seedCatalog(lib))
	return lib
}

func TestSeedCatalog(t *testing.T) {
	lib := seededLibrary(t)
	assert.Len(t, lib.Items(), 2)
	_, ok := lib.FindPatronByID("USR001")
	assert.True(t, ok)
	assert.Error(t, seedCatalog(lib), "seeding twice hits the title uniqueness rule")
}

func TestSessionLendListReturn(t *testing.T) {
	lib := seededLibrary(t)
	out := runSession(t, lib,
		"lend", "USR001", "1984", "2023-01-01",
		"list loans",
		"return", "USR001", "1984", "",
		"list loans",
		"exit",
	)

	assert.Contains(t, out, "Due date: 2023-01-15")
	assert.Contains(t, out, "Loan of '1984' to 'Alice Wonderland' completed successfully.")
	assert.Contains(t, out, "Status: OVERDUE")
	assert.Contains(t, out, "Item '1984' returned by Alice Wonderland on 2023-02-01.")
	assert.Contains(t, out, "No active loans.")
	assert.Contains(t, out, "Goodbye!")
	assert.Empty(t, lib.ActiveLoans())
}

func TestSessionAddItemsAndSearch(t *testing.T) {
	lib := seededLibrary(t)
	out := runSession(t, lib,
		"add dvd", "Inception", "2010", "148", "Christopher Nolan",
		"add magazine", "Science Monthly", "2023", "May", "SciPub",
		"add book", "Dune", "1965", "978-0441013593", "Frank Herbert", "frank@example.com", "", "",
		"search", "nolan",
		"lend", "USR001", "Science Monthly", "",
		"exit",
	)

	assert.Contains(t, out, "DVD 'Inception' added.")
	assert.Contains(t, out, "Magazine 'Science Monthly' added.")
	assert.Contains(t, out, "Book 'Dune' added.")
	assert.Contains(t, out, "Found 1 item(s) matching 'nolan'")
	assert.Contains(t, out, "This type of item cannot be lent.")
	assert.Len(t, lib.Items(), 5)

	dune, ok := lib.FindItemByTitle("dune")
	require.True(t, ok)
	assert.Equal(t, library.DefaultGenre, dune.(*library.Book).Genre())
}

func TestSessionReportsValidationErrors(t *testing.T) {
	lib := seededLibrary(t)
	out := runSession(t, lib,
		"add patron", "Bob", "bob-at-example.com", "USR002",
		"add patron", "Bob", "bob@example.com", "USR001",
		"add dvd", "Short", "2020", "0", "Someone",
		"add book", "1984", "1949", "1", "George Orwell", "orwell@example.com", "", "",
		"set max items", "-1",
		"exit",
	)

	assert.Contains(t, out, "Error registering patron: invalid email")
	assert.Contains(t, out, `patron "USR001" is already registered`)
	assert.Contains(t, out, "Error adding DVD: invalid duration")
	assert.Contains(t, out, `"1984" is already in the catalog`)
	assert.Contains(t, out, "Error changing setting")
	assert.Len(t, lib.Patrons(), 1)
}

func TestSessionUnknownCommandAndEOF(t *testing.T) {
	out := runSession(t, library.New(libraryName), "dance", "list items", "list patrons")
	assert.Contains(t, out, "Unknown command")
	assert.Contains(t, out, "No items in the catalog.")
	assert.Contains(t, out, "No patrons registered.")
	assert.NotContains(t, out, "Goodbye!")
}

func TestRunWithFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("show config\nsearch\norwell\nexit\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--max-items", "3", "--loan-days", "7"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Max items per patron: 3")
	assert.Contains(t, out.String(), "Default loan days: 7")
	assert.Contains(t, out.String(), "Found 1 item(s) matching 'orwell'")
}

func TestRunRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{{"--loan-days", "0"}, {"--log-level", "loud"}} {
		cmd := newRootCmd()
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs(args)
		assert.Error(t, cmd.Execute(), args)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "O Senhor...", truncateString("O Senhor dos Anéis", 11))
}
