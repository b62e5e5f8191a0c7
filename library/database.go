package library

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SearchIndex is a keyword index over the catalog held in a private
// in-memory SQLite database. It lives as long as the process and is rebuilt
// from the catalog on every start.
type SearchIndex struct {
	db *sql.DB

	putStmt    *sql.Stmt
	deleteStmt *sql.Stmt
}

// NewSearchIndex opens an empty in-memory index and prepares its statements.
func NewSearchIndex() (*SearchIndex, error) {
	db, err := sql.Open("sqlite3", "file::memory:?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	idx := &SearchIndex{db: db}
	if err := idx.prepareStatements(); err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

// Close releases prepared statements and closes the DB.
func (s *SearchIndex) Close() error {
	if s.putStmt != nil {
		s.putStmt.Close()
	}
	if s.deleteStmt != nil {
		s.deleteStmt.Close()
	}
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func applySchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
            position INTEGER PRIMARY KEY AUTOINCREMENT,
            key TEXT NOT NULL UNIQUE,
            title TEXT NOT NULL,
            kind TEXT NOT NULL,
            year INTEGER NOT NULL,
            terms TEXT NOT NULL
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (s *SearchIndex) prepareStatements() error {
	var err error
	if s.putStmt, err = s.db.Prepare(`INSERT INTO items(key,title,kind,year,terms) VALUES(?,?,?,?,?)
        ON CONFLICT(key) DO UPDATE SET title=excluded.title, kind=excluded.kind, year=excluded.year, terms=excluded.terms`); err != nil {
		return err
	}
	if s.deleteStmt, err = s.db.Prepare(`DELETE FROM items WHERE key=?`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Index operations
// ---------------------------------------------------------------------------

// Put adds item to the index, replacing any entry with the same title.
func (s *SearchIndex) Put(item Item) error {
	if _, err := s.putStmt.Exec(titleKey(item.Title()), item.Title(), string(item.Kind()), item.PublicationYear(), searchTerms(item)); err != nil {
		return fmt.Errorf("index %q: %w", item.Title(), err)
	}
	return nil
}

// Delete drops the entry for title. Missing entries are not an error.
func (s *SearchIndex) Delete(title string) error {
	if _, err := s.deleteStmt.Exec(titleKey(title)); err != nil {
		return fmt.Errorf("unindex %q: %w", title, err)
	}
	return nil
}

// Search returns the title keys of every entry containing all words of q,
// oldest first. A blank query matches nothing.
func (s *SearchIndex) Search(q string) ([]string, error) {
	words := queryWords(q)
	if len(words) == 0 {
		return []string{}, nil
	}

	var (
		where []string
		args  []any
	)
	for _, w := range words {
		where = append(where, `terms LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(w)+"%")
	}
	rows, err := s.db.Query(`SELECT key FROM items WHERE `+strings.Join(where, " AND ")+` ORDER BY position`, args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Count returns the number of indexed entries.
func (s *SearchIndex) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Helpers shared with the linear fallback
// ---------------------------------------------------------------------------

func titleKey(title string) string { return strings.ToLower(title) }

// searchTerms is the lower-cased text a query is matched against.
func searchTerms(item Item) string {
	parts := []string{item.Title(), string(item.Kind()), strconv.Itoa(item.PublicationYear())}
	switch it := item.(type) {
	case *Book:
		parts = append(parts, it.AuthorName(), it.ISBN(), it.Genre())
	case *Magazine:
		parts = append(parts, it.Edition(), it.Publisher())
	case *DVD:
		parts = append(parts, it.Director())
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func queryWords(q string) []string { return strings.Fields(strings.ToLower(q)) }

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
