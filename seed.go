package main

import (
	"fmt"

	"library-catalog/library"
)

// seedBook is demo metadata: title, year, ISBN, genre and author.
type seedBook struct {
	title       string
	year        int
	isbn        string
	genre       string
	authorName  string
	authorEmail string
}

var seedBooks = []seedBook{
	{"O Senhor dos Anéis", 1954, "978-0618260274", "Fantasy", "J.R.R. Tolkien", "tolkien@example.com"},
	{"1984", 1949, "978-0451524935", "Dystopia", "George Orwell", "orwell@example.com"},
}

// seedCatalog loads the demo books and patron USR001.
func seedCatalog(lib *library.Library) error {
	for _, sb := range seedBooks {
		author, err := library.NewAuthor(sb.authorName, sb.authorEmail, "")
		if err != nil {
			return fmt.Errorf("seed author %s: %w", sb.authorName, err)
		}
		if err := author.AddPublishedTitle(sb.title); err != nil {
			return err
		}
		book, err := library.NewBook(sb.title, sb.year, sb.isbn, author, sb.genre)
		if err != nil {
			return fmt.Errorf("seed book %s: %w", sb.title, err)
		}
		if err := lib.AddItem(book); err != nil {
			return fmt.Errorf("seed book %s: %w", sb.title, err)
		}
	}

	alice, err := library.NewPatron("Alice Wonderland", "alice@example.com", "USR001")
	if err != nil {
		return err
	}
	return lib.RegisterPatron(alice)
}
