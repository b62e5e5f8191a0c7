package library

import "fmt"

// Kind names an item variant.
type Kind string

const (
	KindBook     Kind = "book"
	KindMagazine Kind = "magazine"
	KindDVD      Kind = "dvd"
)

// DefaultGenre is used when a book is created without a genre.
const DefaultGenre = "unspecified"

// Item is a catalog entry. The set of variants is closed: *Book, *Magazine
// and *DVD.
type Item interface {
	Title() string
	PublicationYear() int
	Kind() Kind
	String() string

	sealed()
}

// Loanable is implemented by the variants that may be lent out.
type Loanable interface {
	Item
	IsAvailable() bool
	// MarkBorrowed flips the item to unavailable and reports true, or
	// reports false and changes nothing if it is already out.
	MarkBorrowed() bool
	// MarkReturned makes the item available regardless of prior state.
	MarkReturned()
}

// descriptor holds the fields every variant carries.
type descriptor struct {
	title string
	year  int
}

func newDescriptor(title string, year int) (descriptor, error) {
	if err := check("title", title, ruleRequired); err != nil {
		return descriptor{}, err
	}
	if err := check("publication year", year, rulePositive); err != nil {
		return descriptor{}, err
	}
	return descriptor{title: title, year: year}, nil
}

func (d descriptor) Title() string        { return d.title }
func (d descriptor) PublicationYear() int { return d.year }
func (descriptor) sealed()                {}

// Book is a loanable item written by an Author.
type Book struct {
	descriptor
	isbn      string
	author    *Author
	genre     string
	available bool
}

// NewBook validates the book fields. An empty genre becomes DefaultGenre.
// The ISBN is only checked for presence.
func NewBook(title string, year int, isbn string, author *Author, genre string) (*Book, error) {
	d, err := newDescriptor(title, year)
	if err != nil {
		return nil, err
	}
	if err := check("isbn", isbn, ruleRequired); err != nil {
		return nil, err
	}
	if author == nil {
		return nil, mismatch("*library.Author", nil)
	}
	if genre == "" {
		genre = DefaultGenre
	}
	return &Book{descriptor: d, isbn: isbn, author: author, genre: genre, available: true}, nil
}

func (b *Book) Kind() Kind         { return KindBook }
func (b *Book) ISBN() string       { return b.isbn }
func (b *Book) Author() *Author    { return b.author }
func (b *Book) AuthorName() string { return b.author.Name() }
func (b *Book) Genre() string      { return b.genre }
func (b *Book) IsAvailable() bool  { return b.available }
func (b *Book) MarkReturned()      { b.available = true }

func (b *Book) MarkBorrowed() bool {
	if !b.available {
		return false
	}
	b.available = false
	return true
}

func (b *Book) String() string {
	return fmt.Sprintf("'%s' by %s, ISBN: %s", b.title, b.author.Name(), b.isbn)
}

// Magazine is a periodical issue. Magazines stay in the reading room and
// cannot be lent.
type Magazine struct {
	descriptor
	edition   string
	publisher string
}

func NewMagazine(title string, year int, edition, publisher string) (*Magazine, error) {
	d, err := newDescriptor(title, year)
	if err != nil {
		return nil, err
	}
	return &Magazine{descriptor: d, edition: edition, publisher: publisher}, nil
}

func (m *Magazine) Kind() Kind        { return KindMagazine }
func (m *Magazine) Edition() string   { return m.edition }
func (m *Magazine) Publisher() string { return m.publisher }

func (m *Magazine) String() string {
	return fmt.Sprintf("Magazine: %s, Edition: %s, Publisher: %s", m.title, m.edition, m.publisher)
}

// DVD is a loanable video disc.
type DVD struct {
	descriptor
	minutes   int
	director  string
	available bool
}

func NewDVD(title string, year, minutes int, director string) (*DVD, error) {
	d, err := newDescriptor(title, year)
	if err != nil {
		return nil, err
	}
	if err := check("duration", minutes, rulePositive); err != nil {
		return nil, err
	}
	return &DVD{descriptor: d, minutes: minutes, director: director, available: true}, nil
}

func (v *DVD) Kind() Kind        { return KindDVD }
func (v *DVD) Duration() int     { return v.minutes }
func (v *DVD) Director() string  { return v.director }
func (v *DVD) IsAvailable() bool { return v.available }
func (v *DVD) MarkReturned()     { v.available = true }

func (v *DVD) MarkBorrowed() bool {
	if !v.available {
		return false
	}
	v.available = false
	return true
}

func (v *DVD) String() string {
	return fmt.Sprintf("DVD: %s (%d), %d min, directed by %s", v.title, v.year, v.minutes, v.director)
}

// AsLoanable reports whether item is a variant that may be lent.
func AsLoanable(item Item) (Loanable, bool) {
	switch it := item.(type) {
	case *Book:
		return it, it != nil
	case *DVD:
		return it, it != nil
	default:
		return nil, false
	}
}
