package library

import (
	"fmt"
	"slices"
)

// Person is the identity shared by authors and patrons. Both fields are
// validated at construction and never change afterwards.
type Person struct {
	name  string
	email string
}

// PersonInfo is the plain-data view of a Person.
type PersonInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewPerson validates name and email and returns the identity.
func NewPerson(name, email string) (Person, error) {
	if err := check("name", name, ruleRequired); err != nil {
		return Person{}, err
	}
	if err := check("email", email, ruleEmail); err != nil {
		return Person{}, err
	}
	return Person{name: name, email: email}, nil
}

func (p Person) Name() string  { return p.name }
func (p Person) Email() string { return p.email }

// Info returns the person's name and email.
func (p Person) Info() PersonInfo { return PersonInfo{Name: p.name, Email: p.email} }

func (p Person) String() string { return fmt.Sprintf("%s (%s)", p.name, p.email) }

// Author is a person credited with published works. Items reference an
// author; the author keeps no back-reference to them.
type Author struct {
	Person
	biography string
	published []string
}

// NewAuthor builds an author with an optional biography.
func NewAuthor(name, email, biography string) (*Author, error) {
	p, err := NewPerson(name, email)
	if err != nil {
		return nil, err
	}
	return &Author{Person: p, biography: biography}, nil
}

func (a *Author) Biography() string { return a.biography }

// PublishedTitles returns the recorded titles in insertion order.
func (a *Author) PublishedTitles() []string { return slices.Clone(a.published) }

// AddPublishedTitle appends title to the author's bibliography. Duplicates
// are kept.
func (a *Author) AddPublishedTitle(title string) error {
	if err := check("title", title, ruleRequired); err != nil {
		return err
	}
	a.published = append(a.published, title)
	return nil
}

// Patron is a registered borrower. The identifier must be unique within a
// Library; the Library checks that at registration.
type Patron struct {
	Person
	id       string
	borrowed []Loanable
}

// NewPatron builds a patron with an empty borrow set.
func NewPatron(name, email, id string) (*Patron, error) {
	p, err := NewPerson(name, email)
	if err != nil {
		return nil, err
	}
	if err := check("identifier", id, ruleRequired); err != nil {
		return nil, err
	}
	return &Patron{Person: p, id: id}, nil
}

func (p *Patron) ID() string { return p.id }

// Borrowed returns the items the patron currently holds.
func (p *Patron) Borrowed() []Loanable { return slices.Clone(p.borrowed) }

// Holds reports whether item is in the patron's borrow set.
func (p *Patron) Holds(item Loanable) bool { return slices.Contains(p.borrowed, item) }

func (p *Patron) String() string { return fmt.Sprintf("Patron: %s, ID: %s", p.name, p.id) }

// Borrow takes item if it is available, marking it borrowed. It reports
// false when the item is already out. No loan is recorded; use Library.Lend
// for that.
func (p *Patron) Borrow(item Loanable) bool {
	if item == nil || !item.MarkBorrowed() {
		return false
	}
	p.borrowed = append(p.borrowed, item)
	return true
}

// ReturnItem gives item back if the patron holds it, marking it available.
func (p *Patron) ReturnItem(item Loanable) bool {
	i := slices.Index(p.borrowed, item)
	if item == nil || i < 0 {
		return false
	}
	p.borrowed = slices.Delete(p.borrowed, i, i+1)
	item.MarkReturned()
	return true
}
