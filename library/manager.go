package library

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Index is a keyword index the Library keeps in sync with its catalog.
// *SearchIndex is the SQLite-backed implementation.
type Index interface {
	Put(item Item) error
	Delete(title string) error
	Search(q string) ([]string, error)
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used for circulation events.
func WithLogger(log *slog.Logger) Option {
	return func(l *Library) {
		if log != nil {
			l.log = log
		}
	}
}

// WithIndex makes Search go through idx. Items already in the catalog are
// not back-filled, so attach the index before adding items.
func WithIndex(idx Index) Option {
	return func(l *Library) { l.index = idx }
}

// Library owns the catalog, the registered patrons and the loan log. It is
// the only writer of those collections and, during Lend and RegisterReturn,
// of patron borrow sets and item availability.
//
// A Library is not safe for concurrent use.
type Library struct {
	name    string
	catalog []Item
	patrons []*Patron
	loans   []*Loan

	index Index
	log   *slog.Logger
}

// New creates an empty library.
func New(name string, opts ...Option) *Library {
	l := &Library{
		name: name,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) Name() string { return l.name }

// ------------------ Catalog ------------------

// AddItem appends item to the catalog. Titles are unique ignoring case; a
// second item with the same title is a *ValidationError.
func (l *Library) AddItem(item Item) error {
	if isNilItem(item) {
		return mismatch("catalog item", nil)
	}
	if _, dup := l.FindItemByTitle(item.Title()); dup {
		return invalid("title", fmt.Sprintf("%q is already in the catalog", item.Title()))
	}
	if l.index != nil {
		if err := l.index.Put(item); err != nil {
			return err
		}
	}
	l.catalog = append(l.catalog, item)
	l.log.Info("item added", "title", item.Title(), "kind", item.Kind())
	return nil
}

// RemoveItemByTitle drops the item with title (ignoring case) and reports
// whether one was found.
func (l *Library) RemoveItemByTitle(title string) bool {
	i := l.itemIndex(title)
	if i < 0 {
		return false
	}
	item := l.catalog[i]
	l.catalog = slices.Delete(l.catalog, i, i+1)
	if l.index != nil {
		if err := l.index.Delete(item.Title()); err != nil {
			// Search skips keys that are no longer in the catalog.
			l.log.Error("unindex failed", "title", item.Title(), "err", err)
		}
	}
	l.log.Info("item removed", "title", item.Title())
	return true
}

// FindItemByTitle returns the catalog item whose title matches ignoring case.
func (l *Library) FindItemByTitle(title string) (Item, bool) {
	if i := l.itemIndex(title); i >= 0 {
		return l.catalog[i], true
	}
	return nil, false
}

func (l *Library) itemIndex(title string) int {
	key := titleKey(title)
	return slices.IndexFunc(l.catalog, func(it Item) bool { return titleKey(it.Title()) == key })
}

// Items returns the catalog in insertion order.
func (l *Library) Items() []Item { return slices.Clone(l.catalog) }

// Search returns catalog items matching every word of q against title,
// kind, year and creator fields, in catalog order.
func (l *Library) Search(q string) ([]Item, error) {
	if l.index == nil {
		return l.scan(q), nil
	}
	keys, err := l.index.Search(q)
	if err != nil {
		return nil, err
	}
	found := make([]Item, 0, len(keys))
	for _, k := range keys {
		if item, ok := l.FindItemByTitle(k); ok {
			found = append(found, item)
		}
	}
	return found, nil
}

func (l *Library) scan(q string) []Item {
	words := queryWords(q)
	found := []Item{}
	if len(words) == 0 {
		return found
	}
	for _, item := range l.catalog {
		terms := searchTerms(item)
		if !slices.ContainsFunc(words, func(w string) bool { return !strings.Contains(terms, w) }) {
			found = append(found, item)
		}
	}
	return found
}

// ------------------ Patrons ------------------

// RegisterPatron adds p. A patron whose identifier is already registered is
// a *ValidationError and leaves the registry unchanged.
func (l *Library) RegisterPatron(p *Patron) error {
	if p == nil {
		return mismatch("*library.Patron", nil)
	}
	if _, dup := l.FindPatronByID(p.ID()); dup {
		return invalid("identifier", fmt.Sprintf("patron %q is already registered", p.ID()))
	}
	l.patrons = append(l.patrons, p)
	l.log.Info("patron registered", "patron", p.ID(), "name", p.Name())
	return nil
}

// FindPatronByID looks a patron up by exact identifier.
func (l *Library) FindPatronByID(id string) (*Patron, bool) {
	i := slices.IndexFunc(l.patrons, func(p *Patron) bool { return p.ID() == id })
	if i < 0 {
		return nil, false
	}
	return l.patrons[i], true
}

// Patrons returns registered patrons in registration order.
func (l *Library) Patrons() []*Patron { return slices.Clone(l.patrons) }

// ------------------ Circulation ------------------

// Lend checks the patron, the item, its variant and its availability, in
// that order, and stops at the first failed check without changing state.
// On success a Loan is appended to the loan log.
func (l *Library) Lend(patronID, title string, loanDate, dueDate time.Time) LendResult {
	patron, ok := l.FindPatronByID(patronID)
	if !ok {
		return l.rejectLend(LendPatronNotFound, "Patron not found.", patronID, title)
	}
	item, ok := l.FindItemByTitle(title)
	if !ok {
		return l.rejectLend(LendItemNotFound, "Item not found in the catalog.", patronID, title)
	}
	loanable, ok := AsLoanable(item)
	if !ok {
		return l.rejectLend(LendNotLoanable, "This type of item cannot be lent.", patronID, title)
	}
	if !loanable.IsAvailable() {
		return l.rejectLend(LendUnavailable, fmt.Sprintf("Item '%s' is not available for loan.", item.Title()), patronID, title)
	}

	loan, err := l.checkout(patron, loanable, loanDate, dueDate)
	if err != nil {
		l.log.Error("checkout failed", "patron", patronID, "title", title, "err", err)
		return l.rejectLend(LendFailed, "Loan failed (check availability).", patronID, title)
	}
	l.log.Info("item lent", "patron", patronID, "title", item.Title(), "loan", loan.ID, "due", FormatDate(loan.DueDate))
	return LendResult{
		Status:  LendOK,
		Loan:    loan,
		Message: fmt.Sprintf("Loan of '%s' to '%s' completed successfully.", item.Title(), patron.Name()),
	}
}

func (l *Library) rejectLend(status LendStatus, msg, patronID, title string) LendResult {
	l.log.Debug("lend rejected", "status", status, "patron", patronID, "title", title)
	return LendResult{Status: status, Message: msg}
}

// checkout moves item into the patron's borrow set and records the loan.
// The loan is built first so a construction error leaves nothing changed.
func (l *Library) checkout(p *Patron, item Loanable, loanDate, dueDate time.Time) (*Loan, error) {
	loan, err := NewLoan(p, item, loanDate, dueDate)
	if err != nil {
		return nil, err
	}
	if !p.Borrow(item) {
		return nil, fmt.Errorf("item %q refused checkout", item.Title())
	}
	l.loans = append(l.loans, loan)
	return loan, nil
}

// RegisterReturn closes the first active loan of title (ignoring case) held
// by patronID.
func (l *Library) RegisterReturn(patronID, title string, returnDate time.Time) ReturnResult {
	loan := l.activeLoan(patronID, title)
	if loan == nil {
		l.log.Debug("return rejected", "patron", patronID, "title", title)
		return ReturnResult{Status: ReturnLoanNotFound, Message: "Loan not found or already returned."}
	}
	msg := l.checkin(loan, returnDate)
	l.log.Info("item returned", "patron", patronID, "title", loan.Item.Title(), "loan", loan.ID)
	return ReturnResult{Status: ReturnOK, Loan: loan, Message: msg}
}

// checkin is the only place both halves of a return are applied.
func (l *Library) checkin(loan *Loan, returnDate time.Time) string {
	loan.Patron.ReturnItem(loan.Item)
	return loan.RegisterReturn(returnDate)
}

func (l *Library) activeLoan(patronID, title string) *Loan {
	key := titleKey(title)
	for _, loan := range l.loans {
		if loan.Active() && loan.Patron.ID() == patronID && titleKey(loan.Item.Title()) == key {
			return loan
		}
	}
	return nil
}

// Loans returns the full loan log, returned loans included.
func (l *Library) Loans() []*Loan { return slices.Clone(l.loans) }

// ActiveLoans returns loans that have not been returned.
func (l *Library) ActiveLoans() []*Loan {
	var active []*Loan
	for _, loan := range l.loans {
		if loan.Active() {
			active = append(active, loan)
		}
	}
	return active
}

// OverdueLoans returns active loans past their due date as of today.
func (l *Library) OverdueLoans(today time.Time) []*Loan {
	var overdue []*Loan
	for _, loan := range l.loans {
		if loan.IsOverdue(today) {
			overdue = append(overdue, loan)
		}
	}
	return overdue
}

func isNilItem(item Item) bool {
	switch it := item.(type) {
	case nil:
		return true
	case *Book:
		return it == nil
	case *Magazine:
		return it == nil
	case *DVD:
		return it == nil
	}
	return false
}
