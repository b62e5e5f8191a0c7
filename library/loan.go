package library

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Loan binds one patron to one loanable item for a date range. Loans are
// never deleted; returning one only flips Returned.
type Loan struct {
	ID       uuid.UUID
	Patron   *Patron
	Item     Loanable
	LoanDate time.Time
	DueDate  time.Time
	Returned bool

	// ReturnDate is zero until the loan is returned.
	ReturnDate time.Time
}

// NewLoan records a loan of item to patron. item must be a loanable variant
// (book or DVD); anything else is a *TypeMismatchError.
func NewLoan(patron *Patron, item Item, loanDate, dueDate time.Time) (*Loan, error) {
	if patron == nil {
		return nil, mismatch("*library.Patron", nil)
	}
	loanable, ok := AsLoanable(item)
	if !ok {
		return nil, mismatch("loanable item (book or DVD)", item)
	}
	return &Loan{
		ID:       uuid.New(),
		Patron:   patron,
		Item:     loanable,
		LoanDate: Day(loanDate),
		DueDate:  Day(dueDate),
	}, nil
}

// RegisterReturn marks the loan returned and the item available, and
// returns a confirmation line. Calling it twice is harmless.
func (l *Loan) RegisterReturn(returnDate time.Time) string {
	l.Returned = true
	l.ReturnDate = Day(returnDate)
	l.Item.MarkReturned()
	return fmt.Sprintf("Item '%s' returned by %s on %s.", l.Item.Title(), l.Patron.Name(), FormatDate(l.ReturnDate))
}

// IsOverdue reports whether the loan is still out after its due date.
func (l *Loan) IsOverdue(today time.Time) bool {
	return !l.Returned && Day(today).After(l.DueDate)
}

// Active reports whether the loan has not been returned yet.
func (l *Loan) Active() bool { return !l.Returned }
