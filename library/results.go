package library

// LendStatus is the outcome of Library.Lend.
type LendStatus int

const (
	LendOK LendStatus = iota
	LendPatronNotFound
	LendItemNotFound
	LendNotLoanable
	LendUnavailable
	LendFailed
)

func (s LendStatus) String() string {
	switch s {
	case LendOK:
		return "ok"
	case LendPatronNotFound:
		return "patron not found"
	case LendItemNotFound:
		return "item not found"
	case LendNotLoanable:
		return "item type not loanable"
	case LendUnavailable:
		return "item unavailable"
	default:
		return "failed"
	}
}

// LendResult describes what Lend did. Loan is set only on success.
type LendResult struct {
	Status  LendStatus
	Loan    *Loan
	Message string
}

func (r LendResult) OK() bool { return r.Status == LendOK }

// ReturnStatus is the outcome of Library.RegisterReturn.
type ReturnStatus int

const (
	ReturnOK ReturnStatus = iota
	ReturnLoanNotFound
)

func (s ReturnStatus) String() string {
	if s == ReturnOK {
		return "ok"
	}
	return "loan not found or already returned"
}

// ReturnResult describes what RegisterReturn did.
type ReturnResult struct {
	Status  ReturnStatus
	Loan    *Loan
	Message string
}

func (r ReturnResult) OK() bool { return r.Status == ReturnOK }
