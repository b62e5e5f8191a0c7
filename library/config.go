package library

import "time"

const (
	DefaultMaxItemsPerPatron = 5
	DefaultLoanDays          = 14
)

// Config holds circulation settings. The Library does not read it; the
// presentation layer uses DefaultLoanDays to compute due dates.
//
// MaxItemsPerPatron is not enforced by Library.Lend.
type Config struct {
	maxItemsPerPatron int
	defaultLoanDays   int
}

// DefaultConfig returns the stock settings: 5 items, 14 days.
func DefaultConfig() *Config {
	return &Config{maxItemsPerPatron: DefaultMaxItemsPerPatron, defaultLoanDays: DefaultLoanDays}
}

// NewConfig validates both settings.
func NewConfig(maxItems, loanDays int) (*Config, error) {
	c := DefaultConfig()
	if err := c.SetMaxItemsPerPatron(maxItems); err != nil {
		return nil, err
	}
	if err := c.SetDefaultLoanDays(loanDays); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) MaxItemsPerPatron() int { return c.maxItemsPerPatron }
func (c *Config) DefaultLoanDays() int   { return c.defaultLoanDays }

// SetMaxItemsPerPatron rejects negative values.
func (c *Config) SetMaxItemsPerPatron(n int) error {
	if err := check("max items per patron", n, ruleNonNeg); err != nil {
		return err
	}
	c.maxItemsPerPatron = n
	return nil
}

// SetDefaultLoanDays rejects zero and negative values.
func (c *Config) SetDefaultLoanDays(n int) error {
	if err := check("default loan days", n, rulePositive); err != nil {
		return err
	}
	c.defaultLoanDays = n
	return nil
}

// DueDate is loanDate plus the default loan period.
func (c *Config) DueDate(loanDate time.Time) time.Time {
	return Day(loanDate).AddDate(0, 0, c.defaultLoanDays)
}

// AtLimit reports whether a patron holding n items has reached the
// configured maximum.
func (c *Config) AtLimit(n int) bool { return n >= c.maxItemsPerPatron }
