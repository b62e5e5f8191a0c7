package library

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.MaxItemsPerPatron() != 5 || c.DefaultLoanDays() != 14 {
		t.Fatalf("defaults = %d/%d, want 5/14", c.MaxItemsPerPatron(), c.DefaultLoanDays())
	}
}

func TestSetMaxItemsPerPatron(t *testing.T) {
	c := DefaultConfig()
	if err := c.SetMaxItemsPerPatron(10); err != nil {
		t.Fatalf("set 10: %v", err)
	}
	if err := c.SetMaxItemsPerPatron(0); err != nil {
		t.Fatalf("set 0: %v", err)
	}
	if err := c.SetMaxItemsPerPatron(-1); err == nil {
		t.Fatalf("expected error for negative max")
	}
	if c.MaxItemsPerPatron() != 0 {
		t.Fatalf("rejected value must not be stored, got %d", c.MaxItemsPerPatron())
	}
}

func TestNewConfig(t *testing.T) {
	if _, err := NewConfig(3, 7); err != nil {
		t.Fatalf("valid config: %v", err)
	}
	if _, err := NewConfig(-1, 7); err == nil {
		t.Fatalf("expected error for negative max items")
	}
	if _, err := NewConfig(3, 0); err == nil {
		t.Fatalf("expected error for zero loan days")
	}
}

func TestConfigDueDate(t *testing.T) {
	c := DefaultConfig()
	got := FormatDate(c.DueDate(date(t, "2023-01-01")))
	if got != "2023-01-15" {
		t.Fatalf("due = %s, want 2023-01-15", got)
	}
	if !c.AtLimit(5) || c.AtLimit(4) {
		t.Fatalf("AtLimit boundary wrong")
	}
}
