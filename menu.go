package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"library-catalog/library"
)

// session is the presentation state for one run: the Library and Config
// pair plus the input and output it talks to.
type session struct {
	lib *library.Library
	cfg *library.Config
	sc  *bufio.Scanner
	out io.Writer
	log *slog.Logger
	now func() time.Time

	interactive bool
}

func newSession(lib *library.Library, cfg *library.Config, in io.Reader, out io.Writer, log *slog.Logger) *session {
	return &session{
		lib: lib,
		cfg: cfg,
		sc:  bufio.NewScanner(in),
		out: out,
		log: log,
		now: time.Now,
	}
}

func (s *session) printf(format string, args ...any) { fmt.Fprintf(s.out, format, args...) }
func (s *session) println(args ...any)               { fmt.Fprintln(s.out, args...) }

func (s *session) loop() {
	s.printf("Welcome to the %s catalog!\n", s.lib.Name())
	s.printHelp()

	for {
		s.printf("\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.ToLower(strings.TrimSpace(s.sc.Text()))

		switch cmd {
		case "":
			continue
		case "add book":
			s.handleAddBook()
		case "add magazine":
			s.handleAddMagazine()
		case "add dvd":
			s.handleAddDVD()
		case "list items":
			s.handleListItems()
		case "find item":
			s.handleFindItem()
		case "search":
			s.handleSearch()
		case "remove item":
			s.handleRemoveItem()
		case "add patron":
			s.handleAddPatron()
		case "list patrons":
			s.handleListPatrons()
		case "find patron":
			s.handleFindPatron()
		case "lend":
			s.handleLend()
		case "return":
			s.handleReturn()
		case "list loans":
			s.handleListLoans()
		case "show config":
			s.handleShowConfig()
		case "set max items":
			s.handleSetMaxItems()
		case "set loan days":
			s.handleSetLoanDays()
		case "help":
			s.printHelp()
		case "exit":
			s.println("Goodbye!")
			return
		default:
			s.println("Unknown command. Type 'help' to see the available commands.")
		}
		if s.interactive {
			s.println()
		}
	}
}

func (s *session) printHelp() {
	s.println("Available commands:")
	s.println("  Catalog: add book, add magazine, add dvd, list items, find item, search, remove item")
	s.println("  Patrons: add patron, list patrons, find patron")
	s.println("  Circulation: lend, return, list loans")
	s.println("  Settings: show config, set max items, set loan days")
	s.println("  System: help, exit")
}

// prompt prints label and reads one trimmed line. It reports false when
// input is exhausted.
func (s *session) prompt(label string) (string, bool) {
	s.printf("%s: ", label)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

func (s *session) promptInt(label string) (int, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.printf("Invalid number for %s: %s\n", strings.ToLower(label), raw)
		return 0, false
	}
	return n, true
}

// promptDate reads a YYYY-MM-DD date; a blank line means today.
func (s *session) promptDate(label string) (time.Time, bool) {
	raw, ok := s.prompt(label + " (YYYY-MM-DD, blank for today)")
	if !ok {
		return time.Time{}, false
	}
	if raw == "" {
		return library.Day(s.now()), true
	}
	d, err := library.ParseDate(raw)
	if err != nil {
		s.printf("Error: %v\n", err)
		return time.Time{}, false
	}
	return d, true
}

// ------------------ Catalog ------------------

func (s *session) handleAddBook() {
	title, ok := s.prompt("Title")
	if !ok {
		return
	}
	year, ok := s.promptInt("Publication year")
	if !ok {
		return
	}
	isbn, ok := s.prompt("ISBN")
	if !ok {
		return
	}
	authorName, ok := s.prompt("Author name")
	if !ok {
		return
	}
	authorEmail, ok := s.prompt("Author email")
	if !ok {
		return
	}
	bio, ok := s.prompt("Author biography (optional)")
	if !ok {
		return
	}
	genre, ok := s.prompt("Genre (optional)")
	if !ok {
		return
	}

	author, err := library.NewAuthor(authorName, authorEmail, bio)
	if err != nil {
		s.printf("Error adding book: %v\n", err)
		return
	}
	book, err := library.NewBook(title, year, isbn, author, genre)
	if err != nil {
		s.printf("Error adding book: %v\n", err)
		return
	}
	if err := s.lib.AddItem(book); err != nil {
		s.printf("Error adding book: %v\n", err)
		return
	}
	_ = author.AddPublishedTitle(title)
	s.printf("Book '%s' added.\n", title)
}

func (s *session) handleAddMagazine() {
	title, ok := s.prompt("Title")
	if !ok {
		return
	}
	year, ok := s.promptInt("Publication year")
	if !ok {
		return
	}
	edition, ok := s.prompt("Edition")
	if !ok {
		return
	}
	publisher, ok := s.prompt("Publisher")
	if !ok {
		return
	}

	mag, err := library.NewMagazine(title, year, edition, publisher)
	if err != nil {
		s.printf("Error adding magazine: %v\n", err)
		return
	}
	if err := s.lib.AddItem(mag); err != nil {
		s.printf("Error adding magazine: %v\n", err)
		return
	}
	s.printf("Magazine '%s' added.\n", title)
}

func (s *session) handleAddDVD() {
	title, ok := s.prompt("Title")
	if !ok {
		return
	}
	year, ok := s.promptInt("Release year")
	if !ok {
		return
	}
	minutes, ok := s.promptInt("Duration (minutes)")
	if !ok {
		return
	}
	director, ok := s.prompt("Director")
	if !ok {
		return
	}

	dvd, err := library.NewDVD(title, year, minutes, director)
	if err != nil {
		s.printf("Error adding DVD: %v\n", err)
		return
	}
	if err := s.lib.AddItem(dvd); err != nil {
		s.printf("Error adding DVD: %v\n", err)
		return
	}
	s.printf("DVD '%s' added.\n", title)
}

func (s *session) handleListItems() {
	items := s.lib.Items()
	if len(items) == 0 {
		s.println("No items in the catalog.")
		return
	}
	s.printItems(items)
}

func (s *session) printItems(items []library.Item) {
	s.printf("%-4s %-9s %-35s %-6s %-25s %s\n", "#", "Kind", "Title", "Year", "Creator", "Available")
	s.println(strings.Repeat("-", 95))
	for i, it := range items {
		s.printf("%-4d %-9s %-35s %-6d %-25s %s\n",
			i+1,
			it.Kind(),
			truncateString(it.Title(), 35),
			it.PublicationYear(),
			truncateString(creator(it), 25),
			availability(it))
	}
}

func (s *session) handleFindItem() {
	title, ok := s.prompt("Title")
	if !ok {
		return
	}
	item, found := s.lib.FindItemByTitle(title)
	if !found {
		s.printf("Item '%s' not found.\n", title)
		return
	}
	s.println("Item found:")
	s.println(item.String())
	if l, ok := library.AsLoanable(item); ok {
		s.printf("   Available: %s\n", yesNo(l.IsAvailable()))
	}
}

func (s *session) handleSearch() {
	q, ok := s.prompt("Query")
	if !ok {
		return
	}
	items, err := s.lib.Search(q)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	if len(items) == 0 {
		s.printf("No items found matching '%s'.\n", q)
		return
	}
	s.printf("Found %d item(s) matching '%s':\n", len(items), q)
	s.printItems(items)
}

func (s *session) handleRemoveItem() {
	title, ok := s.prompt("Title")
	if !ok {
		return
	}
	if s.lib.RemoveItemByTitle(title) {
		s.printf("Item '%s' removed.\n", title)
	} else {
		s.printf("Item '%s' not found.\n", title)
	}
}

// ------------------ Patrons ------------------

func (s *session) handleAddPatron() {
	name, ok := s.prompt("Name")
	if !ok {
		return
	}
	email, ok := s.prompt("Email")
	if !ok {
		return
	}
	id, ok := s.prompt("Patron ID")
	if !ok {
		return
	}

	p, err := library.NewPatron(name, email, id)
	if err != nil {
		s.printf("Error registering patron: %v\n", err)
		return
	}
	if err := s.lib.RegisterPatron(p); err != nil {
		s.printf("Error registering patron: %v\n", err)
		return
	}
	s.printf("Patron '%s' registered with ID %s\n", name, id)
}

func (s *session) handleListPatrons() {
	patrons := s.lib.Patrons()
	if len(patrons) == 0 {
		s.println("No patrons registered.")
		return
	}
	s.printf("%-10s %-25s %-30s %s\n", "ID", "Name", "Email", "Borrowed")
	s.println(strings.Repeat("-", 75))
	for _, p := range patrons {
		s.printf("%-10s %-25s %-30s %d\n", p.ID(), truncateString(p.Name(), 25), truncateString(p.Email(), 30), len(p.Borrowed()))
	}
}

func (s *session) handleFindPatron() {
	id, ok := s.prompt("Patron ID")
	if !ok {
		return
	}
	p, found := s.lib.FindPatronByID(id)
	if !found {
		s.printf("Patron with ID '%s' not found.\n", id)
		return
	}
	s.println("Patron found:")
	s.println(p.String())
	for _, it := range p.Borrowed() {
		s.printf("   Holding: %s\n", it.Title())
	}
}

// ------------------ Circulation ------------------

func (s *session) handleLend() {
	patronID, ok := s.prompt("Patron ID")
	if !ok {
		return
	}
	title, ok := s.prompt("Title")
	if !ok {
		return
	}
	loanDate, ok := s.promptDate("Loan date")
	if !ok {
		return
	}
	due := s.cfg.DueDate(loanDate)

	if p, found := s.lib.FindPatronByID(patronID); found && s.cfg.AtLimit(len(p.Borrowed())) {
		// The limit is advisory; Lend does not enforce it.
		s.log.Warn("patron at item limit", "patron", patronID, "held", len(p.Borrowed()), "max", s.cfg.MaxItemsPerPatron())
	}

	s.printf("Loan date: %s\n", library.FormatDate(loanDate))
	s.printf("Due date: %s\n", library.FormatDate(due))
	res := s.lib.Lend(patronID, title, loanDate, due)
	s.println(res.Message)
}

func (s *session) handleReturn() {
	patronID, ok := s.prompt("Patron ID")
	if !ok {
		return
	}
	title, ok := s.prompt("Title")
	if !ok {
		return
	}
	returnDate, ok := s.promptDate("Return date")
	if !ok {
		return
	}
	res := s.lib.RegisterReturn(patronID, title, returnDate)
	s.println(res.Message)
}

func (s *session) handleListLoans() {
	active := s.lib.ActiveLoans()
	if len(active) == 0 {
		s.println("No active loans.")
		return
	}
	today := library.Day(s.now())
	for i, loan := range active {
		s.printf("%d. Patron: %s (%s)\n", i+1, loan.Patron.Name(), loan.Patron.ID())
		s.printf("   Item: %s\n", loan.Item.Title())
		s.printf("   Loan date: %s\n", library.FormatDate(loan.LoanDate))
		s.printf("   Due date: %s\n", library.FormatDate(loan.DueDate))
		if loan.IsOverdue(today) {
			s.println("   Status: OVERDUE")
		}
		s.println(strings.Repeat("-", 20))
	}
}

// ------------------ Settings ------------------

func (s *session) handleShowConfig() {
	s.printf("Max items per patron: %d\n", s.cfg.MaxItemsPerPatron())
	s.printf("Default loan days: %d\n", s.cfg.DefaultLoanDays())
}

func (s *session) handleSetMaxItems() {
	n, ok := s.promptInt(fmt.Sprintf("New max items per patron (current: %d)", s.cfg.MaxItemsPerPatron()))
	if !ok {
		return
	}
	if err := s.cfg.SetMaxItemsPerPatron(n); err != nil {
		s.printf("Error changing setting: %v\n", err)
		return
	}
	s.println("Max items per patron updated.")
}

func (s *session) handleSetLoanDays() {
	n, ok := s.promptInt(fmt.Sprintf("New default loan days (current: %d)", s.cfg.DefaultLoanDays()))
	if !ok {
		return
	}
	if err := s.cfg.SetDefaultLoanDays(n); err != nil {
		s.printf("Error changing setting: %v\n", err)
		return
	}
	s.println("Default loan days updated.")
}

// ------------------ Formatting ------------------

func creator(it library.Item) string {
	switch v := it.(type) {
	case *library.Book:
		return v.AuthorName()
	case *library.Magazine:
		return v.Publisher()
	case *library.DVD:
		return v.Director()
	}
	return ""
}

func availability(it library.Item) string {
	l, ok := library.AsLoanable(it)
	if !ok {
		return "n/a"
	}
	return yesNo(l.IsAvailable())
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}
