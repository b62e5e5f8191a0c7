package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"library-catalog/library"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const libraryName = "Community Library"

type options struct {
	maxItems int
	loanDays int
	seed     bool
	index    bool
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "library",
		Short:        "In-memory library catalog and lending manager",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.maxItems, "max-items", library.DefaultMaxItemsPerPatron, "maximum items per patron (advisory)")
	f.IntVar(&opts.loanDays, "loan-days", library.DefaultLoanDays, "default loan period in days")
	f.BoolVar(&opts.seed, "seed", true, "load demo authors, books and a patron")
	f.BoolVar(&opts.index, "index", true, "keep an SQLite keyword index for search")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	return cmd
}

// run wires one Library and Config for the session and drives the menu
// until the input ends or the user exits.
func run(in io.Reader, out, errOut io.Writer, opts options) error {
	log, err := newLogger(errOut, opts.logLevel)
	if err != nil {
		return err
	}

	cfg, err := library.NewConfig(opts.maxItems, opts.loanDays)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	libOpts := []library.Option{library.WithLogger(log)}
	if opts.index {
		idx, err := library.NewSearchIndex()
		if err != nil {
			return fmt.Errorf("search index: %w", err)
		}
		defer idx.Close()
		libOpts = append(libOpts, library.WithIndex(idx))
	}
	lib := library.New(libraryName, libOpts...)

	if opts.seed {
		if err := seedCatalog(lib); err != nil {
			// Seed problems should not stop the session.
			log.Error("seed failed", "err", err)
		}
	}

	s := newSession(lib, cfg, in, out, log)
	s.interactive = isTerminal(in)
	s.loop()
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
