package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stallion/errors"
)

// Exit codes to provide meaningful status to the shell or the scheduler running the scraper.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scraper terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run executes the command line and maps its error to an exit code.
// Deferred cleanups of the commands (badger, bluge, connection pools) all run before main exits.
func run() (int, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		var cfgErr *configError
		if errors.As(err, &cfgErr) {
			return exitConfig, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

// configError marks failures happening before any work starts: environment, credentials.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }
