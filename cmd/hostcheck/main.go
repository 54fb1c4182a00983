package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes consumed by automation.
const (
	exitOK       = 0
	exitWarn     = 1
	exitCritical = 2
	exitUsage    = 3
)

// exitError carries a process exit code out of a cobra RunE. A nil err means
// the report already said everything; only the code matters.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func run(args []string) (int, error) {
	root := newRootCommand()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code, ee.err
		}
		// Anything cobra itself rejects (unknown flag, bad value) is a
		// usage error.
		return exitUsage, err
	}
	return exitOK, nil
}

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hostcheck:", err)
	}
	os.Exit(code)
}
