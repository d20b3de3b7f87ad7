package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pgiban/internal/cli"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pgiban.ExitPanic)
		}
	}()

	if os.Getenv("PGIBAN_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		if cli.ShouldReport(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(pgiban.ExitCodeForError(err))
	}
}
