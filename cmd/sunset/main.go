package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/sunset/internal/cli"
	"github.com/vvka-141/sunset/pkg/sunset"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(sunset.ExitPanic)
		}
	}()

	if os.Getenv("SUNSET_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(sunset.ExitCodeForError(err))
	}
}
