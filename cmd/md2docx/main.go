package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run dispatches the top-level command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return ExitUsage
	}

	switch args[1] {
	case "convert":
		err := runConvert(args[2:], stdout, stderr)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return exitCodeFor(err)
	case "version", "--version":
		fmt.Fprintln(stdout, "md2docx", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		if len(args) > 2 && args[2] == "convert" {
			printConvertUsage(stdout)
		} else {
			printUsage(stdout)
		}
		return ExitSuccess
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[1])
		printUsage(stderr)
		return ExitUsage
	}
}
