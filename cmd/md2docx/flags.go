package main

import (
	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	config    string
	output    string
	style     string
	assetPath string
	timeout   string
	quiet     bool
	verbose   bool
}

// parseConvertFlags parses convert command arguments, returning the flags
// and remaining positional arguments.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SortFlags = false
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.style, "style", "s", "", "style preset name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom style presets")
	fs.StringVar(&f.timeout, "timeout", "", "per-file timeout, e.g. 90s or 2m")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
