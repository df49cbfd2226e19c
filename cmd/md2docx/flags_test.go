package main

import "testing"

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{
		"-s", "print",
		"--asset-path", "/custom",
		"--timeout", "2m",
		"-q",
		"docs/report.md",
	})
	if err != nil {
		t.Fatalf("parseConvertFlags() error: %v", err)
	}

	if flags.style != "print" {
		t.Errorf("style = %q", flags.style)
	}
	if flags.assetPath != "/custom" {
		t.Errorf("assetPath = %q", flags.assetPath)
	}
	if flags.timeout != "2m" {
		t.Errorf("timeout = %q", flags.timeout)
	}
	if !flags.quiet {
		t.Error("quiet not set")
	}
	if len(positional) != 1 || positional[0] != "docs/report.md" {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseConvertFlagsUnknownFlag(t *testing.T) {
	t.Parallel()

	if _, _, err := parseConvertFlags([]string{"--bogus"}); err == nil {
		t.Error("parseConvertFlags() accepted unknown flag")
	}
}
