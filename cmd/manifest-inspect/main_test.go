package main

import (
	"flag"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("manifest-inspect", flag.ContinueOnError)
	cfg, err := parseFlags(fs, nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.InPath != "stimuli.json" {
		t.Fatalf("InPath=%q, want %q", cfg.InPath, "stimuli.json")
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("manifest-inspect", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{"-in", "out/pilot.json"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.InPath != "out/pilot.json" {
		t.Fatalf("InPath=%q", cfg.InPath)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("expected error for empty config")
	}
	if err := (Config{InPath: "stimuli.json"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
