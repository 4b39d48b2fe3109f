package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theimaginaryfoundation/stimul-o-matic/stimuli"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	m, err := stimuli.ReadManifest(cfg.InPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	info := m.ExperimentInfo
	fmt.Fprintf(os.Stdout, "manifest=%s total_stimuli=%d practice_trials=%d main_trials=%d western_count=%d chinese_count=%d\n",
		cfg.InPath, info.TotalStimuli, info.PracticeTrials, info.MainTrials, info.WesternCount, info.ChineseCount)

	// The practice overcount is a documented quirk of the manifest format,
	// not a broken file; report it as a warning.
	w, c := m.PracticeFlagged()
	if w+c < info.PracticeTrials {
		fmt.Fprintf(os.Stdout, "warn: practice_trials=%d but only %d records are flagged (a group has fewer rows than the practice count)\n",
			info.PracticeTrials, w+c)
	}
	if info.MainTrials < 0 {
		fmt.Fprintln(os.Stdout, "warn: main_trials is negative")
	}

	problems := m.Verify()
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, "invariant: "+p)
	}
	if len(problems) > 0 {
		os.Exit(1)
	}
}

type Config struct {
	InPath string
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		InPath: "stimuli.json",
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Manifest file to inspect")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/manifest-inspect -in stimuli.json")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.InPath != "" {
		cfg.InPath = filepath.Clean(cfg.InPath)
	}
	return cfg, nil
}
