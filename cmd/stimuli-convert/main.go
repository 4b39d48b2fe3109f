package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theimaginaryfoundation/stimul-o-matic/stimuli"
	"github.com/theimaginaryfoundation/stimul-o-matic/stimuli/fileutils"
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

	western, err := stimuli.LoadTable(cfg.WesternPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
	chinese, err := stimuli.LoadTable(cfg.ChinesePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
	fmt.Fprintf(os.Stdout, "loaded western=%d chinese=%d\n", len(western.Rows), len(chinese.Rows))

	if cfg.SamplePerGroup > 0 {
		// Both groups draw from the same seed, independently.
		western = stimuli.Sample(western, cfg.SamplePerGroup, cfg.Seed)
		chinese = stimuli.Sample(chinese, cfg.SamplePerGroup, cfg.Seed)
		fmt.Fprintf(os.Stdout, "sampled western=%d chinese=%d seed=%d\n", len(western.Rows), len(chinese.Rows), cfg.Seed)
	}

	manifest, err := stimuli.Build(western, chinese, stimuli.BuildOptions{
		ImageBaseURL:     cfg.ImageBaseURL,
		PracticePerGroup: cfg.PracticePerGroup,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}

	n, err := stimuli.WriteManifest(cfg.OutputPath, manifest, stimuli.WriteOptions{Compact: cfg.Compact})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}

	info := manifest.ExperimentInfo
	fmt.Fprintf(os.Stdout, "manifest=%s bytes_written=%d total_stimuli=%d practice_trials=%d main_trials=%d\n",
		cfg.OutputPath, n, info.TotalStimuli, info.PracticeTrials, info.MainTrials)

	if cfg.StageDir != "" {
		staged, err := stageImages(manifest, cfg.StageDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "staged=%d of=%d dir=%s\n", staged, info.TotalStimuli, cfg.StageDir)
	} else if !strings.Contains(cfg.ImageBaseURL, "://") {
		fmt.Fprintf(os.Stdout, "next: place image files under %swestern/ and %schinese/ relative to the experiment page\n",
			cfg.ImageBaseURL, cfg.ImageBaseURL)
	}
}

// exitCode distinguishes option errors surfaced by the library from runtime
// input/output failures, matching the flag-error exit status.
func exitCode(err error) int {
	if errors.Is(err, stimuli.ErrConfig) {
		return 2
	}
	return 1
}

// stageImages copies each record's source file to dir/<group>/<image_id>
// when the source is reachable on this machine. Missing sources are skipped,
// and already staged files are kept as-is so reruns stay idempotent.
func stageImages(m stimuli.Manifest, dir string) (int, error) {
	staged := 0
	for _, s := range m.Stimuli {
		if s.OriginalPath == "" || s.ImageID == "" {
			continue
		}
		dst := filepath.Join(dir, string(s.Source), s.ImageID)
		copied, err := fileutils.CopyFileIfExists(s.OriginalPath, dst, false)
		if err != nil {
			return staged, fmt.Errorf("stage %s: %w", s.OriginalPath, err)
		}
		if copied {
			staged++
		}
	}
	return staged, nil
}

type Config struct {
	WesternPath      string
	ChinesePath      string
	OutputPath       string
	ImageBaseURL     string
	PracticePerGroup int
	SamplePerGroup   int
	Seed             int64
	Compact          bool
	StageDir         string
}

func (c Config) Validate() error {
	if c.WesternPath == "" {
		return errors.New("missing -western")
	}
	if c.ChinesePath == "" {
		return errors.New("missing -chinese")
	}
	if c.OutputPath == "" {
		return errors.New("missing -output")
	}
	if c.PracticePerGroup < 0 {
		return errors.New("n_practice must be >= 0")
	}
	if c.SamplePerGroup < 0 {
		return errors.New("sample must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		OutputPath:       "stimuli.json",
		ImageBaseURL:     "images/",
		PracticePerGroup: 3,
		Seed:             42,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.WesternPath, "western", cfg.WesternPath, "Path to the western group table (.csv, .tsv, or .xlsx)")
	fs.StringVar(&cfg.ChinesePath, "chinese", cfg.ChinesePath, "Path to the chinese group table (.csv, .tsv, or .xlsx)")
	fs.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "Output manifest path")
	fs.StringVar(&cfg.ImageBaseURL, "image_base_url", cfg.ImageBaseURL, "Base URL prefixed to <group>/<filename>; include the trailing slash")
	fs.IntVar(&cfg.PracticePerGroup, "n_practice", cfg.PracticePerGroup, "Practice trials per group")
	fs.IntVar(&cfg.SamplePerGroup, "sample", 0, "Sample N rows per group before building (0 keeps every row)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "PRNG seed for -sample draws")
	fs.BoolVar(&cfg.Compact, "compact", false, "Write single-line JSON instead of indented")
	fs.StringVar(&cfg.StageDir, "stage_images", "", "Copy reachable source images to this directory as <group>/<filename>")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/stimuli-convert -western english_sample.csv -chinese chinese_sample.csv")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/stimuli-convert -western w.csv -chinese c.csv -sample 50 -seed 7 -output pilot.json")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.WesternPath != "" {
		cfg.WesternPath = filepath.Clean(cfg.WesternPath)
	}
	if cfg.ChinesePath != "" {
		cfg.ChinesePath = filepath.Clean(cfg.ChinesePath)
	}
	if cfg.OutputPath != "" {
		cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	}
	if cfg.StageDir != "" {
		cfg.StageDir = filepath.Clean(cfg.StageDir)
	}
	// ImageBaseURL is a URL prefix, not a filesystem path; leave it alone.
	return cfg, nil
}
