package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theimaginaryfoundation/stimul-o-matic/stimuli"
	"github.com/theimaginaryfoundation/stimul-o-matic/stimuli/fileutils"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	schema, err := stimuli.ManifestSchema()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if cfg.OutPath == "" {
		b, err := fileutils.EncodeJSON(schema, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if _, err := os.Stdout.Write(b); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	if err := fileutils.WriteJSONFileAtomic(cfg.OutPath, schema, true); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "schema=%s\n", cfg.OutPath)
}

type Config struct {
	OutPath string
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.OutPath, "out", "", "Write the schema here instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/manifest-schema")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/manifest-schema -out stimuli.schema.json")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.OutPath != "" {
		cfg.OutPath = filepath.Clean(cfg.OutPath)
	}
	return cfg, nil
}
