package stimuli

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/theimaginaryfoundation/stimul-o-matic/stimuli/fileutils"
)

// WriteOptions controls WriteManifest.
type WriteOptions struct {
	// Compact writes single-line JSON. The default is two-space indentation.
	Compact bool

	// FileMode is used for the output file (defaults to 0o644).
	FileMode fs.FileMode
}

// EncodeManifest serializes m per the wire contract: UTF-8, two-space
// indentation unless compact, non-ASCII and HTML metacharacters written
// literally, one trailing newline.
func EncodeManifest(m Manifest, compact bool) ([]byte, error) {
	b, err := fileutils.EncodeJSON(m, !compact)
	if err != nil {
		return nil, fmt.Errorf("EncodeManifest: %w: %w", ErrOutput, err)
	}
	return b, nil
}

// WriteManifest encodes m and writes it to path atomically, replacing any
// existing file only once the new content is complete. It returns the number
// of bytes written.
func WriteManifest(path string, m Manifest, opts WriteOptions) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("WriteManifest: %w: path is empty", ErrConfig)
	}
	if opts.FileMode == 0 {
		opts.FileMode = 0o644
	}

	b, err := EncodeManifest(m, opts.Compact)
	if err != nil {
		return 0, err
	}
	if err := fileutils.WriteFileAtomicSameDir(path, b, opts.FileMode); err != nil {
		return 0, fmt.Errorf("WriteManifest %s: %w: %w", path, ErrOutput, err)
	}
	return int64(len(b)), nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("ReadManifest %s: %w: %w", path, ErrInput, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("ReadManifest %s: %w: %w", path, ErrInput, err)
	}
	return m, nil
}
