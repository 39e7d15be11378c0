package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"captioner/internal/services"
)

// ErrLocked is returned when another process holds the target's lock.
var ErrLocked = errors.New("output file is locked by another process")

// Path derives the subtitle path for a transcript. The transcript's base name
// is kept and its extension replaced; dir overrides the transcript's directory
// when set. Transcripts read from stdin ("-") have no derivable path.
func Path(transcriptPath, dir, ext string) (string, error) {
	transcriptPath = strings.TrimSpace(transcriptPath)
	if transcriptPath == "" || transcriptPath == "-" {
		return "", services.Wrap(services.ErrConfiguration, "output", "path",
			"an output path is required when reading the transcript from stdin", nil)
	}
	base := filepath.Base(transcriptPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = filepath.Dir(transcriptPath)
	}
	return filepath.Join(dir, base+ext), nil
}

// WriteFile atomically replaces path with content.
func WriteFile(path, content string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return services.Wrap(services.ErrConfiguration, "output", "write", "empty output path", nil)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	// The lock file stays in place; unlinking it would let a second process
	// lock a fresh inode while another still holds the old one.
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
