package rekordbox

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/zenibako/autocue/export"
)

// ErrLocked is returned when another process holds the output file lock.
var ErrLocked = errors.New("library file is locked by another process")

const lockRetryDelay = 100 * time.Millisecond

// Encode writes the document as indented XML with a declaration.
func (l *Library) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(l.doc); err != nil {
		return fmt.Errorf("encode rekordbox xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Save writes the library to path. The write goes through a temp file in
// the same directory and is serialized with other writers by an advisory
// lock on path+".lock". ctx bounds the wait for the lock.
func (l *Library) Save(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("Failed to release library lock", "path", path, "error", err)
		}
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := l.Encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	log.Debug("Saved rekordbox library", "path", path)
	return nil
}

// Export saves a timestamped copy of the library into dir and returns its
// path. The source file is never overwritten.
func (l *Library) Export(ctx context.Context, dir string, at time.Time) (string, error) {
	if dir == "" {
		dir = filepath.Dir(l.path)
	}
	path := filepath.Join(dir, export.ArtifactName(l.path, at))
	if err := l.Save(ctx, path); err != nil {
		return "", err
	}
	log.Info("Exported rekordbox library", "path", path)
	return path, nil
}
