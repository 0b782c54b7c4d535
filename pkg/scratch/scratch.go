/*
Package scratch manages temporary directories handed to external tools
*/
package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Dir is a temporary directory that remembers the files placed in it
type Dir struct {
	path    string
	created []string

	mu     sync.Mutex
	closed bool
}

// New creates a fresh directory under the system temp dir
func New(prefix string) (*Dir, error) {
	path, err := os.MkdirTemp("", prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Root returns the directory path
func (d *Dir) Root() string {
	return d.path
}

// Path returns name inside the directory and tracks it for removal
func (d *Dir) Path(name string) string {
	p := filepath.Join(d.path, name)
	d.Track(p)
	return p
}

// Track registers a file for removal on Close
func (d *Dir) Track(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.created = append(d.created, path)
}

// Tracked returns the paths registered so far
func (d *Dir) Tracked() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.created...)
}

// Close removes every tracked file and then the directory itself, including
// anything a child process left behind. Calling Close again is a no-op.
func (d *Dir) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	for _, p := range d.created {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	d.created = nil

	if err := os.RemoveAll(d.path); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to clean up %s: %w", d.path, errors.Join(errs...))
	}
	return nil
}
