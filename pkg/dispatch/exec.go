package dispatch

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/apex/log"
)

// ErrSubprocess is returned when an external tool is missing, fails to
// start or exits with a non-zero status
var ErrSubprocess = errors.New("subprocess failed")

// runTool starts bin and blocks until it exits. Output of the child is
// forwarded to the debug log.
func runTool(name, bin string, args ...string) error {
	ctx := log.WithField("tool", name)

	out := &logWriter{entry: ctx}
	defer out.Flush()

	cmd := exec.Command(bin, args...)
	cmd.Stdin = nil
	cmd.Stdout = out
	cmd.Stderr = out

	ctx.WithField("args", strings.Join(args, " ")).Debug("starting")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s exited with status %d", ErrSubprocess, name, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %s: %w", ErrSubprocess, name, err)
	}
	return nil
}

// logWriter turns child process output into one debug entry per line
type logWriter struct {
	entry *log.Entry

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		i := bytes.IndexAny(w.buf.Bytes(), "\r\n")
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(w.buf.Next(i + 1)))
		if line != "" {
			w.entry.Debug(line)
		}
	}
	return len(p), nil
}

// Flush logs whatever is left without a trailing newline
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if line := strings.TrimSpace(w.buf.String()); line != "" {
		w.entry.Debug(line)
	}
	w.buf.Reset()
}
