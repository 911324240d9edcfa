package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"codeberg.org/mutker/weatherdog/internal/errors"
)

const pidFile = "weatherdog.pid"

// Path returns the location of the PID file.
func Path() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Write records the current process ID, refusing to start when a live
// instance already holds the file. A stale file from a dead process is
// overwritten.
func Write() error {
	errFactory := errors.New()
	path := Path()

	if existing, err := readExisting(path); err == nil && isRunning(existing) {
		return errFactory.WithData(errors.ErrAlreadyRunning, existing)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove deletes the PID file. A missing file is not an error.
func Remove() error {
	errFactory := errors.New()
	path := Path()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

func readExisting(path string) (int, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(string(contents))
}

func isRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}
