package watch

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tlview/internal/constants"
	"github.com/julianstephens/tlview/internal/logger"
)

// ErrAlreadyWatching is returned when another live process holds the lock.
var ErrAlreadyWatching = errors.New("another tlview watch is already writing this output")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock marks an output as owned by one watch process. The lockfile holds
// "pid|target|started".
type Lock struct {
	path string
}

// LockfilePath returns the lockfile used for target inside dir.
func LockfilePath(dir, target string) string {
	sum := sha1.Sum([]byte(target))
	base := strings.TrimSuffix(constants.WatchLockfileName, ".lock")
	return filepath.Join(dir, base+"-"+hex.EncodeToString(sum[:4])+".lock")
}

// Acquire takes the lock for target. A lockfile left by a process that is no
// longer running, or by something other than tlview, is replaced.
func Acquire(dir, target string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	path := LockfilePath(dir, target)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			content := fmt.Sprintf("%d|%s|%s", getpidFunc(), target, time.Now().UTC().Format(time.RFC3339))
			if _, werr := f.WriteString(content); werr != nil {
				f.Close()
				os.Remove(path)
				return nil, fmt.Errorf("writing lockfile: %w", werr)
			}
			if cerr := f.Close(); cerr != nil {
				return nil, fmt.Errorf("writing lockfile: %w", cerr)
			}
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("creating lockfile: %w", err)
		}

		if holderAlive(path) {
			return nil, ErrAlreadyWatching
		}
		logger.Info("Removing stale watch lockfile", "path", path)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("removing stale lockfile: %w", err)
		}
	}
	return nil, ErrAlreadyWatching
}

// holderAlive reports whether the lockfile names this process or another
// running tlview process.
func holderAlive(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 3)
	if len(parts) != 3 {
		return false
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return false
	}
	if pid == getpidFunc() {
		return true
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Path returns the lockfile path.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lockfile. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
