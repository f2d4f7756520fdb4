// Package runlock keeps two titlesort processes from organizing the same
// directory at once. Lock files live outside the target tree.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"titlesort/internal/services"
)

// Lock is an acquired advisory lock for one target directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for target inside lockDir.
func PathFor(lockDir, target string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(target)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for target without blocking. It fails with
// services.ErrLocked when another process holds it.
func Acquire(lockDir, target string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "organizing", "lock", "create lock directory", err)
	}
	path := PathFor(lockDir, target)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "organizing", "lock", "acquire lock", err)
	}
	if !ok {
		return nil, services.Wrap(
			services.ErrLocked,
			"organizing",
			"lock",
			fmt.Sprintf("another titlesort run is organizing %s", target),
			nil,
		)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. The lock file is left behind; removing it would let a
// waiter that already opened it lock an orphaned inode.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
