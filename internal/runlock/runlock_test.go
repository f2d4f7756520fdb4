package runlock_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"titlesort/internal/runlock"
	"titlesort/internal/services"
)

func TestAcquireIsExclusivePerTarget(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	target := "/videos/incoming"

	first, err := runlock.Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	if _, err := runlock.Acquire(lockDir, target); !errors.Is(err, services.ErrLocked) {
		t.Fatalf("expected ErrLocked for second acquire, got %v", err)
	}

	other, err := runlock.Acquire(lockDir, "/videos/other")
	if err != nil {
		t.Fatalf("different target should not contend: %v", err)
	}
	if err := other.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(first.Path()); err != nil {
		t.Fatalf("expected lock file to persist, stat err=%v", err)
	}

	again, err := runlock.Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestPathForNormalizesTarget(t *testing.T) {
	a := runlock.PathFor("/locks", "/videos/incoming/")
	b := runlock.PathFor("/locks", "/videos/incoming")
	if a != b {
		t.Fatalf("expected equal lock paths, got %q and %q", a, b)
	}
	if filepath.Dir(a) != "/locks" {
		t.Fatalf("expected lock inside lock dir, got %q", a)
	}
}

func TestReleaseNilLock(t *testing.T) {
	var l *runlock.Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil release should be a no-op, got %v", err)
	}
}
