package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrDestinationExists reports that a move or copy refused to replace an
// existing path.
var ErrDestinationExists = errors.New("destination already exists")

// rename is swapped in tests to simulate cross-device and racing renames.
var rename = renameNoReplace

// openCopy reopens a finished copy for verification; swapped in tests.
var openCopy = os.Open

// Exists reports whether anything occupies path. Symlinks, including dangling
// ones, count as occupied.
func Exists(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MoveFile relocates src to dst without ever replacing an existing dst. A
// same-volume move is a single rename. Across volumes the file is copied with
// verification and src is removed only after the copy is confirmed; if src
// cannot be removed the copy is discarded so src stays the only copy.
func MoveFile(src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("move %s: %w", dst, ErrDestinationExists)
	}
	if !isCrossDevice(err) {
		return fmt.Errorf("move file: %w", err)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("copy file across devices: %w", err)
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// CopyFileVerified copies src to a new dst and confirms it. dst must not
// exist; it is created with src's permissions and synced, then read back so
// its size and SHA256 must match what was read from src. Any failure after
// dst is created removes it.
func CopyFileVerified(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create %s: %w", dst, ErrDestinationExists)
		}
		return err
	}
	defer func() {
		_ = out.Close()
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	srcHasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if written != srcSize {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	copySize, copySum, err := hashCopy(dst)
	if err != nil {
		return fmt.Errorf("verify destination: %w", err)
	}
	if copySize != srcSize {
		return fmt.Errorf("copy size mismatch: source %d bytes, destination %d bytes", srcSize, copySize)
	}
	if !bytes.Equal(srcHasher.Sum(nil), copySum) {
		return fmt.Errorf("copy hash mismatch: destination differs from source")
	}
	return nil
}

func hashCopy(path string) (int64, []byte, error) {
	f, err := openCopy(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, nil, err
	}
	return n, h.Sum(nil), nil
}

// CheckReadableDir returns nil when path is an existing directory the current
// process can list.
func CheckReadableDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return canList(path)
}

// renameChecked is the portable fallback when the kernel cannot refuse to
// replace: check, then rename.
func renameChecked(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return err
	}
	if exists {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}
