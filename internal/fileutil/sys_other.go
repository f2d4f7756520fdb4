//go:build !unix

package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

func canList(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", path, err)
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s is not readable: %w", path, err)
	}
	return nil
}
