package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTarget = errors.New("invalid target")
	ErrNonConforming = errors.New("non-conforming name")
	ErrProvisioning  = errors.New("directory provisioning failure")
	ErrMove          = errors.New("move failure")
	ErrConfiguration = errors.New("configuration error")
	ErrLocked        = errors.New("target locked")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrMove
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort a whole organize run rather than a
// single file.
func IsFatal(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInvalidTarget), errors.Is(err, ErrConfiguration), errors.Is(err, ErrLocked):
		return true
	default:
		return false
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
