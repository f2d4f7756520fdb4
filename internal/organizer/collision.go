package organizer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveDestination returns the first path in dir not reported as taken:
// dir/name, then dir/base_1.ext, dir/base_2.ext, and so on. Each candidate is
// checked afresh.
func ResolveDestination(dir, name string, taken func(path string) (bool, error)) (string, error) {
	candidate := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		used, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		if !used {
			return candidate, nil
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
}
