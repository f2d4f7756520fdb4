package organizer

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Candidate is an eligible file found directly inside the target.
type Candidate struct {
	Path string
	Name string
}

// Scan lists eligible files in dir in name order. A symlink counts when it
// resolves to a regular file; links to directories and dangling links are
// ignored, as are directories, other non-regular entries, and everything
// below dir.
func Scan(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Candidate
	for _, entry := range entries {
		if !IsEligibleName(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(path, entry.Type()) {
			continue
		}
		out = append(out, Candidate{Path: path, Name: entry.Name()})
	}
	return out, nil
}

func isRegularFile(path string, mode fs.FileMode) bool {
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
