package organizer

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Extension is the only file extension considered, matched case-insensitively.
const Extension = ".mp4"

// namePattern matches "<digits> - 《key》" at the start of a name. Digits and
// whitespace are Unicode-aware so full-width digits and ideographic spaces
// match too.
var namePattern = regexp.MustCompile(`^\p{Nd}+[\s\p{Zs}]*-[\s\p{Zs}]*《([^》]+)》`)

// ExtractKey returns the trimmed grouping key from name. Anything after the
// closing bracket is ignored. ok is false when name does not follow the
// convention or the key is blank.
func ExtractKey(name string) (key string, ok bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	key = strings.TrimSpace(m[1])
	if key == "" {
		return "", false
	}
	return key, true
}

// IsEligibleName reports whether name carries the target extension.
func IsEligibleName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), Extension)
}

// safeKey rejects keys that would resolve outside the target directory.
func safeKey(key string) bool {
	if key == "." || key == ".." {
		return false
	}
	return !strings.ContainsRune(key, '/') && !strings.ContainsRune(key, filepath.Separator)
}
