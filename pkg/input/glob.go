package input

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Stdin is the path placeholder that selects standard input.
const Stdin = "-"

// ExpandGlobs expands file paths and glob patterns into a deduplicated, sorted
// list of paths. Patterns without matches are kept as literal paths so the
// open step can report a precise file-not-found error. The Stdin placeholder
// is passed through untouched and is always returned first.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	useStdin := false

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == Stdin {
			useStdin = true
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(result)

	if useStdin {
		result = append([]string{Stdin}, result...)
	}
	return result, nil
}
