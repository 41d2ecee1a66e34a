// Package stacktrace trims raw goroutine stacks down to the frames that
// belong to this repository.
package stacktrace

import "strings"

// InternalPaths returns the "internal/...go:line" locations found in a raw
// stack as produced by runtime/debug.Stack.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, ".go:") {
			continue
		}

		_, rel, found := strings.Cut(line, "/internal/")
		if !found {
			continue
		}

		// drop the " +0x1d" program counter offset
		rel, _, _ = strings.Cut(rel, " ")
		paths = append(paths, "internal/"+rel)
	}

	return paths
}
