// Package platform resolves "search everywhere" into a concrete root
// list before a search starts. The search core never re-derives roots
// mid-search; this snapshot is taken once, at call time.
package platform

import (
	"os"
	"runtime"
)

// SystemRoots returns the currently existing top-level volumes. On
// Windows that is every mounted drive letter; elsewhere the filesystem
// has a single root.
func SystemRoots() []string {
	if runtime.GOOS != "windows" {
		return []string{"/"}
	}

	var roots []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if _, err := os.Stat(root); err == nil {
			roots = append(roots, root)
		}
	}
	if len(roots) == 0 {
		roots = []string{`C:\`}
	}
	return roots
}
