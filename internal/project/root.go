package project

import (
	"os"
	"path/filepath"
)

// rootMarkers identify a directory as a workspace root, in no particular
// order of precedence. The launcher config file counts so that manifest-less
// projects can still pin their root.
var rootMarkers = []string{
	"dfx.json",
	"vessel.dhall",
	"vessel.json",
	"mo-lsp.yaml",
}

// FindRoot walks from dir upwards until it finds a directory carrying one of
// the root markers. It reports the absolute root path, or false when the
// filesystem root is reached without a hit.
func FindRoot(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
