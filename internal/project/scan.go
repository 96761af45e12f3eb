package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scanner finds candidate Motoko entry points in a manifest-less workspace.
type Scanner struct {
	root     string
	ignore   []string
	maxDepth int
	maxFiles int
	found    []string
}

// NewScanner creates a scanner rooted at root. The ignore patterns are
// doublestar globs matched against workspace-relative paths.
func NewScanner(root string, ignore []string) *Scanner {
	return &Scanner{
		root:     root,
		ignore:   ignore,
		maxDepth: 10,  // Maximum directory depth
		maxFiles: 200, // Maximum candidates to collect
	}
}

// ScanEntryPoints walks the workspace and returns the workspace-relative
// paths of Motoko source files, best candidate first. The walk is bounded so
// a scan of a huge tree stays cheap; directories that cannot be read are
// skipped.
func ScanEntryPoints(root string, ignore []string) []string {
	s := NewScanner(root, ignore)
	s.scanDirectory(root, 0)

	// Shallow files named main.mo make the most plausible entry points, so
	// rank by depth, then by that convention, then by name.
	sort.Slice(s.found, func(i, j int) bool {
		a, b := s.found[i], s.found[j]
		if da, db := pathDepth(a), pathDepth(b); da != db {
			return da < db
		}
		if ma, mb := isMainFile(a), isMainFile(b); ma != mb {
			return ma
		}
		return a < b
	})

	return s.found
}

// scanDirectory recursively collects .mo files under dirPath.
func (s *Scanner) scanDirectory(dirPath string, depth int) {
	if depth > s.maxDepth || len(s.found) >= s.maxFiles {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		// Silently skip directories we can't read (permissions, etc.)
		return
	}

	for _, entry := range entries {
		if len(s.found) >= s.maxFiles {
			return
		}

		// Skip hidden files and directories
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())

		rel, err := filepath.Rel(s.root, fullPath)
		if err != nil {
			continue
		}

		if s.ignored(rel) {
			continue
		}

		if entry.IsDir() {
			// Skip common directories that never hold project sources
			switch entry.Name() {
			case "node_modules", "vendor", "dist", "build", "out", "target":
				continue
			}

			s.scanDirectory(fullPath, depth+1)

			continue
		}

		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".mo") {
			continue
		}

		s.found = append(s.found, rel)
	}
}

// ignored reports whether a workspace-relative path matches one of the
// configured ignore globs. Malformed patterns never match.
func (s *Scanner) ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range s.ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}

	return false
}

func pathDepth(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/")
}

func isMainFile(rel string) bool {
	return strings.EqualFold(filepath.Base(rel), "main.mo")
}
