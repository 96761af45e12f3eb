// Package vessel integrates the vessel package manager, which resolves a
// Motoko project's package set and hands the compiler the flags to find it.
package vessel

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

// Binary is the package manager executable looked up on PATH.
const Binary = "vessel"

// descriptors are the files whose presence marks a vessel project.
var descriptors = []string{"vessel.dhall", "vessel.json"}

var log = commonlog.GetLogger("mo-lsp.vessel")

// Detected reports whether root carries a vessel package descriptor.
func Detected(root string) bool {
	for _, name := range descriptors {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}

	return false
}

// Sources asks vessel for the compiler flags describing the project's
// package set, one token per element. The command runs in root because
// vessel resolves its descriptor from the working directory.
//
// Package resolution is an enrichment: a missing binary, a failing command
// or a descriptor-less workspace all yield nil, and the language server
// starts without package paths.
func Sources(ctx context.Context, root string) []string {
	if !Detected(root) {
		return nil
	}

	bin, err := exec.LookPath(Binary)
	if err != nil {
		log.Debugf("%s not on PATH: %s", Binary, err.Error())
		return nil
	}

	cmd := exec.CommandContext(ctx, bin, "sources")
	cmd.Dir = root

	out, err := cmd.Output()
	if err != nil {
		// First runs may fail while the package cache is cold; the server
		// still works, just without cross-package resolution.
		log.Noticef("%s sources failed, launching without packages: %s", Binary, err.Error())
		return nil
	}

	args := strings.Fields(string(out))
	if len(args) == 0 {
		return nil
	}

	log.Debugf("%s sources contributed %d argument(s)", Binary, len(args))
	return args
}
