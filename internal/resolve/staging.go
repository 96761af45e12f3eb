package resolve

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/krpeacock/mo-lsp/internal/project"
	"github.com/zeebo/xxh3"
)

// stagingDir is where interface artifacts are copied for the server,
// relative to the workspace root.
var stagingDir = filepath.Join(".vscode", "idl")

// StageInterfaces copies the canister interfaces recorded by a previous
// build into the workspace's staging directory and returns the arguments
// pointing the language server at them: the staging directory itself plus
// one alias/identifier pair per interface.
//
// Staging is all-or-nothing best-effort. No build yet is the common case and
// returns nil, and so does any failure along the way; the server must never
// see a half-staged directory.
func StageInterfaces(root string) []string {
	im := project.LoadInterfaces(root)
	if im == nil || len(im.Interfaces) == 0 {
		return nil
	}

	dir := filepath.Join(root, stagingDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Noticef("interface staging unavailable: %s", err.Error())
		return nil
	}

	entries := append([]project.Interface(nil), im.Interfaces...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Alias < entries[j].Alias })

	args := []string{"--actor-idl", dir}

	for _, entry := range entries {
		if err := stageFile(root, dir, entry); err != nil {
			log.Noticef("interface staging failed, launching without actor interfaces: %s", err.Error())
			return nil
		}

		args = append(args, "--actor-alias", entry.Alias, entry.ID)
	}

	log.Debugf("staged %d interface(s) into %s", len(entries), dir)
	return args
}

// stageFile copies one interface artifact into the staging directory, named
// by identifier. Unchanged artifacts are left alone so repeated launches
// don't churn file modification times.
func stageFile(root, dir string, entry project.Interface) error {
	src := entry.Path
	if !filepath.IsAbs(src) {
		src = filepath.Join(root, src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	dst := filepath.Join(dir, entry.ID+".did")
	if existing, err := os.ReadFile(dst); err == nil && xxh3.Hash(existing) == xxh3.Hash(data) {
		return nil
	}

	return os.WriteFile(dst, data, 0o644)
}
