package project

import (
	"path/filepath"
	"testing"
)

func TestFindRoot_FromNestedDirectory(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "dfx.json"), `{"canisters": {}}`)

	nested := filepath.Join(root, "src", "backend", "lib")
	mustWrite(t, filepath.Join(nested, "util.mo"), "module {}")

	got, ok := FindRoot(nested)
	if !ok {
		t.Fatal("FindRoot did not find the workspace root")
	}

	if got != root {
		t.Errorf("FindRoot = %q, want %q", got, root)
	}
}

func TestFindRoot_VesselOnlyWorkspace(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "vessel.dhall"), "{ dependencies = [] }")

	got, ok := FindRoot(filepath.Join(root, "src"))
	if ok {
		// src does not exist; FindRoot still resolves through it.
		if got != root {
			t.Errorf("FindRoot = %q, want %q", got, root)
		}

		return
	}

	t.Fatal("FindRoot did not find the vessel workspace root")
}

func TestFindRoot_NearestMarkerWins(t *testing.T) {
	outer := t.TempDir()
	mustWrite(t, filepath.Join(outer, "dfx.json"), `{"canisters": {}}`)

	inner := filepath.Join(outer, "packages", "child")
	mustWrite(t, filepath.Join(inner, "mo-lsp.yaml"), "canister: backend\n")

	got, ok := FindRoot(inner)
	if !ok {
		t.Fatal("FindRoot did not find a root")
	}

	if got != inner {
		t.Errorf("FindRoot = %q, want inner root %q", got, inner)
	}
}

func TestFindRoot_NoMarkers(t *testing.T) {
	// A bare temp directory has no markers anywhere up to the filesystem
	// root in any sane test environment.
	if got, ok := FindRoot(t.TempDir()); ok {
		t.Errorf("FindRoot = %q, want no result", got)
	}
}
