package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krpeacock/mo-lsp/internal/project"
)

func stageWorkspace(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	index := `{
		"interfaces": [
			{"alias": "ledger", "id": "ryjl3-tyaaa-aaaaa-aaaba-cai", "path": "build/ledger.did"},
			{"alias": "governance", "id": "rrkah-fqaaa-aaaaa-aaaaq-cai", "path": "build/governance.did"}
		]
	}`

	require.NoError(t, os.MkdirAll(filepath.Join(root, ".dfx", "local", "lsp"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, project.InterfacesPath), []byte(index), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "build"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build", "ledger.did"), []byte("service : {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build", "governance.did"), []byte("service : { vote : () -> () }"), 0o644))

	return root
}

func TestStageInterfaces(t *testing.T) {
	root := stageWorkspace(t)
	dir := filepath.Join(root, ".vscode", "idl")

	args := StageInterfaces(root)

	// Aliases are emitted in sorted order behind the staging directory.
	require.Equal(t, []string{
		"--actor-idl", dir,
		"--actor-alias", "governance", "rrkah-fqaaa-aaaaa-aaaaq-cai",
		"--actor-alias", "ledger", "ryjl3-tyaaa-aaaaa-aaaba-cai",
	}, args)

	staged, err := os.ReadFile(filepath.Join(dir, "ryjl3-tyaaa-aaaaa-aaaba-cai.did"))
	require.NoError(t, err)
	assert.Equal(t, "service : {}", string(staged))
}

func TestStageInterfaces_NoIndex(t *testing.T) {
	assert.Nil(t, StageInterfaces(t.TempDir()))
}

func TestStageInterfaces_MissingArtifact(t *testing.T) {
	root := stageWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(root, "build", "governance.did")))

	// One unreadable artifact degrades the whole step.
	assert.Nil(t, StageInterfaces(root))
}

func TestStageInterfaces_RestagesChangedArtifact(t *testing.T) {
	root := stageWorkspace(t)
	dir := filepath.Join(root, ".vscode", "idl")

	first := StageInterfaces(root)
	require.NotNil(t, first)

	// Rebuild changed one artifact; the next launch must pick it up.
	require.NoError(t, os.WriteFile(filepath.Join(root, "build", "ledger.did"), []byte("service : { transfer : () -> () }"), 0o644))

	second := StageInterfaces(root)
	assert.Equal(t, first, second)

	staged, err := os.ReadFile(filepath.Join(dir, "ryjl3-tyaaa-aaaaa-aaaba-cai.did"))
	require.NoError(t, err)
	assert.Equal(t, "service : { transfer : () -> () }", string(staged))
}
