package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInterfaceIndex = `{
	"interfaces": [
		{"alias": "ledger", "id": "ryjl3-tyaaa-aaaaa-aaaba-cai", "path": ".dfx/local/canisters/ledger/ledger.did"},
		{"alias": "governance", "id": "rrkah-fqaaa-aaaaa-aaaaq-cai", "path": ".dfx/local/canisters/governance/governance.did"}
	]
}`

func TestLoadInterfaces(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, InterfacesPath), testInterfaceIndex)

	im := LoadInterfaces(root)
	require.NotNil(t, im)
	require.Len(t, im.Interfaces, 2)

	assert.Equal(t, "ledger", im.Interfaces[0].Alias)
	assert.Equal(t, "ryjl3-tyaaa-aaaaa-aaaba-cai", im.Interfaces[0].ID)
	assert.Equal(t, ".dfx/local/canisters/ledger/ledger.did", im.Interfaces[0].Path)
}

func TestLoadInterfaces_Missing(t *testing.T) {
	root := t.TempDir()

	// No build has run, so the index does not exist.
	assert.Nil(t, LoadInterfaces(root))
}

func TestLoadInterfaces_Malformed(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, InterfacesPath), `{"interfaces": [`)

	assert.Nil(t, LoadInterfaces(root))
}
