package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_EmptyWorkspace(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Config{}, cfg)
}

func TestLoad_EditorSettingsFlatKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".vscode", "settings.json"), `{
		"editor.tabSize": 2,
		"motoko.canister": "backend",
		"motoko.standaloneBinary": "/opt/motoko/mo-ide",
		"motoko.standaloneArguments": "--debug --canister-ids ids.json"
	}`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "backend", cfg.Canister)
	assert.Equal(t, "/opt/motoko/mo-ide", cfg.StandaloneBinary)
	assert.Equal(t, []string{"--debug", "--canister-ids", "ids.json"}, cfg.ExtraArgs())
}

func TestLoad_EditorSettingsNestedSection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".vscode", "settings.json"), `{
		"motoko": {"dfx": "/usr/local/bin/dfx", "ignore": ["test/**"]}
	}`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/dfx", cfg.Dfx)
	assert.Equal(t, []string{"test/**"}, cfg.Ignore)
}

func TestLoad_EditorSettingsMalformed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".vscode", "settings.json"), `{"motoko.canister": `)

	// Broken editor settings are not this tool's problem; they are skipped.
	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoad_WorkspaceFileOverridesSettings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".vscode", "settings.json"), `{"motoko.canister": "frontend"}`)
	writeFile(t, filepath.Join(root, FileName), "canister: backend\nstandalone-arguments: --debug\n")

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "backend", cfg.Canister)
	assert.Equal(t, "--debug", cfg.StandaloneArguments)
}

func TestLoad_WorkspaceFileUnknownKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "cannister: backend\n")

	// The workspace file is parsed strictly so typos surface instead of
	// silently configuring nothing.
	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)
}

func TestApplyFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dfx", "", "")
	fs.String("canister", "", "")
	fs.String("binary", "", "")
	fs.String("args", "", "")

	require.NoError(t, fs.Parse([]string{"--canister", "ledger", "--binary", "mo-ide"}))

	cfg := Config{Canister: "backend", Dfx: "/usr/bin/dfx"}
	cfg.ApplyFlags(fs)

	assert.Equal(t, "ledger", cfg.Canister, "set flag overrides config")
	assert.Equal(t, "mo-ide", cfg.StandaloneBinary)
	assert.Equal(t, "/usr/bin/dfx", cfg.Dfx, "unset flag leaves config alone")
}

func TestExtraArgs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "--debug", []string{"--debug"}},
		{"multiple", "--a --b", []string{"--a", "--b"}},
		{"extra whitespace", "  --a \t --b  ", []string{"--a", "--b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{StandaloneArguments: tt.in}
			assert.Equal(t, tt.want, cfg.ExtraArgs())
		})
	}
}
