package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
)

// settingsSection is the editor settings namespace this tool reads.
const settingsSection = "motoko"

// applySettings overlays values from the workspace's editor settings file
// (.vscode/settings.json) onto cfg. The overlay is best-effort: a missing or
// unparsable file, or one whose values have the wrong shape, leaves cfg
// untouched. Editors write these files with their own conventions (including
// comments, which plain JSON rejects), so failures here are expected.
func applySettings(cfg *Config, root string) {
	path := filepath.Join(root, ".vscode", "settings.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Debugf("skipping editor settings: %s", err.Error())
		return
	}

	section := settingsValues(raw)
	if len(section) == 0 {
		return
	}

	if err := mapstructure.Decode(section, cfg); err != nil {
		log.Debugf("skipping editor settings: %s", err.Error())
	}
}

// settingsValues extracts this tool's section from a settings document.
// Editors store settings flat ("motoko.canister": ...) but a nested object
// form also appears in hand-written files; both are accepted, with flat keys
// winning.
func settingsValues(raw map[string]any) map[string]any {
	section := map[string]any{}

	if nested, ok := raw[settingsSection].(map[string]any); ok {
		for k, v := range nested {
			section[k] = v
		}
	}

	for k, v := range raw {
		if name, ok := strings.CutPrefix(k, settingsSection+"."); ok {
			section[name] = v
		}
	}

	return section
}
