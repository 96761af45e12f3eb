// Package project inspects a workspace for Motoko build configuration.
package project

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
	"github.com/tliron/commonlog"
)

// ManifestName is the project manifest file expected at the workspace root.
const ManifestName = "dfx.json"

var log = commonlog.GetLogger("mo-lsp.project")

// Canister is one buildable unit declared in the project manifest.
type Canister struct {
	// Main is the canister's entry-point source file, relative to the
	// workspace root. Canisters without a main (e.g. non-Motoko ones in the
	// extended manifest format) are parsed but never offered for selection.
	Main string `json:"main"`

	// Type identifies the canister kind in the extended manifest format
	// ("motoko", "rust", "assets", ...). Empty in the simple format.
	Type string `json:"type,omitempty"`

	// Candid is the generated interface artifact path, when the extended
	// format declares one.
	Candid string `json:"candid,omitempty"`
}

// Manifest is a parsed dfx.json.
type Manifest struct {
	Canisters map[string]Canister `json:"canisters"`
}

// Detect reads and parses the manifest at root.
//
// A missing file, an unreadable file and malformed JSON all yield nil: the
// caller's fallback is identical in each case, so the distinction is only
// surfaced in the debug log. Parsing is all-or-nothing; there is no partial
// manifest.
func Detect(root string) *Manifest {
	path := filepath.Join(root, ManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("no project manifest: %s", err.Error())
		return nil
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		// A typo'd dfx.json lands here; it is deliberately treated the same
		// as an absent one, with the parse error kept visible at debug level.
		log.Debugf("ignoring unparsable %s: %s", ManifestName, err.Error())
		return nil
	}

	log.Debugf("detected %s with %d canister(s)", ManifestName, len(m.Canisters))
	return &m
}

// Selectable returns the names of canisters that can act as a language-server
// target, sorted for stable presentation. A canister qualifies when it has a
// main entry point.
func (m *Manifest) Selectable() []string {
	names := make([]string, 0, len(m.Canisters))
	for name, c := range m.Canisters {
		if c.Main == "" {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Canister looks up a canister descriptor by name.
func (m *Manifest) Canister(name string) (Canister, bool) {
	c, ok := m.Canisters[name]
	return c, ok
}
