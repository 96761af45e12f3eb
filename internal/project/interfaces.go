package project

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// InterfacesPath is where a local dfx build leaves the language-service
// interface index, relative to the workspace root.
var InterfacesPath = filepath.Join(".dfx", "local", "lsp", "interfaces.json")

// Interface describes one deployed canister interface from a prior build.
type Interface struct {
	// Alias is the name the source code imports the canister under.
	Alias string `json:"alias"`

	// ID is the textual principal of the deployed canister.
	ID string `json:"id"`

	// Path locates the Candid interface file, relative to the workspace root
	// unless absolute.
	Path string `json:"path"`
}

// InterfaceManifest is the parsed interface index of a previously built
// project.
type InterfaceManifest struct {
	Interfaces []Interface `json:"interfaces"`
}

// LoadInterfaces reads the interface index under root. The index only exists
// after a successful local build, so a missing or malformed file is the
// common case and yields nil.
func LoadInterfaces(root string) *InterfaceManifest {
	path := filepath.Join(root, InterfacesPath)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("no interface index: %s", err.Error())
		return nil
	}

	var im InterfaceManifest
	if err := json.Unmarshal(data, &im); err != nil {
		log.Debugf("ignoring unparsable interface index: %s", err.Error())
		return nil
	}

	return &im
}
