// Package resolve turns a workspace's build configuration into the concrete
// command line of its language server.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/krpeacock/mo-lsp/internal/config"
	"github.com/krpeacock/mo-lsp/internal/project"
	"github.com/krpeacock/mo-lsp/internal/vessel"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("mo-lsp.resolve")

var (
	// ErrAborted reports that the user dismissed a prompt. The launch attempt
	// ends there; nothing is started and nothing is shown.
	ErrAborted = errors.New("launch aborted")

	// ErrNoExecutable reports that the language-server executable could not
	// be found. Unlike a missing manifest this is surfaced to the user, since
	// no fallback can make a launch work without a binary.
	ErrNoExecutable = errors.New("executable not found")
)

// vesselTimeout bounds package-source discovery. A cold vessel cache
// downloads the package set, so the bound is generous.
const vesselTimeout = 60 * time.Second

// LaunchSpec is the resolved command line for the language server.
type LaunchSpec struct {
	Executable string   `json:"executable"`
	Args       []string `json:"arguments"`
}

func (s LaunchSpec) String() string {
	return strings.Join(append([]string{s.Executable}, s.Args...), " ")
}

// Prompter supplies the two interactive decisions resolution can need. Both
// methods block until the user answers or dismisses; dismissal is reported
// as ErrAborted.
type Prompter interface {
	// SelectCanister asks the user to pick one of the named canisters.
	SelectCanister(ctx context.Context, names []string) (string, error)

	// EntryPoint asks the user for an entry-point source file, offering def
	// as the pre-filled answer when it is non-empty.
	EntryPoint(ctx context.Context, def string) (string, error)
}

// Resolver produces a LaunchSpec for one workspace. It holds no state across
// invocations: every Resolve call re-reads the manifest, so edits to the
// project configuration take effect on the next launch.
type Resolver struct {
	// Workspace is the absolute workspace root.
	Workspace string

	// Config is the merged launcher configuration.
	Config config.Config

	// Prompter answers interactive questions during resolution.
	Prompter Prompter

	// ActiveFile optionally names the source file the editor has open,
	// used as the default entry point when no manifest is found.
	ActiveFile string
}

// Resolve inspects the workspace and produces the launch specification.
//
// With a usable project manifest, resolution picks exactly one canister and
// routes the launch through dfx, unless the user configured a standalone
// binary. Without one, the workspace is treated as a bag of sources and the
// standalone server is pointed at a single entry-point file.
func (r *Resolver) Resolve(ctx context.Context) (*LaunchSpec, error) {
	if m := project.Detect(r.Workspace); m != nil {
		if names := m.Selectable(); len(names) > 0 {
			return r.resolveProject(ctx, m, names)
		}

		log.Noticef("%s declares no canisters with a main entry, treating workspace as standalone", project.ManifestName)
	}

	return r.resolveStandalone(ctx)
}

// resolveProject handles the manifest-present path.
func (r *Resolver) resolveProject(ctx context.Context, m *project.Manifest, names []string) (*LaunchSpec, error) {
	name, err := r.selectCanister(ctx, m, names)
	if err != nil {
		return nil, err
	}

	if r.Config.StandaloneBinary == "" {
		return r.dfxSpec(name)
	}

	// A configured standalone binary takes over even inside a dfx project;
	// it gets the canister's entry point instead of the canister name.
	canister, _ := m.Canister(name)
	if canister.Main == "" {
		return nil, fmt.Errorf("canister %q has no main entry point", name)
	}

	return r.standaloneSpec(ctx, canister.Main)
}

// selectCanister picks exactly one canister: the configured default if set,
// the sole candidate if only one exists, otherwise the user's choice. At
// most one prompt is issued per resolution.
func (r *Resolver) selectCanister(ctx context.Context, m *project.Manifest, names []string) (string, error) {
	if name := r.Config.Canister; name != "" {
		if _, ok := m.Canister(name); !ok {
			return "", fmt.Errorf("configured canister %q is not declared in %s", name, project.ManifestName)
		}

		return name, nil
	}

	if len(names) == 1 {
		log.Debugf("selecting sole canister %q", names[0])
		return names[0], nil
	}

	name, err := r.Prompter.SelectCanister(ctx, names)
	if err != nil {
		return "", err
	}

	return name, nil
}

// resolveStandalone handles the manifest-absent path: confirm an entry point
// with the user, then launch the standalone server on it.
func (r *Resolver) resolveStandalone(ctx context.Context) (*LaunchSpec, error) {
	def := r.ActiveFile
	if def == "" {
		if candidates := project.ScanEntryPoints(r.Workspace, r.Config.Ignore); len(candidates) > 0 {
			def = candidates[0]
		}
	}

	entry, err := r.Prompter.EntryPoint(ctx, def)
	if err != nil {
		return nil, err
	}

	if entry == "" {
		return nil, ErrAborted
	}

	return r.standaloneSpec(ctx, entry)
}

// dfxSpec builds the launch through dfx's built-in language service.
func (r *Resolver) dfxSpec(canister string) (*LaunchSpec, error) {
	exe := r.Config.Dfx
	if exe == "" {
		path, err := exec.LookPath("dfx")
		if err != nil {
			return nil, fmt.Errorf("%w: dfx is not installed or not on PATH", ErrNoExecutable)
		}

		exe = path
	}

	args := append([]string{"_language-service", canister}, r.Config.ExtraArgs()...)

	return &LaunchSpec{Executable: exe, Args: args}, nil
}

// standaloneSpec builds the launch of a standalone language server on one
// entry-point file, enriched with whatever package sources and staged
// interfaces the workspace offers.
func (r *Resolver) standaloneSpec(ctx context.Context, main string) (*LaunchSpec, error) {
	name := r.Config.StandaloneBinary
	if name == "" {
		name = config.DefaultStandaloneBinary
	}

	exe, err := lookupBinary(name)
	if err != nil {
		return nil, err
	}

	args := []string{"--canister-main", main}
	args = append(args, r.enrichArgs(ctx)...)
	args = append(args, r.Config.ExtraArgs()...)

	return &LaunchSpec{Executable: exe, Args: args}, nil
}

// enrichArgs collects the best-effort argument contributions. Each source
// guards its own preconditions and degrades to nothing on failure, so the
// launch itself never depends on them.
func (r *Resolver) enrichArgs(ctx context.Context) []string {
	vctx, cancel := context.WithTimeout(ctx, vesselTimeout)
	defer cancel()

	args := vessel.Sources(vctx, r.Workspace)

	return append(args, StageInterfaces(r.Workspace)...)
}

// lookupBinary resolves a configured executable name. Names carrying a path
// separator are taken as explicit paths; bare names go through the PATH
// lookup. Either way a missing executable is a hard, user-visible error.
func lookupBinary(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNoExecutable, name)
		}

		return name, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not installed or not on PATH", ErrNoExecutable, name)
	}

	return path, nil
}
