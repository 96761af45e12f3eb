package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/krpeacock/mo-lsp/internal/config"
	"github.com/krpeacock/mo-lsp/internal/project"
	"github.com/krpeacock/mo-lsp/internal/resolve"
	"github.com/krpeacock/mo-lsp/internal/term"
)

const version = "0.1.0"

var log = commonlog.GetLogger("mo-lsp")

var (
	flagWorkspace      string
	flagFile           string
	flagCanister       string
	flagDfx            string
	flagBinary         string
	flagArgs           string
	flagLogLevel       string
	flagLogFile        string
	flagNonInteractive bool
)

// exitCodeError carries a process exit code through the command error path.
// Execute turns it into os.Exit without printing anything; whatever caused
// the exit has already been reported.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

var rootCmd = &cobra.Command{
	Use:   "mo-lsp",
	Short: "Launch the Motoko language server for a workspace",
	Long: `mo-lsp inspects a workspace for Motoko build configuration, resolves
which language server to run and how, and bridges the server to the
editor over stdio.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var path *string
		if flagLogFile != "" {
			path = &flagLogFile
		}
		commonlog.Configure(verbosity(flagLogLevel), path)
	},
}

// verbosity maps the log-level flag onto commonlog's verbosity scale.
func verbosity(level string) int {
	switch level {
	case "debug":
		return 2
	case "info":
		return 1
	default:
		return 0
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagWorkspace, "workspace", "w", "", "workspace root (default: discovered from the working directory)")
	pf.StringVar(&flagFile, "file", "", "entry-point source file for workspaces without a project manifest")
	pf.StringVar(&flagCanister, "canister", "", "canister to serve, overriding any configured default")
	pf.StringVar(&flagDfx, "dfx", "", "dfx executable to launch instead of the one on PATH")
	pf.StringVar(&flagBinary, "binary", "", "standalone language-server binary (forces the standalone route)")
	pf.StringVar(&flagArgs, "args", "", "extra arguments for the language server, split on whitespace")
	pf.StringVar(&flagLogLevel, "log-level", "error", "log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "log file path (default: stderr)")
	pf.BoolVar(&flagNonInteractive, "non-interactive", false, "never prompt, fail ambiguous launches instead")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
}

// workspaceRoot returns the workspace to operate on: the --workspace flag
// when given, otherwise the nearest ancestor of the working directory with
// a project marker, otherwise the working directory itself.
func workspaceRoot() (string, error) {
	if flagWorkspace != "" {
		return filepath.Abs(flagWorkspace)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	if root, ok := project.FindRoot(cwd); ok {
		return root, nil
	}

	return cwd, nil
}

// newResolver assembles the resolver for one invocation: workspace root,
// layered configuration, and a prompter matching the terminal situation.
func newResolver() (*resolve.Resolver, string, error) {
	root, err := workspaceRoot()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, "", err
	}
	cfg.ApplyFlags(rootCmd.PersistentFlags())

	var prompter resolve.Prompter = resolve.Noninteractive{}
	if !flagNonInteractive && term.Interactive() {
		prompter = term.Prompter{}
	}

	active := flagFile
	if active != "" {
		if abs, err := filepath.Abs(active); err == nil {
			active = abs
		}
	}

	return &resolve.Resolver{
		Workspace:  root,
		Config:     cfg,
		Prompter:   prompter,
		ActiveFile: active,
	}, root, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}

		fmt.Fprintln(os.Stderr, "mo-lsp:", err)
		os.Exit(1)
	}
}
