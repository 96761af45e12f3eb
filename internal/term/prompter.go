// Package term implements the interactive prompts on the controlling
// terminal. The process's stdin and stdout belong to the editor (they carry
// the server protocol), so prompts read from the terminal device directly
// and render on stderr.
package term

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/krpeacock/mo-lsp/internal/resolve"
)

// Interactive reports whether a human is around to answer prompts. Stdout
// being a pipe is the normal editor case, so stderr is the tell.
func Interactive() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Prompter answers resolution questions with terminal prompts. When the
// terminal device cannot be opened it degrades to the non-interactive
// behavior instead of failing the launch outright.
type Prompter struct{}

// SelectCanister presents a filterable picker over the canister names.
func (Prompter) SelectCanister(ctx context.Context, names []string) (string, error) {
	tty, err := openTTY()
	if err != nil {
		return resolve.Noninteractive{}.SelectCanister(ctx, names)
	}
	defer tty.Close()

	out, err := runProgram(ctx, tty, newPicker("Select a canister", names))
	if err != nil {
		return "", err
	}

	final := out.(pickerModel)
	if final.aborted || final.choice == "" {
		return "", resolve.ErrAborted
	}

	return final.choice, nil
}

// EntryPoint asks for an entry-point path, pre-filled with def.
func (Prompter) EntryPoint(ctx context.Context, def string) (string, error) {
	tty, err := openTTY()
	if err != nil {
		return resolve.Noninteractive{}.EntryPoint(ctx, def)
	}
	defer tty.Close()

	out, err := runProgram(ctx, tty, newInput("Motoko entry point", def))
	if err != nil {
		return "", err
	}

	final := out.(inputModel)
	if final.aborted || final.value == "" {
		return "", resolve.ErrAborted
	}

	return final.value, nil
}

func openTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

func runProgram(ctx context.Context, tty *os.File, m tea.Model) (tea.Model, error) {
	out, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(tty),
		tea.WithOutput(os.Stderr),
	).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}

	return out, nil
}
