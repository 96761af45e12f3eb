package resolve

import (
	"context"
	"fmt"
)

// Noninteractive is the Prompter used when no terminal is available to ask
// on, or when the user opted out of prompts. Questions with an obvious
// answer resolve themselves; anything genuinely ambiguous aborts the launch
// the same way a dismissed prompt would.
type Noninteractive struct{}

// SelectCanister always aborts: choosing among several canisters is exactly
// the decision that cannot be made for the user. Configuring a default
// canister avoids the question entirely.
func (Noninteractive) SelectCanister(ctx context.Context, names []string) (string, error) {
	return "", fmt.Errorf("%w: %d canisters to choose from and no terminal to ask on (configure a default canister)", ErrAborted, len(names))
}

// EntryPoint accepts the default when one exists and aborts otherwise.
func (Noninteractive) EntryPoint(ctx context.Context, def string) (string, error) {
	if def == "" {
		return "", fmt.Errorf("%w: no entry-point file to launch on", ErrAborted)
	}

	return def, nil
}
