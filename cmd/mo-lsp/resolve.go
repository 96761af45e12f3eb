package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/krpeacock/mo-lsp/internal/resolve"
)

var flagJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the launch command for this workspace without starting it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, _, err := newResolver()
		if err != nil {
			return err
		}

		spec, err := resolver.Resolve(cmd.Context())
		if err != nil {
			if errors.Is(err, resolve.ErrAborted) {
				log.Noticef("%s", err.Error())
				return exitCodeError{code: 1}
			}

			return err
		}

		if flagJSON {
			out, err := json.MarshalIndent(spec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(out))

			return nil
		}

		fmt.Fprintln(os.Stdout, spec)

		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&flagJSON, "json", false, "print the launch specification as JSON")
}
