package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krpeacock/mo-lsp/internal/client"
	"github.com/krpeacock/mo-lsp/internal/resolve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Resolve the workspace's language server and bridge it to stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		resolver, root, err := newResolver()
		if err != nil {
			return err
		}

		ctrl := client.NewController()
		defer ctrl.Stop()

		// The forwarder outlives individual sessions so that a restart
		// never loses editor input buffered between servers.
		forwarder := client.NewForwarder(os.Stdin)

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(signals)

		for {
			spec, err := resolver.Resolve(ctx)
			if err != nil {
				if errors.Is(err, resolve.ErrAborted) {
					log.Noticef("%s", err.Error())
					return nil
				}

				return err
			}

			sess, err := ctrl.Start(ctx, *spec, client.Options{
				Dir:    root,
				Stdout: os.Stdout,
			})
			if err != nil {
				return err
			}
			forwarder.Attach(sess.Stdin())

			select {
			case <-sess.Done():
				if code := sess.ExitCode(); code != 0 {
					log.Errorf("language server exited with code %d", code)
					if code < 0 {
						code = 1
					}
					return exitCodeError{code: code}
				}

				return nil

			case sig := <-signals:
				if sig == syscall.SIGHUP {
					log.Noticef("received %s, restarting the language server", sig)
					ctrl.Stop()
					continue
				}

				log.Noticef("received %s, shutting down", sig)
				return nil
			}
		}
	},
}
