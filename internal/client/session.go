// Package client owns the language-server process: starting it from a
// launch specification, relaying its standard streams, and stopping it.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/krpeacock/mo-lsp/internal/resolve"
)

var log = commonlog.GetLogger("mo-lsp.client")

// stopGrace is how long a stopped server gets to exit on its own before it
// is killed.
const stopGrace = 3 * time.Second

// Options wires a session to the outside world.
type Options struct {
	// Dir is the working directory of the server process. Entry-point paths
	// in the launch arguments are relative to it.
	Dir string

	// Stdin, when non-nil, is pumped into the server's standard input until
	// it hits EOF. Leave nil to write through Session.Stdin instead; the two
	// must not be combined.
	Stdin io.Reader

	// Stdout receives the server's standard output. Nil discards it.
	Stdout io.Writer
}

// Session is one running language-server process. The protocol speaks for
// itself over the relayed streams; the session never inspects it.
type Session struct {
	// ID correlates the session's log lines.
	ID string

	// Spec is the launch specification the session was started from.
	Spec resolve.LaunchSpec

	cmd   *exec.Cmd
	stdin io.WriteCloser

	// done closes once the process has exited and its output is drained.
	done chan struct{}

	// err holds the process exit error; valid only after done is closed.
	err error

	stopOnce sync.Once
}

// Start launches the language server described by spec.
func Start(ctx context.Context, spec resolve.LaunchSpec, opts Options) (*Session, error) {
	cmd := exec.CommandContext(ctx, spec.Executable, spec.Args...)
	cmd.Dir = opts.Dir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("start language server: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("start language server: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("start language server: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Executable, err)
	}

	s := &Session{
		ID:    uuid.New().String(),
		Spec:  spec,
		cmd:   cmd,
		stdin: stdin,
		done:  make(chan struct{}),
	}

	log.Noticef("session %s: started %s (pid %d)", s.short(), spec, cmd.Process.Pid)

	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}

	eg := &errgroup.Group{}

	eg.Go(func() error {
		_, err := io.Copy(out, stdout)
		return err
	})

	// The server's stderr is not protocol traffic; surface it in our log,
	// tagged so interleaved sessions stay readable.
	eg.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			log.Infof("[%s] %s", s.short(), scanner.Text())
		}

		return scanner.Err()
	})

	if opts.Stdin != nil {
		// Not part of the group: a read on an interactive stdin can stay
		// blocked long after the process is gone.
		go func() {
			if _, err := io.Copy(stdin, opts.Stdin); err != nil {
				log.Debugf("session %s: input relay ended: %s", s.short(), err.Error())
			}

			// EOF from the editor is the server's cue to finish up.
			_ = stdin.Close()
		}()
	}

	go func() {
		// Drain the pipes before reaping the process; Wait closes them.
		if err := eg.Wait(); err != nil {
			log.Debugf("session %s: output relay ended: %s", s.short(), err.Error())
		}

		s.err = cmd.Wait()

		if s.err != nil {
			log.Noticef("session %s: server exited: %s", s.short(), s.err.Error())
		} else {
			log.Infof("session %s: server exited cleanly", s.short())
		}

		close(s.done)
	}()

	return s, nil
}

// Stdin returns the write end of the server's standard input, for callers
// that relay input themselves instead of passing Options.Stdin.
func (s *Session) Stdin() io.WriteCloser {
	return s.stdin
}

// Done returns a channel that closes when the server process has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the server process exits and returns its exit error.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// ExitCode blocks until the process exits and returns its exit code. A
// session that ended on a signal reports -1, as the OS does.
func (s *Session) ExitCode() int {
	err := s.Wait()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

// Stop terminates the server, first politely, then by force after a grace
// period. It is idempotent and returns once the process is gone.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		select {
		case <-s.done:
			return
		default:
		}

		log.Infof("session %s: stopping server", s.short())

		if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
			_ = s.cmd.Process.Kill()
		}

		select {
		case <-s.done:
		case <-time.After(stopGrace):
			log.Noticef("session %s: server ignored the stop signal, killing it", s.short())
			_ = s.cmd.Process.Kill()
			<-s.done
		}
	})

	<-s.done
}

// short is the log-friendly form of the session ID.
func (s *Session) short() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}

	return s.ID
}
