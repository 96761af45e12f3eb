package client

import (
	"io"
	"sync"
)

// Forwarder relays one input stream to the standard input of whichever
// session is current. It exists for restarts: the editor holds a single
// pipe to this process, and a plain per-session copy loop would keep an
// old blocked read alive and steal the first bytes meant for the new
// session. The forwarder reads the source exactly once and lets the
// destination be swapped underneath it.
type Forwarder struct {
	src io.Reader

	mu      sync.Mutex
	dst     io.WriteCloser
	closed  bool
	started bool
}

// NewForwarder creates a forwarder reading from src. Nothing is read until
// the first Attach.
func NewForwarder(src io.Reader) *Forwarder {
	return &Forwarder{src: src}
}

// Attach points the forwarder at a new destination, replacing any previous
// one. The previous destination is not closed here; session teardown owns
// that. If the source already hit EOF the new destination is closed
// immediately so the session sees the same EOF.
func (f *Forwarder) Attach(dst io.WriteCloser) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		_ = dst.Close()
		return
	}

	f.dst = dst

	if !f.started {
		f.started = true
		go f.run()
	}
}

// run is the single read loop. It holds no lock while blocked in Read, so
// Attach never waits on the source.
func (f *Forwarder) run() {
	buf := make([]byte, 32*1024)

	for {
		n, err := f.src.Read(buf)

		if n > 0 {
			f.mu.Lock()
			dst := f.dst
			f.mu.Unlock()

			if dst != nil {
				if _, werr := dst.Write(buf[:n]); werr != nil {
					// The session died mid-write. Drop the chunk and keep
					// reading; a restarted session picks up from here.
					log.Debugf("input relay: dropping %d byte(s): %s", n, werr.Error())
					f.detach(dst)
				}
			}
		}

		if err != nil {
			if err != io.EOF {
				log.Debugf("input relay: source closed: %s", err.Error())
			}

			f.close()
			return
		}
	}
}

// detach clears dst if it is still the current destination.
func (f *Forwarder) detach(dst io.WriteCloser) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dst == dst {
		f.dst = nil
	}
}

// close marks the source exhausted and propagates EOF to the current
// destination.
func (f *Forwarder) close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true

	if f.dst != nil {
		_ = f.dst.Close()
		f.dst = nil
	}
}
