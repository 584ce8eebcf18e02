package process

import (
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
	"golang.org/x/sync/errgroup"
)

var ErrRegistryClosed = errors.New("registry closed")

// Registry collects all Terminable instances of a session. Everybody might
// Register, but only the owner of the session drains it, once.
type Registry struct {
	entries []Terminable
	closed  bool
	mutex   sync.Mutex
}

// Register adds v. After the registry was drained this fails with
// ErrRegistryClosed and the caller stays responsible for v.
func (this *Registry) Register(v Terminable) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.closed {
		return ErrRegistryClosed
	}
	this.entries = append(this.entries, v)
	return nil
}

func (this *Registry) Len() int {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	return len(this.entries)
}

// Drain closes the registry and returns everything registered so far.
func (this *Registry) Drain() []Terminable {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	result := this.entries
	this.entries = nil
	this.closed = true
	return result
}

// TerminateAll drains the registry and terminates all of its entries in
// parallel. A failing entry does not affect the others; all failures are
// returned joined.
func (this *Registry) TerminateAll(grace time.Duration) error {
	entries := this.Drain()
	if len(entries) == 0 {
		return nil
	}

	log.With("count", len(entries)).
		With("grace", grace).
		Info("Terminating external players...")

	var errs []error
	var errsMutex sync.Mutex
	var g errgroup.Group
	for _, entry := range entries {
		g.Go(func() error {
			if err := entry.Terminate(grace); err != nil {
				errsMutex.Lock()
				errs = append(errs, fmt.Errorf("cannot terminate %v: %w", entry, err))
				errsMutex.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
