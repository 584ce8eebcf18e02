package signal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Signal is a one-shot broadcast flag. Once set it stays set; it can never be
// cleared. The zero value is not usable, use New.
type Signal struct {
	name string
	set  atomic.Bool
	once sync.Once
	done chan struct{}
}

func New(name string) *Signal {
	return &Signal{
		name: name,
		done: make(chan struct{}),
	}
}

// Set raises the signal. It reports true only for the call which actually
// changed the state, every further call is a no-op returning false.
func (this *Signal) Set() (changed bool) {
	this.once.Do(func() {
		this.set.Store(true)
		close(this.done)
		changed = true
	})
	return changed
}

func (this *Signal) IsSet() bool {
	return this.set.Load()
}

// Done returns a channel which is closed as soon as the signal is set.
func (this *Signal) Done() <-chan struct{} {
	return this.done
}

func (this *Signal) String() string {
	return this.name
}

// Signals is a set of signals observed together. It counts as raised as soon
// as one of its members is raised.
type Signals []*Signal

func (this Signals) AnySet() bool {
	for _, s := range this {
		if s.IsSet() {
			return true
		}
	}
	return false
}

// FirstSet returns the first member which is set or nil.
func (this Signals) FirstSet() *Signal {
	for _, s := range this {
		if s.IsSet() {
			return s
		}
	}
	return nil
}

// Context returns a derived context of parent which is canceled as soon as one
// of the signals is raised. The returned cancel func releases the watchers.
func (this Signals) Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	for _, s := range this {
		go func(s *Signal) {
			select {
			case <-s.Done():
				cancel()
			case <-ctx.Done():
			}
		}(s)
	}
	return ctx, cancel
}

// Sleep waits for the given duration. It returns false if one of the signals
// was raised before the duration elapsed.
func (this Signals) Sleep(ctx context.Context, d time.Duration) bool {
	if this.AnySet() {
		return false
	}
	if d <= 0 {
		return true
	}
	sCtx, cancel := this.Context(ctx)
	defer cancel()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-sCtx.Done():
		return false
	case <-timer.C:
		return !this.AnySet()
	}
}
