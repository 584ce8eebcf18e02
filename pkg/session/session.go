package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/echocat/slf4g"
	"github.com/google/uuid"

	"github.com/blaubaer/intro-gate/pkg/audio"
	"github.com/blaubaer/intro-gate/pkg/loop"
	"github.com/blaubaer/intro-gate/pkg/player"
	"github.com/blaubaer/intro-gate/pkg/process"
	"github.com/blaubaer/intro-gate/pkg/signal"
	"github.com/blaubaer/intro-gate/pkg/voice"
)

var ErrAlreadyRan = errors.New("session already ran")

// Reason why a session ended.
type Reason string

const (
	ReasonVoice     = Reason("voice")
	ReasonInterrupt = Reason("interrupt")
)

// Session loops all media while waiting for a voice. Once a voice was
// detected (or the session was interrupted) everything is torn down and
// Downstream is invoked.
type Session struct {
	Backend    player.Backend
	Standalone loop.Standalone
	Monitor    audio.Monitor
	Downstream Downstream

	Conf *Configuration

	ran           atomic.Bool
	stopRequested *signal.Signal
	voiceDetected *signal.Signal
}

type Result struct {
	Id     uuid.UUID
	Reason Reason
	// Loops contains the final state of every loop.
	Loops map[string]loop.State
	// Abandoned are the units which did not end within the shutdown timeout.
	Abandoned []string
}

// Run blocks until a voice was detected or ctx is done. ctx is the operator
// interrupt. A session can only run once.
func (this *Session) Run(ctx context.Context) (*Result, error) {
	if !this.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRan
	}

	conf := this.Conf
	result := &Result{
		Id:    uuid.New(),
		Loops: make(map[string]loop.State, len(conf.Media)),
	}
	logger := log.With("session", result.Id)

	media := conf.Media.Resolve(conf.Base)
	if err := media.Check(); err != nil {
		return nil, err
	}
	if len(media) == 0 {
		return nil, fmt.Errorf("%w: nothing configured", ErrMissingMedia)
	}

	logger.With("backend", this.Backend.Version()).
		With("media", media).
		Info("Session starting...")

	this.stopRequested = signal.New("stopRequested")
	this.voiceDetected = signal.New("voiceDetected")
	var registry process.Registry
	var units unitGroup

	runners := make([]*loop.Runner, len(media))
	for i, m := range media {
		runner := &loop.Runner{
			Name:          m.Name,
			Media:         m.Path,
			Backend:       this.Backend,
			Standalone:    this.Standalone,
			Registry:      &registry,
			StopRequested: this.stopRequested,
			VoiceDetected: this.voiceDetected,
			Conf:          &conf.Loop,
		}
		runners[i] = runner
		units.Go("loop:"+m.Name, runner.Run)
	}

	detector := &voice.Detector{
		Monitor:       this.Monitor,
		Stream:        conf.Monitor.StreamConfiguration(),
		VoiceDetected: this.voiceDetected,
		StopRequested: this.stopRequested,
		Conf:          &conf.Voice,
	}
	units.Go("voice", func(ctx context.Context) {
		detector.Watch(ctx)
	})

	select {
	case <-this.voiceDetected.Done():
		result.Reason = ReasonVoice
	case <-ctx.Done():
		result.Reason = ReasonInterrupt
	}
	logger.With("reason", result.Reason).
		Info("Gate opened. Tearing down...")

	this.stopRequested.Set()

	if err := registry.TerminateAll(conf.Loop.Fallback.TerminateGrace); err != nil {
		logger.WithError(err).
			Error("Not all external players could be terminated.")
	}

	result.Abandoned = units.Wait(conf.ShutdownTimeout)
	if len(result.Abandoned) > 0 {
		logger.With("units", result.Abandoned).
			With("timeout", conf.ShutdownTimeout).
			Warn("Units did not end in time; abandoned.")
	}
	for _, r := range runners {
		result.Loops[r.Name] = r.State()
	}

	logger.With("loops", result.Loops).
		Debug("Teardown done.")

	downstream := this.Downstream
	if downstream == nil {
		downstream = conf.Downstream.Downstream()
	}
	if err := downstream(); err != nil {
		return result, err
	}
	return result, nil
}

// unitGroup runs named units and waits a bounded time for them to end.
type unitGroup struct {
	running map[string]struct{}
	wg      sync.WaitGroup
	mutex   sync.Mutex
}

func (this *unitGroup) Go(name string, f func(context.Context)) {
	this.mutex.Lock()
	if this.running == nil {
		this.running = make(map[string]struct{})
	}
	this.running[name] = struct{}{}
	this.mutex.Unlock()

	this.wg.Add(1)
	go func() {
		defer this.wg.Done()
		defer func() {
			this.mutex.Lock()
			delete(this.running, name)
			this.mutex.Unlock()
		}()
		// Units are only stopped through the session signals.
		f(context.Background())
	}()
}

// Wait returns the names of the units still running after timeout.
func (this *unitGroup) Wait(timeout time.Duration) []string {
	done := make(chan struct{})
	go func() {
		this.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
	}

	this.mutex.Lock()
	defer this.mutex.Unlock()
	var result []string
	for name := range this.running {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
