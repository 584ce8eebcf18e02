package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	log "github.com/echocat/slf4g"
	"github.com/sethvargo/go-retry"

	"github.com/blaubaer/intro-gate/pkg/player"
	"github.com/blaubaer/intro-gate/pkg/process"
	"github.com/blaubaer/intro-gate/pkg/signal"
)

// Standalone is able to play a media outside this process.
type Standalone interface {
	Locate() (string, error)
	Spawn(executable, ref string) (process.Terminable, error)
}

// Runner plays one media item over and over again until StopRequested or
// VoiceDetected was raised. If the Backend behaves unstable the media is
// handed over once to a Standalone player and the Runner ends.
type Runner struct {
	Name  string
	Media string

	Backend    player.Backend
	Standalone Standalone
	Registry   *process.Registry

	StopRequested *signal.Signal
	VoiceDetected *signal.Signal

	Conf *Configuration

	state atomic.Uint32
}

func (this *Runner) State() State {
	return State(this.state.Load())
}

func (this *Runner) setState(v State) {
	this.state.Store(uint32(v))
}

func (this *Runner) signals() signal.Signals {
	return signal.Signals{this.StopRequested, this.VoiceDetected}
}

func (this *Runner) Run(ctx context.Context) {
	this.setState(StateStarting)
	logger := log.With("media", this.Name).
		With("ref", this.Media)

	defer func() {
		if this.State() != StateFallbackExternal {
			this.setState(StateStopped)
		}
		logger.With("state", this.State()).
			Debug("Loop ended.")
	}()

	ctx, cancel := this.signals().Context(ctx)
	defer cancel()

	logger.Info("Loop starting...")

	handle, err := this.newPlayer(ctx, logger)
	if err != nil {
		return
	}
	defer func() {
		if err := handle.Release(); err != nil {
			logger.WithError(err).
				Debug("Cannot release player.")
		}
	}()

	media, err := this.prepare(ctx, handle, logger)
	if err != nil {
		return
	}
	defer func() {
		if err := media.Release(); err != nil {
			logger.WithError(err).
				Debug("Cannot release media.")
		}
	}()

	var unstable uint
	for attempt := 1; ctx.Err() == nil; attempt++ {
		aLogger := logger.With("attempt", attempt)

		if err := this.retry(ctx, aLogger, "start playback", handle.Play); err != nil {
			return
		}
		this.setState(StatePlaying)

		reachedPlaying := this.watch(ctx, handle, aLogger)

		this.stop(ctx, handle, aLogger)
		if ctx.Err() != nil {
			return
		}

		this.setState(StateRestarting)
		if !this.signals().Sleep(ctx, this.Conf.RestartDelay) {
			return
		}

		afterStop, err := handle.State()
		if err != nil {
			aLogger.WithError(err).
				Warn("Cannot get player state after stop.")
			continue
		}

		fConf := this.Conf.Fallback
		if !fConf.isUnstable(afterStop, reachedPlaying) {
			unstable = 0
			aLogger.Debug("Restarting playback...")
			continue
		}
		unstable++
		aLogger.With("state", afterStop).
			With("reachedPlaying", reachedPlaying).
			With("unstable", unstable).
			Info("Playback attempt was unstable.")

		if fConf.Disabled || unstable < fConf.attempts() {
			continue
		}
		if this.fallback(ctx, aLogger) {
			return
		}
		unstable = 0
	}
}

func (this *Runner) newPlayer(ctx context.Context, logger log.Logger) (handle player.Handle, _ error) {
	if err := this.retry(ctx, logger, "create player", func() (err error) {
		handle, err = this.Backend.NewPlayer()
		return err
	}); err != nil {
		return nil, err
	}
	return handle, nil
}

func (this *Runner) prepare(ctx context.Context, handle player.Handle, logger log.Logger) (media player.Media, _ error) {
	if err := this.retry(ctx, logger, "load media", func() (err error) {
		media, err = handle.Load(this.Media)
		return err
	}); err != nil {
		return nil, err
	}
	if err := this.retry(ctx, logger, "attach media", func() error {
		return handle.Attach(media)
	}); err != nil {
		_ = media.Release()
		return nil, err
	}

	deadline := time.Now().Add(this.Conf.ParseTimeout)
	for {
		d, err := media.Duration()
		if err == nil && d > 0 {
			logger.With("duration", d).
				Info("Media loaded.")
			break
		}
		if time.Now().After(deadline) {
			logger.WithError(err).
				Info("Media loaded; duration unknown.")
			break
		}
		if !this.signals().Sleep(ctx, 100*time.Millisecond) {
			break
		}
	}

	return media, nil
}

// watch polls the player until it reports a terminal state or one of the
// signals was raised. It reports if the player reached playing meanwhile.
func (this *Runner) watch(ctx context.Context, handle player.Handle, logger log.Logger) (reachedPlaying bool) {
	ticker := time.NewTicker(this.Conf.pollInterval())
	defer ticker.Stop()

	var previous *player.State
	for {
		select {
		case <-ctx.Done():
			return reachedPlaying
		case <-ticker.C:
		}

		state, err := handle.State()
		if err != nil {
			logger.WithError(err).
				Warn("Cannot get player state.")
			continue
		}
		if previous == nil || *previous != state {
			logger.With("state", state).
				Debug("Player state changed.")
			previous = &state
		}
		if state == player.StatePlaying {
			reachedPlaying = true
		}
		if state.IsTerminal() {
			return reachedPlaying
		}
	}
}

func (this *Runner) fallback(ctx context.Context, logger log.Logger) bool {
	executable, err := this.Standalone.Locate()
	if err != nil {
		logger.WithError(err).
			Warn("Playback is unstable, but no standalone player is available. Keep on restarting.")
		return false
	}

	proc, err := this.Standalone.Spawn(executable, this.Media)
	if err != nil {
		logger.WithError(err).
			Error("Playback is unstable, but the standalone player could not be started. Keep on restarting.")
		return false
	}
	this.setState(StateFallbackExternal)

	logger.With("executable", executable).
		With("process", proc).
		Warn("Playback is unstable. Handed over to standalone player.")

	if err := this.Registry.Register(proc); errors.Is(err, process.ErrRegistryClosed) {
		logger.With("process", proc).
			Info("Session is already shutting down. Terminate standalone player immediately.")
		if err := proc.Terminate(this.Conf.Fallback.TerminateGrace); err != nil {
			logger.WithError(err).
				With("process", proc).
				Error("Cannot terminate standalone player.")
		}
		return true
	}

	this.signals().Sleep(ctx, this.Conf.Fallback.StartDelay)
	return true
}

// stop retries a failing Stop for at most stopAttempts fault backoffs. The
// signals do not abort it.
func (this *Runner) stop(ctx context.Context, handle player.Handle, logger log.Logger) {
	backoff := this.Conf.faultBackoff()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopAttempts*backoff)
	defer cancel()

	if err := this.retry(ctx, logger, "stop player", handle.Stop); err != nil {
		logger.WithError(err).
			Error("Player could not be stopped. Giving up.")
	}
}

const stopAttempts = 5

// retry calls f until it succeeds or ctx is done. Each failure is treated as
// transient and retried after FaultBackoff.
func (this *Runner) retry(ctx context.Context, logger log.Logger, what string, f func() error) error {
	backoff := this.Conf.faultBackoff()
	return retry.Do(ctx, retry.NewConstant(backoff), func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f(); err != nil {
			logger.WithError(err).
				With("retryIn", backoff).
				Warnf("Cannot %s. Retrying...", what)
			return retry.RetryableError(err)
		}
		return nil
	})
}
