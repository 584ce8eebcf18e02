package loop

import (
	"time"

	"github.com/blaubaer/intro-gate/pkg/common"
	"github.com/blaubaer/intro-gate/pkg/player"
)

func NewConfiguration() Configuration {
	return Configuration{
		200 * time.Millisecond,
		100 * time.Millisecond,
		time.Second,
		3 * time.Second,

		NewFallbackConfiguration(),
	}
}

type Configuration struct {
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`
	RestartDelay time.Duration `yaml:"restartDelay,omitempty"`
	FaultBackoff time.Duration `yaml:"faultBackoff,omitempty"`
	ParseTimeout time.Duration `yaml:"parseTimeout,omitempty"`

	Fallback FallbackConfiguration `yaml:"fallback,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("loop.pollInterval", "How often the state of the player is checked while playing.").
		Envar(common.Envar("LOOP_POLL_INTERVAL")).
		DurationVar(&this.PollInterval)
	using.Flag("loop.restartDelay", "How long to wait after stopping the player before the state is evaluated and the media restarted.").
		Envar(common.Envar("LOOP_RESTART_DELAY")).
		DurationVar(&this.RestartDelay)
	using.Flag("loop.faultBackoff", "How long to wait before a failed player call is retried.").
		Envar(common.Envar("LOOP_FAULT_BACKOFF")).
		DurationVar(&this.FaultBackoff)
	using.Flag("loop.parseTimeout", "How long to wait for the duration of the media after it was loaded.").
		Envar(common.Envar("LOOP_PARSE_TIMEOUT")).
		DurationVar(&this.ParseTimeout)

	this.Fallback.SetupConfiguration(using)
}

func (this Configuration) pollInterval() time.Duration {
	if v := this.PollInterval; v > 0 {
		return v
	}
	return 200 * time.Millisecond
}

func (this Configuration) faultBackoff() time.Duration {
	if v := this.FaultBackoff; v > 0 {
		return v
	}
	return time.Second
}

func NewFallbackConfiguration() FallbackConfiguration {
	return FallbackConfiguration{
		false,
		"",
		player.States{player.StateIdle, player.StateStopped},
		false,
		3,
		time.Second,
		time.Second,
	}
}

type FallbackConfiguration struct {
	Disabled   bool   `yaml:"disabled,omitempty"`
	Executable string `yaml:"executable,omitempty"`

	// UnstableStates are the states which, if reported right after the player
	// was stopped, count an attempt as unstable.
	UnstableStates player.States `yaml:"unstableStates,omitempty"`
	// IncludePlayed also counts attempts which reached playing.
	IncludePlayed bool `yaml:"includePlayed,omitempty"`
	// Attempts is the number of consecutive unstable attempts which lead to
	// the fallback.
	Attempts uint `yaml:"attempts,omitempty"`

	StartDelay     time.Duration `yaml:"startDelay,omitempty"`
	TerminateGrace time.Duration `yaml:"terminateGrace,omitempty"`
}

func (this *FallbackConfiguration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("fallback.disabled", "If set the media will never be handed over to a standalone player.").
		Envar(common.Envar("FALLBACK_DISABLED")).
		BoolVar(&this.Disabled)
	using.Flag("fallback.executable", "Standalone player to use. If absent it will be discovered.").
		Envar(common.Envar("FALLBACK_EXECUTABLE")).
		StringVar(&this.Executable)
	using.Flag("fallback.unstableStates", "Player states after stop which mark an attempt as unstable. Possible values: "+player.AllStates.String()).
		Envar(common.Envar("FALLBACK_UNSTABLE_STATES")).
		SetValue(&this.UnstableStates)
	using.Flag("fallback.includePlayed", "Also attempts which reached playing can be unstable.").
		Envar(common.Envar("FALLBACK_INCLUDE_PLAYED")).
		BoolVar(&this.IncludePlayed)
	using.Flag("fallback.attempts", "How many consecutive unstable attempts lead to the standalone player.").
		Envar(common.Envar("FALLBACK_ATTEMPTS")).
		UintVar(&this.Attempts)
	using.Flag("fallback.startDelay", "How long to give the standalone player to come up.").
		Envar(common.Envar("FALLBACK_START_DELAY")).
		DurationVar(&this.StartDelay)
	using.Flag("fallback.terminateGrace", "How long a standalone player has to terminate before it gets killed.").
		Envar(common.Envar("FALLBACK_TERMINATE_GRACE")).
		DurationVar(&this.TerminateGrace)
}

// isUnstable reports if an attempt which ended with state after stop
// counts towards the fallback.
func (this FallbackConfiguration) isUnstable(afterStop player.State, reachedPlaying bool) bool {
	if reachedPlaying && !this.IncludePlayed {
		return false
	}
	return this.UnstableStates.Has(afterStop)
}

func (this FallbackConfiguration) attempts() uint {
	if v := this.Attempts; v > 0 {
		return v
	}
	return 1
}
