package app

import (
	"context"
	"io"
	"os"

	"dario.cat/mergo"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/intro-gate/pkg/audio"
	"github.com/blaubaer/intro-gate/pkg/common"
	"github.com/blaubaer/intro-gate/pkg/console"
	"github.com/blaubaer/intro-gate/pkg/player"
	"github.com/blaubaer/intro-gate/pkg/player/vlc"
	"github.com/blaubaer/intro-gate/pkg/session"
)

func NewApp() *App {
	return &App{
		config: NewConfiguration(),
	}
}

type App struct {
	ConfigurationFile  string
	PrintConfiguration bool

	// Backend is created from libvlc if nil.
	Backend player.Backend
	Stdout  io.Writer

	configFromFlags Configuration
	config          Configuration
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.configFromFlags.SetupConfiguration(using)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded. Flags take precedence over its content.").
		Short('c').
		Envar(common.Envar("CONFIGURATION")).
		StringVar(&this.ConfigurationFile)
	using.Flag("print-configuration", "Prints the effective configuration and exits.").
		BoolVar(&this.PrintConfiguration)
}

func (this *App) Initialize() error {
	if fn := this.ConfigurationFile; fn != "" {
		if err := this.config.loadFromFile(fn); err != nil {
			return err
		}
		log.With("file", fn).
			Debug("Configuration loaded.")
	}
	if err := mergo.Merge(&this.config, this.configFromFlags, mergo.WithOverride); err != nil {
		return err
	}
	return nil
}

// Run plays the intro until a voice was detected or ctx is done and starts
// the application afterward.
func (this *App) Run(ctx context.Context) (rErr error) {
	if this.PrintConfiguration {
		out := this.Stdout
		if out == nil {
			out = os.Stdout
		}
		return this.config.saveTo(out)
	}

	backend := this.Backend
	if backend == nil {
		v := vlc.NewBackend()
		v.ParseTimeout = this.config.Session.Loop.ParseTimeout
		backend = v
	}
	defer func() {
		if err := backend.Close(); err != nil && rErr == nil {
			rErr = err
		}
	}()

	var stack audio.Stack
	defer func() {
		if err := stack.Dispose(); err != nil && rErr == nil {
			rErr = err
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if this.config.Console.Enabled {
		c := &console.Console{
			Interrupt: cancel,
			Conf:      &this.config.Console,
		}
		go func() {
			if err := c.Run(ctx); err != nil {
				log.WithError(err).
					Warn("Operator console not available.")
			}
		}()
	}

	conf := &this.config.Session
	s := &session.Session{
		Backend:    backend,
		Standalone: player.NewStandalone(conf.Loop.Fallback.Executable),
		Monitor:    conf.Monitor.Monitor(&stack),
		Conf:       conf,
	}

	result, err := s.Run(ctx)
	if err != nil {
		return err
	}

	log.With("session", result.Id).
		With("reason", result.Reason).
		With("loops", result.Loops).
		Info("Intro finished.")
	return nil
}
