package session

import (
	"time"

	"github.com/blaubaer/intro-gate/pkg/audio"
	"github.com/blaubaer/intro-gate/pkg/common"
	"github.com/blaubaer/intro-gate/pkg/loop"
	"github.com/blaubaer/intro-gate/pkg/voice"
)

func NewConfiguration() Configuration {
	return Configuration{
		"",
		MediaItems{
			{"video", "movies/sandstorm.mp4"},
			{"audio", "sounds/sandstorm.mp3"},
		},
		time.Second,

		loop.NewConfiguration(),
		voice.NewConfiguration(),
		audio.NewConfiguration(),
		DownstreamConfiguration{},
	}
}

type Configuration struct {
	// Base is the directory relative media paths are resolved against. Empty
	// means the working directory.
	Base  string     `yaml:"base,omitempty"`
	Media MediaItems `yaml:"media,omitempty"`

	// ShutdownTimeout is how long the session waits for its loops to end
	// before they are abandoned.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`

	Loop       loop.Configuration      `yaml:"loop,omitempty"`
	Voice      voice.Configuration     `yaml:"voice,omitempty"`
	Monitor    audio.Configuration     `yaml:"monitor,omitempty"`
	Downstream DownstreamConfiguration `yaml:"downstream,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("base", "Directory relative media paths are resolved against.").
		Envar(common.Envar("BASE")).
		StringVar(&this.Base)
	using.Flag("media", "Media to loop while waiting for a voice, as name=path. Can be provided multiple times.").
		Envar(common.Envar("MEDIA")).
		SetValue(&this.Media)
	using.Flag("shutdownTimeout", "How long to wait for all loops to end before they are abandoned.").
		Envar(common.Envar("SHUTDOWN_TIMEOUT")).
		DurationVar(&this.ShutdownTimeout)

	this.Loop.SetupConfiguration(using)
	this.Voice.SetupConfiguration(using)
	this.Monitor.SetupConfiguration(using)
	this.Downstream.SetupConfiguration(using)
}
