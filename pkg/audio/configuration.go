package audio

import (
	"github.com/blaubaer/intro-gate/pkg/common"
)

const SourceDevice = "device"

func NewConfiguration() Configuration {
	return Configuration{
		SourceDevice,
		44100,
		1024,
	}
}

type Configuration struct {
	// Source is either SourceDevice or the path of a wave file.
	Source     string  `yaml:"source,omitempty"`
	SampleRate float64 `yaml:"sampleRate,omitempty"`
	BlockSize  int     `yaml:"blockSize,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("monitor.source", "Where the samples come from: '"+SourceDevice+"' for the default input device or the path of a wave file.").
		Envar(common.Envar("MONITOR_SOURCE")).
		StringVar(&this.Source)
	using.Flag("monitor.sampleRate", "Sample rate the input device is opened with.").
		Envar(common.Envar("MONITOR_SAMPLE_RATE")).
		Float64Var(&this.SampleRate)
	using.Flag("monitor.blockSize", "Number of frames per block the loudness is evaluated on.").
		Envar(common.Envar("MONITOR_BLOCK_SIZE")).
		IntVar(&this.BlockSize)
}

func (this Configuration) StreamConfiguration() StreamConfiguration {
	return StreamConfiguration{
		Channels:   1,
		SampleRate: this.SampleRate,
		BlockSize:  this.BlockSize,
	}
}

// Monitor returns the Monitor this configuration points to. stack is used
// for SourceDevice.
func (this Configuration) Monitor(stack *Stack) Monitor {
	if this.Source == "" || this.Source == SourceDevice {
		return stack
	}
	return &WaveFile{Path: this.Source}
}
