package voice

import (
	"time"

	"github.com/blaubaer/intro-gate/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		0.05,
		0,
	}
}

type Configuration struct {
	// Threshold is the RMS (of normalized samples) a block has to exceed.
	Threshold float64 `yaml:"threshold,omitempty"`
	// HoldTime is how long the loudness has to stay above Threshold. 0 means
	// the first block above Threshold triggers.
	HoldTime time.Duration `yaml:"holdTime,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("voice.threshold", "RMS loudness (0..1) a block of samples has to exceed to open the gate.").
		Envar(common.Envar("VOICE_THRESHOLD")).
		Float64Var(&this.Threshold)
	using.Flag("voice.holdTime", "How long the loudness has to stay above the threshold. 0 opens the gate with the first loud block.").
		Envar(common.Envar("VOICE_HOLD_TIME")).
		DurationVar(&this.HoldTime)
}
