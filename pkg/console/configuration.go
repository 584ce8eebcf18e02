package console

import (
	"github.com/blaubaer/intro-gate/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		false,
		"intro-gate> ",
	}
}

type Configuration struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Prompt  string `yaml:"prompt,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("console.enabled", "If set the operator can skip the intro by typing 'skip' or 'q' in the terminal.").
		Envar(common.Envar("CONSOLE_ENABLED")).
		BoolVar(&this.Enabled)
	using.Flag("console.prompt", "Prompt of the operator console.").
		Envar(common.Envar("CONSOLE_PROMPT")).
		StringVar(&this.Prompt)
}
