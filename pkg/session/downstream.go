package session

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/intro-gate/pkg/common"
)

// Downstream is invoked exactly once after the gate opened and the intro was
// torn down.
type Downstream func() error

type DownstreamConfiguration struct {
	Command []string `yaml:"command,omitempty"`
}

func (this *DownstreamConfiguration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("downstream.command", "Command (and its arguments, one per flag) to run after the gate opened. If absent only a message is logged.").
		Envar(common.Envar("DOWNSTREAM_COMMAND")).
		StringsVar(&this.Command)
}

func (this DownstreamConfiguration) Downstream() Downstream {
	if len(this.Command) == 0 {
		return func() error {
			log.Info("Gate opened. The application would start now.")
			return nil
		}
	}

	command := append([]string(nil), this.Command...)
	return func() error {
		log.With("command", strings.Join(command, " ")).
			Info("Gate opened. Starting application...")

		cmd := exec.Command(command[0], command[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("application %s failed: %w", command[0], err)
		}
		return nil
	}
}
