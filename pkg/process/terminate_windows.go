//go:build windows

package process

import (
	"fmt"
	"os/exec"
)

func prepare(*exec.Cmd) {}

func requestTermination(of *External) error {
	if of.proc == nil {
		return fmt.Errorf("process %d cannot be inspected", of.Pid())
	}
	return of.proc.Terminate()
}
