//go:build !windows

package process

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func prepare(cmd *exec.Cmd) {
	// Own process group, an interrupt of the terminal should not reach the
	// external player before we ask it to terminate.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func requestTermination(of *External) error {
	return unix.Kill(of.Pid(), unix.SIGTERM)
}
