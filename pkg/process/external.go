package process

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
	"github.com/shirou/gopsutil/process"
)

// Terminable is something which can be brought down within a grace period.
type Terminable interface {
	// Terminate asks gracefully for termination and kills if this does not
	// happen within grace.
	Terminate(grace time.Duration) error
	String() string
}

// External is a spawned child process which is owned by this application.
type External struct {
	cmd  *exec.Cmd
	proc *process.Process

	exited  chan struct{}
	waitErr error

	terminateOnce sync.Once
	terminateErr  error
}

func Start(executable string, args ...string) (*External, error) {
	cmd := exec.Command(executable, args...)
	prepare(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("cannot start %s: %w", executable, err)
	}

	result := &External{
		cmd:    cmd,
		exited: make(chan struct{}),
	}
	if p, err := process.NewProcess(int32(cmd.Process.Pid)); err == nil {
		result.proc = p
	} else {
		log.WithError(err).
			With("process", result).
			Debug("Cannot inspect started process; it will be killed without its children.")
	}

	go func() {
		defer close(result.exited)
		result.waitErr = cmd.Wait()
		if err := result.waitErr; err != nil {
			log.WithError(err).
				With("process", result).
				Info("Process exited with failure.")
		} else {
			log.With("process", result).
				Debug("Process exited.")
		}
	}()

	return result, nil
}

func (this *External) Pid() int {
	return this.cmd.Process.Pid
}

// Exited is closed as soon as the process is gone.
func (this *External) Exited() <-chan struct{} {
	return this.exited
}

// ExitErr is the result of the process once Exited is closed; nil before.
func (this *External) ExitErr() error {
	select {
	case <-this.exited:
		return this.waitErr
	default:
		return nil
	}
}

func (this *External) Terminate(grace time.Duration) error {
	this.terminateOnce.Do(func() {
		this.terminateErr = this.terminate(grace)
	})
	return this.terminateErr
}

func (this *External) terminate(grace time.Duration) error {
	select {
	case <-this.exited:
		return nil
	default:
	}

	if err := requestTermination(this); err != nil {
		log.WithError(err).
			With("process", this).
			Debug("Cannot request graceful termination; killing.")
		return this.kill()
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-this.exited:
		log.With("process", this).
			Debug("Process terminated gracefully.")
		return nil
	case <-timer.C:
	}

	log.With("process", this).
		With("grace", grace).
		Warn("Process did not terminate within grace period; killing.")
	return this.kill()
}

func (this *External) kill() error {
	if p := this.proc; p != nil {
		if children, err := p.Children(); err == nil {
			for _, child := range children {
				if err := child.Kill(); err != nil {
					log.WithError(err).
						With("process", this).
						With("child", child.Pid).
						Debug("Cannot kill child process.")
				}
			}
		}
	}
	if err := this.cmd.Process.Kill(); err != nil {
		select {
		case <-this.exited:
			return nil
		default:
		}
		return fmt.Errorf("cannot kill %v: %w", this, err)
	}
	return nil
}

func (this *External) String() string {
	name := filepath.Base(this.cmd.Path)
	if p := this.proc; p != nil {
		if v, err := p.Name(); err == nil && v != "" {
			name = v
		}
	}
	return fmt.Sprintf("%s[%d]", name, this.Pid())
}
