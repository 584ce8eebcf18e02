package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/blaubaer/intro-gate/pkg/process"
)

var ErrNoStandalonePlayer = errors.New("no standalone player found")

// Standalone locates and spawns an out-of-process player which is used if the
// in-process Backend does not behave.
type Standalone struct {
	// Executable overrides the discovery if set.
	Executable string
	// Names are looked up in PATH.
	Names []string
	// Candidates are checked after PATH lookup failed.
	Candidates []string

	lookPath func(string) (string, error)
	start    func(executable string, args ...string) (*process.External, error)
}

func NewStandalone(executable string) *Standalone {
	return &Standalone{
		Executable: executable,
		Names:      []string{"vlc", "cvlc"},
		Candidates: defaultCandidates(),
	}
}

func defaultCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\VideoLAN\VLC\vlc.exe`,
			`C:\Program Files (x86)\VideoLAN\VLC\vlc.exe`,
		}
	case "darwin":
		return []string{"/Applications/VLC.app/Contents/MacOS/VLC"}
	default:
		return []string{"/usr/bin/vlc", "/snap/bin/vlc"}
	}
}

func (this *Standalone) Locate() (string, error) {
	if v := this.Executable; v != "" {
		if isFile(v) {
			return v, nil
		}
		return "", fmt.Errorf("%w: configured executable %q does not exist", ErrNoStandalonePlayer, v)
	}

	lookPath := this.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, name := range this.Names {
		if v, err := lookPath(name); err == nil {
			return v, nil
		}
	}
	for _, candidate := range this.Candidates {
		if isFile(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNoStandalonePlayer
}

// Spawn starts executable with the media reference as its sole argument.
func (this *Standalone) Spawn(executable, ref string) (process.Terminable, error) {
	start := this.start
	if start == nil {
		start = process.Start
	}
	v, err := start(executable, ref)
	if err != nil {
		return nil, fmt.Errorf("cannot start standalone player %s for %s: %w", executable, ref, err)
	}
	return v, nil
}

func isFile(fn string) bool {
	fi, err := os.Stat(fn)
	return err == nil && !fi.IsDir()
}
