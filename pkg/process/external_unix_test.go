//go:build !windows

package process

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSh(t *testing.T) string {
	t.Helper()
	v, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return v
}

func TestExternal_Terminate_graceful(t *testing.T) {
	sh := requireSh(t)

	instance, err := Start(sh, "-c", "exec sleep 30")
	require.NoError(t, err)
	assert.Greater(t, instance.Pid(), 0)

	start := time.Now()
	require.NoError(t, instance.Terminate(5*time.Second))
	assert.Less(t, time.Since(start), 4*time.Second)

	select {
	case <-instance.Exited():
	case <-time.After(2 * time.Second):
		t.Fatal("process still running")
	}
}

func TestExternal_Terminate_ignoresGracefulRequest(t *testing.T) {
	sh := requireSh(t)

	instance, err := Start(sh, "-c", `trap "" TERM; exec sleep 30`)
	require.NoError(t, err)
	// Give the shell the chance to install the trap.
	time.Sleep(200 * time.Millisecond)

	start := time.Now()
	require.NoError(t, instance.Terminate(100*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	select {
	case <-instance.Exited():
	case <-time.After(2 * time.Second):
		t.Fatal("process was not killed")
	}

	// Idempotent
	assert.NoError(t, instance.Terminate(time.Second))
}

func TestExternal_Terminate_alreadyExited(t *testing.T) {
	sh := requireSh(t)

	instance, err := Start(sh, "-c", "exit 0")
	require.NoError(t, err)

	select {
	case <-instance.Exited():
	case <-time.After(2 * time.Second):
		t.Fatal("process did not exit")
	}

	assert.NoError(t, instance.Terminate(time.Second))
}

func TestExternal_ExitErr(t *testing.T) {
	sh := requireSh(t)

	instance, err := Start(sh, "-c", "exit 3")
	require.NoError(t, err)

	select {
	case <-instance.Exited():
	case <-time.After(2 * time.Second):
		t.Fatal("process still running")
	}

	var eErr *exec.ExitError
	require.ErrorAs(t, instance.ExitErr(), &eErr)
	assert.Equal(t, 3, eErr.ExitCode())

	ok, err := Start(sh, "-c", "exit 0")
	require.NoError(t, err)
	<-ok.Exited()
	assert.NoError(t, ok.ExitErr())
}
