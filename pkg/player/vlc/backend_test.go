package vlc

import (
	"testing"
	"time"

	vlc "github.com/adrg/libvlc-go/v3"
	"github.com/stretchr/testify/assert"

	"github.com/blaubaer/intro-gate/pkg/player"
)

func Test_stateOf(t *testing.T) {
	cases := []struct {
		given    vlc.MediaState
		expected player.State
	}{
		{vlc.MediaNothingSpecial, player.StateIdle},
		{vlc.MediaOpening, player.StateOpening},
		{vlc.MediaBuffering, player.StateBuffering},
		{vlc.MediaPlaying, player.StatePlaying},
		{vlc.MediaPaused, player.StatePaused},
		{vlc.MediaStopped, player.StateStopped},
		{vlc.MediaEnded, player.StateEnded},
		{vlc.MediaError, player.StateError},
		{vlc.MediaState(42), player.StateError},
	}

	for _, c := range cases {
		t.Run(c.expected.String(), func(t *testing.T) {
			assert.Equal(t, c.expected, stateOf(c.given))
		})
	}
}

func TestBackend_Close_notInitialized(t *testing.T) {
	assert.NoError(t, NewBackend().Close())
}

func TestBackend_parseTimeout(t *testing.T) {
	assert.Equal(t, 3000, NewBackend().parseTimeout())
	assert.Equal(t, 250, (&Backend{ParseTimeout: 250 * time.Millisecond}).parseTimeout())
	assert.Equal(t, -1, (&Backend{}).parseTimeout())
}
