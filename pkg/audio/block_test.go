package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlock_RMS(t *testing.T) {
	cases := []struct {
		name     string
		given    Block
		expected float64
	}{
		{"empty", Block{}, 0},
		{"silence", Block{0, 0, 0, 0}, 0},
		{"constant", Block{0.5, 0.5, 0.5, 0.5}, 0.5},
		{"alternating", Block{0.08, -0.08, 0.08, -0.08}, 0.08},
		{"fullScale", Block{1, -1}, 1},
		{"mixed", Block{0.3, 0.4}, math.Sqrt((0.09 + 0.16) / 2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.expected, c.given.RMS(), 1e-6)
		})
	}
}

func TestBlock_Duration(t *testing.T) {
	conf := StreamConfiguration{Channels: 1, SampleRate: 1000}
	assert.Equal(t, 100*time.Millisecond, make(Block, 100).Duration(conf))

	conf.Channels = 2
	assert.Equal(t, 50*time.Millisecond, make(Block, 100).Duration(conf))

	conf.SampleRate = 0
	assert.Equal(t, time.Duration(0), make(Block, 100).Duration(conf))
}
