package audio

import (
	"math"
	"time"
)

// Block is a fixed-size chunk of normalized samples, each in [-1, 1].
type Block []float32

// RMS is the root mean square of all samples of this block. An empty block
// has a RMS of 0.
func (this Block) RMS() float64 {
	if len(this) == 0 {
		return 0
	}
	var sum float64
	for _, sample := range this {
		v := float64(sample)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(this)))
}

// Duration of this block, if recorded with the given configuration.
func (this Block) Duration(conf StreamConfiguration) time.Duration {
	channels := conf.Channels
	if channels <= 0 {
		channels = 1
	}
	if conf.SampleRate <= 0 {
		return 0
	}
	frames := float64(len(this)) / float64(channels)
	return time.Duration(frames * float64(time.Second) / conf.SampleRate)
}
