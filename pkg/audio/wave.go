package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/DylanMeeus/GoAudio/wave"
)

// WaveFile is a Monitor which delivers the content of a wave file instead of
// a real input device; used to rehearse the gate without a microphone.
// The file is delivered in real time unless Unpaced is set.
type WaveFile struct {
	Path    string
	Unpaced bool

	sleep func(time.Duration)
}

func (this *WaveFile) Open(conf StreamConfiguration) (Stream, error) {
	w, err := wave.ReadWaveFile(this.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read wave file %q: %w", this.Path, err)
	}

	channels := w.NumChannels
	if channels <= 0 {
		channels = 1
	}
	sleep := this.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	samples := make([]float32, len(w.Frames))
	for i, frame := range w.Frames {
		samples[i] = clamp(float32(frame))
	}

	return &waveStream{
		samples: samples,
		conf: StreamConfiguration{
			Channels:   channels,
			SampleRate: float64(w.SampleRate),
			BlockSize:  conf.BlockSize,
		},
		paced: !this.Unpaced,
		sleep: sleep,
	}, nil
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

type waveStream struct {
	samples []float32
	offset  int
	conf    StreamConfiguration
	paced   bool
	sleep   func(time.Duration)
}

func (this *waveStream) Read() (Block, error) {
	if this.offset >= len(this.samples) {
		return nil, io.EOF
	}
	size := this.conf.BlockSize * this.conf.Channels
	if size <= 0 {
		size = len(this.samples)
	}
	end := this.offset + size
	if end > len(this.samples) {
		end = len(this.samples)
	}
	result := make(Block, end-this.offset)
	copy(result, this.samples[this.offset:end])
	this.offset = end

	if this.paced {
		this.sleep(result.Duration(this.conf))
	}
	return result, nil
}

func (this *waveStream) Configuration() StreamConfiguration {
	return this.conf
}

func (this *waveStream) Close() error {
	return nil
}
