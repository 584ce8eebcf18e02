package audio

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/echocat/slf4g"
	"github.com/gordonklaus/portaudio"
)

// Stack is the Monitor of the default input device of the host.
type Stack struct {
	initialized bool
	mutex       sync.Mutex
}

func (this *Stack) initialize() error {
	if this.initialized {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("cannot initialize portaudio: %w", err)
	}
	this.initialized = true
	return nil
}

func (this *Stack) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if !this.initialized {
		return nil
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("cannot terminate portaudio: %w", err)
	}
	this.initialized = false
	return nil
}

func (this *Stack) Open(conf StreamConfiguration) (Stream, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if err := this.initialize(); err != nil {
		return nil, err
	}

	if device, err := portaudio.DefaultInputDevice(); err != nil {
		return nil, fmt.Errorf("cannot find default input device: %w", err)
	} else {
		log.With("device", device.Name).
			With("defaultSampleRate", device.DefaultSampleRate).
			Debug("Default input device found.")
	}

	buf := make([]float32, conf.BlockSize*conf.Channels)
	s, err := portaudio.OpenDefaultStream(conf.Channels, 0, conf.SampleRate, conf.BlockSize, buf)
	if err != nil {
		return nil, fmt.Errorf("cannot open input stream with %v: %w", conf, err)
	}
	if err := s.Start(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("cannot start input stream with %v: %w", conf, err)
	}

	return &deviceStream{s, buf, conf}, nil
}

type deviceStream struct {
	stream *portaudio.Stream
	buf    []float32
	conf   StreamConfiguration
}

func (this *deviceStream) Configuration() StreamConfiguration {
	return this.conf
}

func (this *deviceStream) Read() (Block, error) {
	if err := this.stream.Read(); errors.Is(err, portaudio.InputOverflowed) {
		return nil, fmt.Errorf("%w: %v", ErrBlockStatus, err)
	} else if err != nil {
		return nil, fmt.Errorf("cannot read from input stream: %w", err)
	}
	result := make(Block, len(this.buf))
	copy(result, this.buf)
	return result, nil
}

func (this *deviceStream) Close() error {
	stopErr := this.stream.Stop()
	if err := this.stream.Close(); err != nil {
		return fmt.Errorf("cannot close input stream: %w", err)
	}
	if stopErr != nil {
		return fmt.Errorf("cannot stop input stream: %w", stopErr)
	}
	return nil
}
