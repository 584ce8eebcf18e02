package voice

import (
	"context"
	"errors"
	"io"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/intro-gate/pkg/audio"
	"github.com/blaubaer/intro-gate/pkg/signal"
)

// Detector raises VoiceDetected as soon as the loudness of the samples of
// Monitor exceeds the configured threshold.
type Detector struct {
	Monitor audio.Monitor
	Stream  audio.StreamConfiguration

	VoiceDetected *signal.Signal
	StopRequested *signal.Signal

	Conf *Configuration
}

// Watch blocks until either a voice was detected, one of the signals was
// raised or the samples cannot be read. It reports whether it raised
// VoiceDetected.
func (this *Detector) Watch(ctx context.Context) bool {
	threshold := this.Conf.Threshold
	logger := log.With("threshold", threshold)
	signals := signal.Signals{this.VoiceDetected, this.StopRequested}

	logger.With("stream", this.Stream).
		Info("Voice detection starting...")

	stream, err := this.Monitor.Open(this.Stream)
	if err != nil {
		logger.WithError(err).
			Error("Cannot open the sample stream. Voice detection is disabled; only an interrupt can end the intro now.")
		return false
	}
	defer func() {
		if err := stream.Close(); err != nil {
			logger.WithError(err).
				Debug("Cannot close sample stream.")
		}
	}()

	effective := stream.Configuration()
	if effective != this.Stream {
		logger.With("stream", effective).
			Info("Sample stream delivers a different format than requested.")
	}

	var held time.Duration
	for ctx.Err() == nil && !signals.AnySet() {
		block, err := stream.Read()
		if errors.Is(err, audio.ErrBlockStatus) {
			logger.WithError(err).
				Trace("Block skipped.")
			continue
		}
		if errors.Is(err, io.EOF) {
			logger.Warn("Sample stream ended. Voice detection is disabled; only an interrupt can end the intro now.")
			return false
		}
		if err != nil {
			logger.WithError(err).
				Error("Cannot read from the sample stream. Voice detection is disabled; only an interrupt can end the intro now.")
			return false
		}

		rms := block.RMS()
		if rms <= threshold {
			held = 0
			if rms > threshold/2 {
				logger.With("rms", rms).
					Debug("Loudness below threshold.")
			}
			continue
		}

		held += block.Duration(effective)
		if held < this.Conf.HoldTime {
			logger.With("rms", rms).
				With("held", held).
				Debug("Loudness above threshold, but not long enough.")
			continue
		}

		if signals.AnySet() {
			return false
		}
		logger.With("rms", rms).
			Info("Voice detected.")
		return this.VoiceDetected.Set()
	}

	logger.Debug("Voice detection interrupted.")
	return false
}
