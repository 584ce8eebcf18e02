package audio

import (
	"errors"
	"fmt"
)

// ErrBlockStatus is returned by Stream.Read if the block was delivered with an
// input/output status (overflow, underflow, ...). The block should be skipped.
var ErrBlockStatus = errors.New("block delivered with status")

type StreamConfiguration struct {
	Channels   int
	SampleRate float64
	BlockSize  int
}

func (this StreamConfiguration) String() string {
	return fmt.Sprintf("%d channel(s) @ %.0fHz, %d frames per block", this.Channels, this.SampleRate, this.BlockSize)
}

// Monitor delivers blocks of samples of an input.
type Monitor interface {
	Open(StreamConfiguration) (Stream, error)
}

type Stream interface {
	// Read blocks until the next block is available.
	Read() (Block, error)
	// Configuration the blocks are actually delivered with. It might differ
	// from the requested one.
	Configuration() StreamConfiguration
	Close() error
}
