package loop

import (
	"fmt"
)

// State of a Runner.
type State uint32

const (
	StateStarting = State(iota)
	StatePlaying
	StateRestarting
	StateFallbackExternal
	StateStopped
)

func (this State) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-loop-state-%d", this)
	}
	return string(v)
}

func (this State) MarshalText() (text []byte, err error) {
	switch this {
	case StateStarting:
		return []byte("starting"), nil
	case StatePlaying:
		return []byte("playing"), nil
	case StateRestarting:
		return []byte("restarting"), nil
	case StateFallbackExternal:
		return []byte("fallbackExternal"), nil
	case StateStopped:
		return []byte("stopped"), nil
	default:
		return nil, fmt.Errorf("illegal loop state: %d", this)
	}
}

// IsFinal reports whether the Runner will not do anything anymore.
func (this State) IsFinal() bool {
	return this == StateStopped || this == StateFallbackExternal
}
