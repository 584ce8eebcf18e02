package player

import (
	"fmt"
	"strings"
)

// State is the coarse state a Handle reports about its current media.
type State uint8

const (
	StateIdle = State(iota)
	StateOpening
	StateBuffering
	StatePlaying
	StatePaused
	StateStopped
	StateEnded
	StateError
)

var (
	AllStates = States{
		StateIdle,
		StateOpening,
		StateBuffering,
		StatePlaying,
		StatePaused,
		StateStopped,
		StateEnded,
		StateError,
	}
)

func (this *State) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "idle", "nothingspecial", "nothing-special":
		*this = StateIdle
	case "opening":
		*this = StateOpening
	case "buffering":
		*this = StateBuffering
	case "playing":
		*this = StatePlaying
	case "paused":
		*this = StatePaused
	case "stopped":
		*this = StateStopped
	case "ended":
		*this = StateEnded
	case "error":
		*this = StateError
	default:
		return fmt.Errorf("illegal-player-state: %s", plain)
	}
	return nil
}

func (this State) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-player-state-%d", this)
	}
	return string(v)
}

func (this State) MarshalText() (text []byte, err error) {
	switch this {
	case StateIdle:
		return []byte("idle"), nil
	case StateOpening:
		return []byte("opening"), nil
	case StateBuffering:
		return []byte("buffering"), nil
	case StatePlaying:
		return []byte("playing"), nil
	case StatePaused:
		return []byte("paused"), nil
	case StateStopped:
		return []byte("stopped"), nil
	case StateEnded:
		return []byte("ended"), nil
	case StateError:
		return []byte("error"), nil
	default:
		return nil, fmt.Errorf("illegal player state: %d", this)
	}
}

func (this *State) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

// IsTerminal reports whether the current attempt to play is over.
func (this State) IsTerminal() bool {
	switch this {
	case StateIdle, StateStopped, StateEnded, StateError:
		return true
	default:
		return false
	}
}

type States []State

func (this *States) Set(plain string) error {
	var result States
	for _, plain := range strings.Split(plain, ",") {
		plain = strings.TrimSpace(plain)
		if plain != "" {
			var v State
			if err := v.Set(plain); err != nil {
				return err
			}
			result = append(result, v)
		}
	}
	*this = result
	return nil
}

func (this States) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this States) String() string {
	return strings.Join(this.Strings(), ",")
}

func (this States) Has(v State) bool {
	for _, candidate := range this {
		if v == candidate {
			return true
		}
	}
	return false
}
