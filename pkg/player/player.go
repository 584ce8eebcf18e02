package player

import "time"

// Backend is the in-process playback engine. It is able to create any number
// of independent players.
type Backend interface {
	NewPlayer() (Handle, error)
	Version() string
	Close() error
}

// Handle drives one media item inside of the Backend.
type Handle interface {
	Load(ref string) (Media, error)
	Attach(Media) error
	Play() error
	Stop() error
	State() (State, error)
	Release() error
}

// Media is an opaque, loaded media item.
type Media interface {
	// Duration of the media, zero if not (yet) known.
	Duration() (time.Duration, error)
	Release() error
}
