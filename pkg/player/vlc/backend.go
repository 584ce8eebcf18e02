package vlc

import (
	"fmt"
	"sync"
	"time"

	vlc "github.com/adrg/libvlc-go/v3"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/intro-gate/pkg/player"
)

// Backend plays media inside this process using libvlc. The library is
// initialized with the first player and released by Close.
type Backend struct {
	Args []string
	// ParseTimeout limits the parsing of loaded media. 0 leaves it to libvlc.
	ParseTimeout time.Duration

	initialized bool
	mutex       sync.Mutex
}

func NewBackend() *Backend {
	return &Backend{
		Args:         []string{"--quiet", "--no-video-title-show"},
		ParseTimeout: 3 * time.Second,
	}
}

func (this *Backend) initialize() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.initialized {
		return nil
	}
	if err := vlc.Init(this.Args...); err != nil {
		return fmt.Errorf("cannot initialize libvlc: %w", err)
	}
	this.initialized = true

	log.With("version", this.Version()).
		Debug("libvlc initialized.")
	return nil
}

func (this *Backend) NewPlayer() (player.Handle, error) {
	if err := this.initialize(); err != nil {
		return nil, err
	}
	p, err := vlc.NewPlayer()
	if err != nil {
		return nil, fmt.Errorf("cannot create libvlc player: %w", err)
	}
	return &handle{p, this.parseTimeout()}, nil
}

// parseTimeout in milliseconds as libvlc expects it; -1 is its default.
func (this *Backend) parseTimeout() int {
	if v := this.ParseTimeout; v > 0 {
		return int(v.Milliseconds())
	}
	return -1
}

func (this *Backend) Version() string {
	return "libvlc " + vlc.Version().String()
}

func (this *Backend) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if !this.initialized {
		return nil
	}
	this.initialized = false
	return vlc.Release()
}

type handle struct {
	delegate     *vlc.Player
	parseTimeout int
}

func (this *handle) Load(ref string) (player.Media, error) {
	m, err := vlc.NewMediaFromPath(ref)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", ref, err)
	}
	// Parsing is asynchronous; Duration reports once it is done.
	if err := m.ParseWithOptions(this.parseTimeout, vlc.MediaParseLocal); err != nil {
		log.WithError(err).
			With("ref", ref).
			Debug("Cannot parse media; its duration will stay unknown.")
	}
	return &media{m}, nil
}

func (this *handle) Attach(m player.Media) error {
	v, ok := m.(*media)
	if !ok {
		return fmt.Errorf("media %v was not loaded by libvlc", m)
	}
	return this.delegate.SetMedia(v.delegate)
}

func (this *handle) Play() error {
	return this.delegate.Play()
}

func (this *handle) Stop() error {
	return this.delegate.Stop()
}

func (this *handle) State() (player.State, error) {
	v, err := this.delegate.MediaState()
	if err != nil {
		return player.StateError, err
	}
	return stateOf(v), nil
}

func (this *handle) Release() error {
	return this.delegate.Release()
}

// stateOf maps the libvlc media state, which is ordered exactly like
// player.State, onto it.
func stateOf(v vlc.MediaState) player.State {
	if uint64(v) > uint64(player.StateError) {
		return player.StateError
	}
	return player.State(v)
}

type media struct {
	delegate *vlc.Media
}

func (this *media) Duration() (time.Duration, error) {
	return this.delegate.Duration()
}

func (this *media) Release() error {
	return this.delegate.Release()
}
