// Package app is the track view: it opens one catalog track, plays it
// through a preview-limited controller and renders the player.
package app

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/dreamster/internal/catalog"
	"github.com/llehouerou/dreamster/internal/errmsg"
	"github.com/llehouerou/dreamster/internal/mpris"
	"github.com/llehouerou/dreamster/internal/notify"
	"github.com/llehouerou/dreamster/internal/playback"
	"github.com/llehouerou/dreamster/internal/player"
	"github.com/llehouerou/dreamster/internal/state"
	"github.com/llehouerou/dreamster/internal/ui/styles"
)

// Catalog fetches track metadata and resolves the audio to play.
type Catalog interface {
	Track(ctx context.Context, id string) (*catalog.Track, error)
	ResolveSource(ctx context.Context, t *catalog.Track) (catalog.Source, error)
}

// Auth is the viewer's authentication state.
type Auth interface {
	Authenticated() bool
	Login(token string)
	Logout()
	OnChange(fn func(authenticated bool)) (cancel func())
}

// Opener records that a track view was opened.
type Opener interface {
	Opened(trackID string)
}

// MediaKeys routes desktop media keys to the current controller.
type MediaKeys interface {
	Attach(p mpris.Player, meta mpris.Metadata)
}

// Deps are the collaborators of the track view. Share and MediaKeys may
// be nil. A nil Notifier drops notifications.
type Deps struct {
	Catalog   Catalog
	Media     player.Interface
	Auth      Auth
	State     state.Interface
	Share     Opener
	MediaKeys MediaKeys
	Notifier  notify.Notifier
	Logger    *log.Logger

	// Token signs in without prompting when set.
	Token      string
	SeekStep   time.Duration
	VolumeStep float64
}

type loadPhase int

const (
	phaseFetching loadPhase = iota
	phaseOpen
	phaseFailed
)

// Model is the root model of the track view.
type Model struct {
	deps    Deps
	trackID string
	track   *catalog.Track
	source  catalog.Source
	phase   loadPhase
	loadErr error
	attempt int

	ctrl *playback.Controller
	sub  *playback.Subscription

	authCh     chan bool
	cancelAuth func()

	volume state.VolumeState

	signInPrompt bool
	notifyID     uint32
	playErr      string
	enteringKey  bool
	tokenInput   textinput.Model

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	quitting bool

	width  int
	height int
}

// New creates the track view for trackID.
func New(deps Deps, trackID string) Model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	if deps.SeekStep <= 0 {
		deps.SeekStep = 10 * time.Second
	}
	if deps.VolumeStep <= 0 {
		deps.VolumeStep = 0.05
	}

	vol := state.VolumeState{Volume: 1}
	if v, err := deps.State.GetVolume(); err != nil {
		deps.Logger.Warn("volume not restored", "err", err)
	} else if v != nil {
		vol = *v
	}

	authCh := make(chan bool, 1)
	cancelAuth := deps.Auth.OnChange(func(authenticated bool) {
		select {
		case authCh <- authenticated:
		default: // the view re-reads the store, one pending flip is enough
		}
	})

	ti := textinput.New()
	ti.Placeholder = "API token"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.T().S().Muted

	return Model{
		deps:       deps,
		trackID:    trackID,
		authCh:     authCh,
		cancelAuth: cancelAuth,
		volume:     vol,
		tokenInput: ti,
		keys:       newKeyMap(),
		help:       help.New(),
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.deps.Share != nil {
		m.deps.Share.Opened(m.trackID)
	}
	return tea.Batch(m.fetch(), m.spinner.Tick, WatchAuth(m.authCh))
}

// Controller returns the controller of the open track, nil before it opened.
func (m Model) Controller() *playback.Controller {
	return m.ctrl
}

// Close releases the controller of the open track and the auth listener.
func (m Model) Close() {
	m.closeController()
	if m.cancelAuth != nil {
		m.cancelAuth()
	}
}

func (m Model) fetch() tea.Cmd {
	return OpenTrackCmd(m.deps.Catalog, m.trackID, m.attempt)
}

// attach creates the controller for the fetched track and starts loading
// its audio.
func (m *Model) attach(t *catalog.Track, src catalog.Source) tea.Cmd {
	m.closeController()

	m.track = t
	m.source = src
	m.phase = phaseOpen
	m.signInPrompt = false
	m.playErr = ""

	ctrl := playback.New(m.deps.Media, m.deps.Auth,
		playback.WithLogger(m.deps.Logger.With("track", t.ID)))
	ctrl.SetVolume(m.volume.Level())
	m.sub = ctrl.Subscribe()
	m.ctrl = ctrl
	ctrl.Load(t.ID, src.URL)
	if err := ctrl.Session().LastError; err != nil {
		// Load fails synchronously when the track has no source.
		m.playErr = errmsg.Playback(err)
	}

	if err := m.deps.State.RecordOpened(state.RecentTrack{
		TrackID: t.ID,
		Title:   t.Title,
		Artist:  t.Artist,
	}); err != nil {
		m.deps.Logger.Warn("recent track not saved", "track", t.ID, "err", err)
	}

	if m.deps.MediaKeys != nil {
		m.deps.MediaKeys.Attach(ctrl, mpris.Metadata{
			TrackID:    t.ID,
			Title:      t.Title,
			Artist:     t.Artist,
			ArtworkURL: t.ArtworkURL,
			Duration:   t.Duration,
		})
	}

	return WatchPlayback(m.sub)
}

func (m Model) closeController() {
	if m.deps.MediaKeys != nil {
		m.deps.MediaKeys.Attach(nil, mpris.Metadata{})
	}
	if m.ctrl != nil {
		m.ctrl.Teardown()
		_ = m.ctrl.Close()
	}
}
