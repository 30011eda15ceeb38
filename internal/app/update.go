package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dreamster/internal/catalog"
	"github.com/llehouerou/dreamster/internal/errmsg"
	"github.com/llehouerou/dreamster/internal/notify"
	"github.com/llehouerou/dreamster/internal/playback"
	"github.com/llehouerou/dreamster/internal/state"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TrackOpenedMsg:
		if msg.Attempt != m.attempt || m.quitting {
			return m, nil
		}
		cmd := m.attach(msg.Track, msg.Source)
		m.syncKeys()
		return m, cmd

	case TrackFailedMsg:
		if msg.Attempt != m.attempt {
			return m, nil
		}
		return m.handleTrackFailed(msg)

	case AuthChangedMsg:
		if m.ctrl != nil {
			m.ctrl.AuthChanged()
		}
		if msg.Authenticated {
			m.signInPrompt = false
		}
		m.syncKeys()
		return m, WatchAuth(m.authCh)

	case DesktopNotifiedMsg:
		if msg.Err != nil {
			m.deps.Logger.Debug("desktop notification failed", "err", msg.Err)
			return m, nil
		}
		m.notifyID = msg.ID
		return m, nil

	case PlaybackMessage:
		return m.handlePlayback(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleTrackFailed(msg TrackFailedMsg) (tea.Model, tea.Cmd) {
	m.phase = phaseFailed
	m.loadErr = msg.Err
	m.deps.Logger.Warn("track not opened", "track", msg.TrackID, "err", msg.Err)
	if errors.Is(msg.Err, catalog.ErrUnauthorized) {
		// The stored token was rejected.
		m.deps.Auth.Logout()
	}
	m.syncKeys()
	return m, nil
}

// handlePlayback applies a controller event. Events of a replaced
// controller are dropped and not watched again.
func (m Model) handlePlayback(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	if m.sub == nil || msg.subscription() != m.sub {
		return m, nil
	}

	var notifyCmd tea.Cmd
	switch msg := msg.(type) {
	case PlaybackClosedMsg:
		return m, nil
	case PreviewLimitMsg:
		m.signInPrompt = true
		if m.track != nil {
			n := notify.PreviewEnded(m.track.Title, m.track.Artist, msg.Event.Limit)
			n.ReplacesID = m.notifyID
			notifyCmd = NotifyCmd(m.deps.Notifier, n)
		}
	case VolumeChangedMsg:
		if msg.Event.Volume != m.volume.Level() {
			// Set outside the app, e.g. by a media key.
			m.volume = state.VolumeState{Volume: msg.Event.Volume}
			m.deps.State.SaveVolume(m.volume)
		}
	case PlaybackErrorMsg:
		m.playErr = errmsg.Playback(msg.Event.Err)
	case StateChangedMsg:
		if msg.Event.Current == playback.StatePlaying {
			m.playErr = ""
		}
	}

	m.syncKeys()
	return m, tea.Batch(WatchPlayback(m.sub), notifyCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.enteringKey {
		return m.handleTokenInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.SignIn):
		return m.toggleSignIn()
	case key.Matches(msg, m.keys.Retry):
		return m.retry()
	}

	if m.ctrl == nil {
		return m, nil
	}
	s := m.ctrl.Session()

	switch {
	case key.Matches(msg, m.keys.PlayPause):
		if s.IsPlaying() {
			m.ctrl.Pause()
		} else {
			m.ctrl.Play()
		}
	case key.Matches(msg, m.keys.SeekBack):
		m.ctrl.Seek(s.Position - m.deps.SeekStep)
	case key.Matches(msg, m.keys.SeekFwd):
		m.ctrl.Seek(s.Position + m.deps.SeekStep)
	case key.Matches(msg, m.keys.VolumeUp):
		m.changeVolume(m.deps.VolumeStep)
	case key.Matches(msg, m.keys.VolumeDown):
		m.changeVolume(-m.deps.VolumeStep)
	case key.Matches(msg, m.keys.Mute):
		m.volume.Muted = !m.volume.Muted
		m.applyVolume()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

func (m Model) toggleSignIn() (tea.Model, tea.Cmd) {
	if m.deps.Auth.Authenticated() {
		m.deps.Auth.Logout()
		return m, nil
	}
	if m.deps.Token != "" {
		m.deps.Auth.Login(m.deps.Token)
		return m, nil
	}
	m.enteringKey = true
	m.tokenInput.Reset()
	return m, m.tokenInput.Focus()
}

func (m Model) handleTokenInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		token := strings.TrimSpace(m.tokenInput.Value())
		m.enteringKey = false
		m.tokenInput.Blur()
		m.tokenInput.Reset()
		if token != "" {
			m.deps.Auth.Login(token)
		}
		return m, nil
	case tea.KeyEsc:
		m.enteringKey = false
		m.tokenInput.Blur()
		m.tokenInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

// retry refetches the track after a failure that a new load may fix.
func (m Model) retry() (tea.Model, tea.Cmd) {
	if !m.failed() {
		return m, nil
	}
	m.closeController()
	m.ctrl = nil
	m.sub = nil
	m.attempt++
	m.phase = phaseFetching
	m.loadErr = nil
	m.playErr = ""
	m.syncKeys()
	return m, tea.Batch(m.fetch(), m.spinner.Tick)
}

func (m *Model) changeVolume(delta float64) {
	m.volume.Volume = min(max(m.volume.Volume+delta, 0), 1)
	m.volume.Muted = false
	m.applyVolume()
}

func (m *Model) applyVolume() {
	m.ctrl.SetVolume(m.volume.Level())
	m.deps.State.SaveVolume(m.volume)
}

// failed reports whether only a new load can recover the view.
func (m Model) failed() bool {
	if m.phase == phaseFailed {
		return true
	}
	if m.ctrl == nil {
		return false
	}
	s := m.ctrl.Session()
	return s.State == playback.StateErrored && !s.ErrorKind().Recoverable()
}

func (m *Model) syncKeys() {
	controls := false
	if m.ctrl != nil {
		controls = m.ctrl.Session().ControlsEnabled()
	}
	m.keys.setEnabled(controls, m.deps.Auth.Authenticated(), m.failed())
}
