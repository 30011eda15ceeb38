package app

import (
	"strings"

	"github.com/llehouerou/dreamster/internal/errmsg"
	"github.com/llehouerou/dreamster/internal/playback"
	"github.com/llehouerou/dreamster/internal/ui/playerbar"
	"github.com/llehouerou/dreamster/internal/ui/render"
	"github.com/llehouerou/dreamster/internal/ui/styles"
)

const (
	minWidth         = 40
	descriptionLines = 4
)

// View renders the track view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := max(m.width, minWidth)
	st := styles.T().S()

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseFetching:
		b.WriteString(m.spinner.View() + " " + st.Muted.Render("Opening track "+m.trackID))
	case phaseFailed:
		b.WriteString(st.Error.Render(errmsg.Track(m.trackID, m.loadErr)))
	case phaseOpen:
		b.WriteString(m.renderTrack(width))
	}

	if notice := m.renderNotice(); notice != "" {
		b.WriteString("\n\n" + notice)
	}

	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader(width int) string {
	t := styles.T()
	st := t.S()
	logo := styles.Gradient("dreamster", true, t.Primary, t.Secondary)

	status := st.Warning.Render("preview")
	if m.deps.Auth.Authenticated() {
		status = st.Success.Render("signed in")
	}
	return render.Row(logo, status, width)
}

func (m Model) renderTrack(width int) string {
	st := styles.T().S()
	t := m.track
	title := render.Sanitize(t.Title)
	artist := render.Sanitize(t.Artist)

	lines := []string{st.Title.Render(render.TruncateEllipsis(title, width))}
	if artist != "" {
		lines = append(lines, st.Muted.Render(render.TruncateEllipsis("by "+artist, width)))
	}

	var facts []string
	if t.Price != nil {
		facts = append(facts, t.Price.String())
	}
	if m.source.Format != "" {
		facts = append(facts, strings.ToUpper(m.source.Format))
	}
	if size := m.source.SizeLabel(); size != "" {
		facts = append(facts, size)
	}
	if len(facts) > 0 {
		lines = append(lines, st.Subtle.Render(render.TruncateEllipsis(strings.Join(facts, " · "), width)))
	}

	if desc := render.Wrap(render.Sanitize(t.Description), width, descriptionLines); len(desc) > 0 {
		lines = append(lines, "")
		for _, l := range desc {
			lines = append(lines, st.Base.Render(l))
		}
	}

	var s playback.Session
	if m.ctrl != nil {
		s = m.ctrl.Session()
	}
	if bar := playerbar.Render(playerbar.NewState(s, title, artist, m.volume.Muted), width); bar != "" {
		lines = append(lines, "", bar)
	}

	return strings.Join(lines, "\n")
}

// renderNotice returns the line shown under the player: the token prompt,
// a playback error, or the sign-in invitation once the preview is over.
func (m Model) renderNotice() string {
	st := styles.T().S()
	switch {
	case m.enteringKey:
		return st.Muted.Render("Sign in: ") + m.tokenInput.View()
	case m.phase == phaseFailed:
		return st.Muted.Render("Press r to retry.")
	case m.playErr != "":
		msg := st.Error.Render(m.playErr)
		if m.failed() {
			msg += st.Muted.Render("  Press r to retry.")
		}
		return msg
	case m.signInPrompt && !m.deps.Auth.Authenticated():
		return st.Warning.Render("Preview ended. Press l to sign in and hear the full track.")
	}
	return ""
}
