package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	sessiondto "learnhub/internal/modules/session/dto"
	"learnhub/internal/platform/clock"
	apperrors "learnhub/internal/platform/errors"
	"learnhub/internal/ui/nav"
	"learnhub/internal/ui/theme"
)

const (
	// BannerDuration is how long the post-onboarding welcome stays up.
	BannerDuration = 5 * time.Second

	EmptyState = "No learning sessions yet. Press s to start one."
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context, learnerID string) ([]sessiondto.SessionOutput, error)
	Start(ctx context.Context, learnerID, topic string) (sessiondto.StartOutput, error)
	Generate(ctx context.Context, learnerID string) (sessiondto.GenerateOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// Every result message carries the id of the dashboard that issued the
// request. A dashboard drops results addressed to another mount, so a
// response that outlives its view never lands in the next one.

type SessionsLoadedMsg struct {
	Owner    int64
	Sessions []sessiondto.SessionOutput
	Err      error
}

type StartedMsg struct {
	Owner  int64
	Output sessiondto.StartOutput
	Err    error
}

type GeneratedMsg struct {
	Owner  int64
	Output sessiondto.GenerateOutput
	Err    error
}

// BannerExpiredMsg clears the banner of the dashboard it was scheduled for.
type BannerExpiredMsg struct{ ID int64 }

var mountSeq atomic.Int64

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session sessiondto.SessionOutput
}

func (i sessionItem) Title() string { return i.session.Topic }
func (i sessionItem) Description() string {
	return fmt.Sprintf("%d%%  %s", i.session.Progress, formatDate(i.session.CreatedAt))
}
func (i sessionItem) FilterValue() string { return i.session.Topic }

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "date unknown"
	}
	return t.Local().Format("Jan 2, 2006")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	id        int64
	port      Port
	clock     clock.Clock
	learnerID string

	list     list.Model
	content  viewport.Model
	renderer *glamour.TermRenderer
	spinner  spinner.Model
	sessions []sessiondto.SessionOutput

	loading bool
	busy    bool
	errText string
	notice  string

	banner      string
	bannerUntil time.Time

	width  int
	height int
}

// New builds a dashboard for learnerID. welcome is the one-shot payload of
// the navigation that opened it and may be nil.
func New(port Port, learnerID string, welcome *nav.Welcome, clk clock.Clock) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Your learning sessions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	m := Model{
		id:        mountSeq.Add(1),
		port:      port,
		clock:     clk,
		learnerID: learnerID,
		list:      l,
		content:   vp,
		renderer:  r,
		spinner:   sp,
		loading:   true,
	}
	if welcome != nil && welcome.Success {
		m.banner = fmt.Sprintf("Welcome, %s! Your learning profile is ready.", welcome.Username)
		m.bannerUntil = clk.Now().Add(BannerDuration)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.learnerID == "" {
		return nav.To(nav.Onboarding)
	}
	cmds := []tea.Cmd{m.loadCmd(), m.spinner.Tick}
	if m.banner != "" {
		id := m.id
		cmds = append(cmds, tea.Tick(BannerDuration, func(time.Time) tea.Msg {
			return BannerExpiredMsg{ID: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (m Model) Sessions() []sessiondto.SessionOutput { return m.sessions }
func (m Model) Busy() bool                           { return m.busy }
func (m Model) Loading() bool                        { return m.loading }
func (m Model) ErrorText() string                    { return m.errText }
func (m Model) ID() int64                            { return m.id }

// BannerVisible checks the deadline against the clock, so a banner is
// never shown past its window even if the expiry tick is late.
func (m Model) BannerVisible() bool {
	return m.banner != "" && m.clock.Now().Before(m.bannerUntil)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderSelected()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case BannerExpiredMsg:
		if msg.ID == m.id {
			m.banner = ""
		}
		return m, nil

	case SessionsLoadedMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.errText = "Could not load sessions: " + apperrors.Reason(msg.Err)
			return m, nil
		}
		m.sessions = msg.Sessions
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		cmd := m.list.SetItems(items)
		m.renderSelected()
		return m, cmd

	case StartedMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			m.errText = "Could not start a session: " + apperrors.Reason(msg.Err)
			return m, nil
		}
		m.notice = msg.Output.Message
		return m.Refresh()

	case GeneratedMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			m.errText = apperrors.Reason(msg.Err)
		} else {
			m.notice = msg.Output.Message
		}
		return m.Refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return m.StartSession()
		case "g":
			return m.GenerateContent()
		case "r":
			return m.Refresh()
		case "x":
			m.errText = ""
			return m, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.content, cmd = m.content.Update(msg)
			return m, cmd
		}
		if m.loading {
			return m, nil
		}
		prev := m.list.Index()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
		if m.list.Index() != prev {
			m.renderSelected()
		}
	}

	return m, tea.Batch(cmds...)
}

// StartSession asks the backend for a new session. The topic is left empty
// so the session use case applies its default. It is a no-op while another
// request is in flight.
func (m Model) StartSession() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.errText = ""
	id, port, learnerID := m.id, m.port, m.learnerID
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Start(context.Background(), learnerID, "")
		return StartedMsg{Owner: id, Output: out, Err: err}
	})
}

// GenerateContent triggers server-side generation; the list is refetched
// whatever the outcome.
func (m Model) GenerateContent() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.errText = ""
	id, port, learnerID := m.id, m.port, m.learnerID
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Generate(context.Background(), learnerID)
		return GeneratedMsg{Owner: id, Output: out, Err: err}
	})
}

func (m Model) Refresh() (Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) loadCmd() tea.Cmd {
	id, port, learnerID := m.id, m.port, m.learnerID
	return func() tea.Msg {
		sessions, err := port.List(context.Background(), learnerID)
		return SessionsLoadedMsg{Owner: id, Sessions: sessions, Err: err}
	}
}

func (m *Model) resize() {
	listW := m.width * 2 / 5
	bodyH := m.height - 8
	if bodyH < 3 {
		bodyH = 3
	}
	m.list.SetSize(listW, bodyH)
	m.content.Width = m.width - listW - 4
	m.content.Height = bodyH
}

func (m *Model) renderSelected() {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		m.content.SetContent("")
		return
	}
	body := item.session.Content
	if strings.TrimSpace(body) == "" {
		m.content.SetContent(theme.Muted.Render("This session has no content yet. Press g to generate some."))
		return
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(body); err == nil {
			body = out
		}
	}
	m.content.SetContent(body)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Dashboard") + "\n")
	if m.BannerVisible() {
		sb.WriteString(theme.Banner.Render(m.banner) + "\n")
	}
	if m.errText != "" {
		sb.WriteString(theme.InlineError.Render(m.errText+"  (x to dismiss)") + "\n")
	} else if m.notice != "" {
		sb.WriteString(theme.Success.Render(m.notice) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.loading && len(m.sessions) == 0:
		sb.WriteString(m.spinner.View() + " Loading sessions…")
	case len(m.sessions) == 0:
		sb.WriteString(theme.Muted.Render(EmptyState))
	default:
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), "  ", m.content.View()))
	}
	sb.WriteString("\n\n")

	if m.busy {
		sb.WriteString(m.spinner.View() + " Working…")
	} else {
		sb.WriteString(theme.Muted.Render("s: start session  g: generate content  r: refresh  pgup/pgdown: scroll"))
	}
	return sb.String()
}
