package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	learnerdto "learnhub/internal/modules/learner/dto"
	"learnhub/internal/platform/clock"
	apperrors "learnhub/internal/platform/errors"
	"learnhub/internal/ui/components"
	"learnhub/internal/ui/nav"
	"learnhub/internal/ui/theme"
	dashboardview "learnhub/internal/ui/views/dashboard"
	landingview "learnhub/internal/ui/views/landing"
	onboardingview "learnhub/internal/ui/views/onboarding"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type learnerPort interface {
	onboardingview.Port
	Current(ctx context.Context) (learnerdto.CurrentOutput, error)
	Forget(ctx context.Context) error
}

type sessionPort interface {
	dashboardview.Port
}

type healthPort interface {
	Health(ctx context.Context) (string, error)
}

// Options carries the settings the router needs beyond its ports.
type Options struct {
	StartRoute       nav.Route
	AskLearningStyle bool
	APIURL           string
	Clock            clock.Clock
}

// ─── async messages ───────────────────────────────────────────────────────────

// learnerResolvedMsg answers the dashboard navigation numbered seq. Any
// navigation issued after it supersedes the answer.
type learnerResolvedMsg struct {
	seq       uint64
	learnerID string
	welcome   *nav.Welcome
	err       error
}

type learnerForgottenMsg struct{ err error }

type healthCheckedMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Next     key.Binding
	Back     key.Binding
	Start    key.Binding
	Generate key.Binding
	Refresh  key.Binding
	Dismiss  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Next:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next / select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate content")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh sessions")),
		Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Back},
		{k.Start, k.Generate, k.Refresh, k.Dismiss},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It shows exactly one view at a time
// and rebuilds that view on every navigation, so wizard and dashboard state
// never outlive their route.
type Model struct {
	learner learnerPort
	session sessionPort
	health  healthPort
	opts    Options

	route      nav.Route
	landing    landingview.Model
	onboarding onboardingview.Model
	dashboard  dashboardview.Model
	learnerID  string
	navSeq     uint64

	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	apiStatus string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(learner learnerPort, session sessionPort, health healthPort, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.StartRoute == "" {
		opts.StartRoute = nav.Landing
	}
	return Model{
		learner:   learner,
		session:   session,
		health:    health,
		opts:      opts,
		route:     nav.Landing,
		landing:   landingview.New(),
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
		apiStatus: "checking",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.checkHealthCmd()}
	if m.opts.StartRoute != nav.Landing {
		cmds = append(cmds, nav.To(m.opts.StartRoute))
	}
	return tea.Batch(cmds...)
}

// Route returns the route currently on screen.
func (m Model) Route() nav.Route { return m.route }

// LearnerID is the identifier the dashboard was opened with.
func (m Model) LearnerID() string { return m.learnerID }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts keys while open; async results still reach
	// the active view.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case nav.NavigateMsg:
		return m.navigate(msg)

	case learnerResolvedMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrNoLearner) {
				m.status = "no learner profile yet: complete onboarding first"
				return m, nav.To(nav.Onboarding)
			}
			m.status = "learner lookup failed: " + msg.err.Error()
			return m, nil
		}
		m.learnerID = msg.learnerID
		m.route = nav.Dashboard
		m.dashboard = dashboardview.New(m.session, msg.learnerID, msg.welcome, m.opts.Clock)
		m.propagateSize()
		m.status = "learner " + msg.learnerID
		return m, m.dashboard.Init()

	case learnerForgottenMsg:
		if msg.err != nil {
			m.status = "forget failed: " + msg.err.Error()
			return m, nil
		}
		m.learnerID = ""
		m.status = "learner forgotten"
		if m.route == nav.Dashboard {
			return m, nav.To(nav.Landing)
		}
		return m, nil

	case healthCheckedMsg:
		if msg.err != nil {
			m.apiStatus = "down"
		} else {
			m.apiStatus = msg.status
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the wizard while one of its text fields is focused.
		if m.route == nav.Onboarding && m.onboarding.CapturesInput() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	return m.updateActive(msg)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case nav.Landing:
		m.landing, cmd = m.landing.Update(msg)
	case nav.Onboarding:
		m.onboarding, cmd = m.onboarding.Update(msg)
	case nav.Dashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

// navigate builds a fresh view for the target route. The dashboard is only
// entered once the stored learner id has been resolved.
func (m Model) navigate(msg nav.NavigateMsg) (tea.Model, tea.Cmd) {
	m.navSeq++
	switch msg.Route {
	case nav.Landing:
		m.route = nav.Landing
		m.landing = landingview.New()
		m.propagateSize()
		return m, m.landing.Init()
	case nav.Onboarding:
		m.route = nav.Onboarding
		m.onboarding = onboardingview.New(m.learner, m.opts.AskLearningStyle)
		m.propagateSize()
		return m, m.onboarding.Init()
	case nav.Dashboard:
		return m, m.resolveLearnerCmd(msg.Welcome)
	}
	m.status = "unknown route: " + string(msg.Route)
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) activeView() string {
	switch m.route {
	case nav.Landing:
		return m.landing.View()
	case nav.Onboarding:
		return m.onboarding.View()
	case nav.Dashboard:
		return m.dashboard.View()
	}
	return ""
}

func (m Model) renderHeader() string {
	bar := "learnhub  " + theme.Hot.Render(string(m.route))
	if m.opts.APIURL != "" {
		bar += "  " + theme.Muted.Render(m.opts.APIURL)
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	api := theme.Success.Render("● api " + m.apiStatus)
	if m.apiStatus == "down" {
		api = theme.Danger.Render("● api down")
	}
	left := api + "  " + m.status
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "go:landing":
		return m, nav.To(nav.Landing)
	case "go:onboarding":
		return m, nav.To(nav.Onboarding)
	case "go:dashboard":
		return m, nav.To(nav.Dashboard)

	case "session:start", "content:generate", "sessions:refresh":
		if m.route != nav.Dashboard {
			m.status = "open the dashboard first"
			return m, nil
		}
		var cmd tea.Cmd
		switch parts[0] {
		case "session:start":
			m.dashboard, cmd = m.dashboard.StartSession()
		case "content:generate":
			m.dashboard, cmd = m.dashboard.GenerateContent()
		default:
			m.dashboard, cmd = m.dashboard.Refresh()
		}
		return m, cmd

	case "learner:forget":
		return m, m.forgetLearnerCmd()

	case "quit":
		return m, tea.Quit

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	if m.width == 0 && m.height == 0 {
		return
	}
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	switch m.route {
	case nav.Landing:
		m.landing, _ = m.landing.Update(sz)
	case nav.Onboarding:
		m.onboarding, _ = m.onboarding.Update(sz)
	case nav.Dashboard:
		m.dashboard, _ = m.dashboard.Update(sz)
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) resolveLearnerCmd(welcome *nav.Welcome) tea.Cmd {
	learner, seq := m.learner, m.navSeq
	return func() tea.Msg {
		out, err := learner.Current(context.Background())
		return learnerResolvedMsg{seq: seq, learnerID: out.LearnerID, welcome: welcome, err: err}
	}
}

func (m Model) forgetLearnerCmd() tea.Cmd {
	learner := m.learner
	return func() tea.Msg {
		return learnerForgottenMsg{err: learner.Forget(context.Background())}
	}
}

func (m Model) checkHealthCmd() tea.Cmd {
	health := m.health
	return func() tea.Msg {
		if health == nil {
			return healthCheckedMsg{err: errors.New("health probe not configured")}
		}
		status, err := health.Health(context.Background())
		return healthCheckedMsg{status: status, err: err}
	}
}
