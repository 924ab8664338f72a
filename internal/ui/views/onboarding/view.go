package onboarding

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnhub/internal/modules/learner/domain"
	learnerdto "learnhub/internal/modules/learner/dto"
	apperrors "learnhub/internal/platform/errors"
	"learnhub/internal/ui/components"
	"learnhub/internal/ui/nav"
	"learnhub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the slice of the learner handler the wizard submits through.
type Port interface {
	Register(ctx context.Context, username, goals, experience, style string) (learnerdto.RegisterOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// RegisteredMsg carries the outcome of the single create-learner request.
type RegisteredMsg struct {
	Output learnerdto.RegisterOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       Port
	wizard     domain.Wizard
	username   textinput.Model
	goals      textinput.Model
	experience int
	style      int
	submitted  string
	spinner    spinner.Model
	alert      components.Alert
	width      int
	height     int
}

// New builds a wizard at step 1. The learning style step is only present
// when askLearningStyle is set.
func New(port Port, askLearningStyle bool) Model {
	username := textinput.New()
	username.Placeholder = "your username"
	username.CharLimit = 64
	username.Focus()

	goals := textinput.New()
	goals.Placeholder = "e.g. Python"
	goals.CharLimit = 256
	goals.ShowSuggestions = true
	goals.SetSuggestions(domain.GoalPresets)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		wizard:   domain.NewWizard(askLearningStyle),
		username: username,
		goals:    goals,
		spinner:  sp,
		alert:    components.NewAlert("Onboarding failed"),
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Step and Loading expose the wizard for the router and tests.
func (m Model) Step() int     { return m.wizard.Step() }
func (m Model) Total() int    { return m.wizard.Total() }
func (m Model) Loading() bool { return m.wizard.Loading() }

// AlertVisible reports whether the blocking failure alert is up.
func (m Model) AlertVisible() bool { return m.alert.Visible() }
func (m Model) AlertText() string  { return m.alert.Message() }

// CapturesInput is true while a text field owns the keyboard, so the
// router must not treat letters as global shortcuts.
func (m Model) CapturesInput() bool {
	if m.alert.Visible() {
		return true
	}
	step := m.wizard.Step()
	return step == domain.StepUsername || step == domain.StepGoals
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.alert.SetWidth(msg.Width)
		inputWidth := msg.Width - 12
		if inputWidth < 20 {
			inputWidth = 20
		}
		m.username.Width = inputWidth
		m.goals.Width = inputWidth
		return m, nil

	case spinner.TickMsg:
		if !m.wizard.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RegisteredMsg:
		if msg.Err != nil {
			m.wizard.FailSubmit()
			m.alert.Show("Could not create your profile: " + apperrors.Reason(msg.Err))
			return m, nil
		}
		m.wizard.CompleteSubmit()
		username := msg.Output.Username
		if username == "" {
			username = m.submitted
		}
		return m, nav.ToDashboardWithWelcome(username)

	case tea.KeyMsg:
		if m.alert.Visible() {
			var cmd tea.Cmd
			m.alert, cmd = m.alert.Update(msg)
			return m, cmd
		}
		if m.wizard.Loading() {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.wizard.Next() {
			profile := m.wizard.Submission()
			m.submitted = profile.Username
			return m, tea.Batch(m.spinner.Tick, m.submit(profile))
		}
		return m, m.focusStep()
	case "esc":
		m.wizard.Back()
		return m, m.focusStep()
	}

	switch m.wizard.Step() {
	case domain.StepExperience:
		m.experience = moveCursor(m.experience, len(domain.ExperienceLevels), msg.String())
		m.wizard.SetExperienceLevel(domain.ExperienceLevels[m.experience])
		return m, nil
	case domain.StepStyle:
		m.style = moveCursor(m.style, len(domain.LearningStyles), msg.String())
		m.wizard.SetLearningStyle(domain.LearningStyles[m.style])
		return m, nil
	}
	return m.updateFocused(msg)
}

// updateFocused forwards msg to the text input of the current step and
// mirrors its value into the wizard form.
func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.wizard.Step() {
	case domain.StepUsername:
		m.username, cmd = m.username.Update(msg)
		m.wizard.SetUsername(m.username.Value())
	case domain.StepGoals:
		m.goals, cmd = m.goals.Update(msg)
		m.wizard.SetLearningGoals(m.goals.Value())
	}
	return m, cmd
}

func (m *Model) focusStep() tea.Cmd {
	m.username.Blur()
	m.goals.Blur()
	switch m.wizard.Step() {
	case domain.StepUsername:
		return m.username.Focus()
	case domain.StepGoals:
		return m.goals.Focus()
	}
	return nil
}

func (m Model) submit(p domain.Profile) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Register(context.Background(),
			p.Username, p.LearningGoals, string(p.ExperienceLevel), string(p.LearningStyle))
		return RegisteredMsg{Output: out, Err: err}
	}
}

func moveCursor(cur, n int, key string) int {
	switch key {
	case "up", "k", "left", "h":
		if cur > 0 {
			return cur - 1
		}
	case "down", "j", "right", "l":
		if cur < n-1 {
			return cur + 1
		}
	}
	return cur
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.alert.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.alert.View())
	}

	var sb strings.Builder
	step, total := m.wizard.Step(), m.wizard.Total()
	sb.WriteString(theme.Title.Render("Create your learner profile") + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("Step %d of %d", step, total)) + "  " + progressBar(step, total) + "\n\n")

	switch step {
	case domain.StepUsername:
		sb.WriteString("What should we call you?\n\n")
		sb.WriteString(m.username.View())
	case domain.StepGoals:
		sb.WriteString("What do you want to learn?\n")
		sb.WriteString(theme.Muted.Render("Suggestions: "+strings.Join(domain.GoalPresets, ", ")+" (tab completes)") + "\n\n")
		sb.WriteString(m.goals.View())
	case domain.StepExperience:
		sb.WriteString("How much programming experience do you have?\n\n")
		for i, lvl := range domain.ExperienceLevels {
			sb.WriteString(choice(string(lvl), i == m.experience) + "\n")
		}
	case domain.StepStyle:
		sb.WriteString("How do you like to learn?\n\n")
		for i, s := range domain.LearningStyles {
			sb.WriteString(choice(string(s), i == m.style) + "\n")
		}
	}
	sb.WriteString("\n\n")

	switch {
	case m.wizard.Loading():
		sb.WriteString(m.spinner.View() + " Creating your profile…")
	default:
		sb.WriteString(m.hints())
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

func (m Model) hints() string {
	next := "enter: next"
	if m.wizard.IsFinal() {
		next = "enter: finish"
	}
	if !m.wizard.CanAdvance() {
		next = theme.Muted.Strikethrough(true).Render(next)
	}
	parts := []string{next}
	if m.wizard.CanGoBack() {
		parts = append(parts, "esc: back")
	}
	if m.wizard.Step() >= domain.StepExperience {
		parts = append(parts, "↑/↓: choose")
	}
	return theme.Muted.Render(strings.Join(parts, "  "))
}

func choice(label string, selected bool) string {
	if selected {
		return theme.Hot.Render("● " + label)
	}
	return "○ " + label
}

func progressBar(step, total int) string {
	const width = 20
	filled := width * step / total
	return theme.Success.Render(strings.Repeat("━", filled)) +
		theme.Muted.Render(strings.Repeat("━", width-filled))
}
