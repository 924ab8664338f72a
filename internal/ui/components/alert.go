package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnhub/internal/ui/theme"
)

// AlertDismissedMsg is emitted once the user acknowledges the alert.
type AlertDismissedMsg struct{}

var alertStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.DoubleBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 2)

// Alert is a blocking modal: while visible it swallows every key until
// enter or esc dismisses it.
type Alert struct {
	title   string
	message string
	visible bool
	width   int
}

func NewAlert(title string) Alert {
	return Alert{title: title}
}

func (a Alert) Visible() bool   { return a.visible }
func (a Alert) Message() string { return a.message }

func (a *Alert) Show(message string) {
	a.message = message
	a.visible = true
}

func (a *Alert) SetWidth(w int) { a.width = w }

func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd) {
	if !a.visible {
		return a, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc", " ":
			a.visible = false
			return a, func() tea.Msg { return AlertDismissedMsg{} }
		}
	}
	return a, nil
}

func (a Alert) View() string {
	if !a.visible {
		return ""
	}
	w := a.width
	if w < 30 {
		w = 60
	}
	body := theme.Danger.Bold(true).Render(a.title) + "\n\n" +
		a.message + "\n\n" +
		theme.Muted.Render("enter: ok")
	return alertStyle.Width(w - 4).Render(body)
}
