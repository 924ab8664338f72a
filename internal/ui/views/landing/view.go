package landing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnhub/internal/ui/nav"
	"learnhub/internal/ui/theme"
)

type feature struct {
	title string
	blurb string
}

var features = []feature{
	{title: "Personalized learning paths", blurb: "Sessions shaped around your goals and experience."},
	{title: "AI-generated lessons", blurb: "Vocabulary, setup, real code examples and quizzes on demand."},
	{title: "Learn your way", blurb: "Visual, audio, hands-on, or a mix of all three."},
	{title: "Track your progress", blurb: "Every session keeps its place on your dashboard."},
}

// Model is the static landing page. Its only state is the highlighted
// callout; every callout leads to onboarding.
type Model struct {
	cursor int
	width  int
	height int
}

func New() Model { return Model{} }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(features)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m, nav.To(nav.Onboarding)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("learnhub") + "\n")
	sb.WriteString("Learn to code with lessons written for you.\n\n")
	for i, f := range features {
		marker := "  "
		title := f.title
		if i == m.cursor {
			marker = theme.Hot.Render("▸ ")
			title = theme.Hot.Render(title)
		}
		sb.WriteString(marker + title + "\n")
		sb.WriteString("    " + theme.Muted.Render(f.blurb) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: get started  ↑/↓: browse"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
