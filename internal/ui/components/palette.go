package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnhub/internal/ui/theme"
)

// PaletteSubmitMsg carries the command the user confirmed.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

const maxPaletteMatches = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	matchStyle    = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedMatch = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// PaletteCommands must stay in sync with executePalette in ui/app.
var PaletteCommands = []string{
	"go:landing",
	"go:onboarding",
	"go:dashboard",
	"session:start",
	"content:generate",
	"sessions:refresh",
	"learner:forget",
	"quit",
}

// Palette is the ":" command overlay. Typing filters PaletteCommands by
// substring; up/down pick a match and enter submits it.
type Palette struct {
	input    textinput.Model
	visible  bool
	selected int
	width    int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 64
	ti.Prompt = ": "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows an empty palette and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Matches lists the commands containing the current input.
func (p Palette) Matches() []string {
	query := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var out []string
	for _, c := range PaletteCommands {
		if strings.Contains(c, query) {
			out = append(out, c)
		}
	}
	return out
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		matches := p.Matches()
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "up", "ctrl+p":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down", "ctrl+n":
			if p.selected < min(len(matches), maxPaletteMatches)-1 {
				p.selected++
			}
			return p, nil
		case "enter":
			input := strings.TrimSpace(p.input.Value())
			if p.selected < len(matches) {
				input = matches[p.selected]
			}
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: input} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if n := len(p.Matches()); p.selected >= n {
		p.selected = max(n-1, 0)
	}
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Commands") + "\n")
	sb.WriteString(p.input.View() + "\n")

	matches := p.Matches()
	if len(matches) == 0 {
		sb.WriteString("\n" + matchStyle.Render("  no matching command"))
	} else {
		sb.WriteString("\n")
	}
	for i, c := range matches {
		if i == maxPaletteMatches {
			break
		}
		if i == p.selected {
			sb.WriteString(selectedMatch.Render("▸ "+c) + "\n")
		} else {
			sb.WriteString(matchStyle.Render("  "+c) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(strings.TrimRight(sb.String(), "\n"))
}
