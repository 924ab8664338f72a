package landing_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"learnhub/internal/ui/nav"
	"learnhub/internal/ui/views/landing"
)

func TestEveryCalloutNavigatesToOnboarding(t *testing.T) {
	t.Parallel()
	m := landing.New()
	for i := 0; i < 6; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatalf("enter must navigate")
		}
		msg, ok := cmd().(nav.NavigateMsg)
		if !ok || msg.Route != nav.Onboarding {
			t.Fatalf("expected onboarding navigation, got %#v", msg)
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
}

func TestBrowsingDoesNotNavigate(t *testing.T) {
	t.Parallel()
	m := landing.New()
	for _, k := range []tea.KeyType{tea.KeyUp, tea.KeyDown, tea.KeyDown} {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: k})
		if cmd != nil {
			t.Fatalf("arrow keys must not produce commands")
		}
	}
	if m.View() == "" {
		t.Fatalf("landing view must render")
	}
}
