// Package nav holds the routing messages shared by the views and the root
// model, so views can request navigation without importing the router.
package nav

import tea "github.com/charmbracelet/bubbletea"

type Route string

const (
	Landing    Route = "/"
	Onboarding Route = "/onboarding"
	Dashboard  Route = "/dashboard"
)

func ParseRoute(s string) (Route, bool) {
	switch s {
	case "", "/", "landing":
		return Landing, true
	case "/onboarding", "onboarding":
		return Onboarding, true
	case "/dashboard", "dashboard":
		return Dashboard, true
	}
	return "", false
}

// Welcome is the one-shot payload attached to the post-onboarding
// navigation. The dashboard consumes it once on mount.
type Welcome struct {
	Success  bool
	Username string
}

type NavigateMsg struct {
	Route   Route
	Welcome *Welcome
}

func To(route Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route} }
}

func ToDashboardWithWelcome(username string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: Dashboard, Welcome: &Welcome{Success: true, Username: username}}
	}
}
