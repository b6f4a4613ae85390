package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#DB2777")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#555555")).
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

type tab struct {
	label string
	path  string
}

var tabs = []tab{
	{"Account", "/login"},
	{"Home", "/"},
	{"Admin", "/admin/dashboard"},
}

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	activePath string
	username   string
	statusText string
	isError    bool
}

// New creates a new status bar.
func New() Model {
	return Model{}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetPath highlights the tab for the current route.
func (m *Model) SetPath(path string) {
	m.activePath = path
}

// SetUser sets the logged-in user; "" shows the signed-out hint.
func (m *Model) SetUser(username string) {
	m.username = username
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	var tabsStr string
	for _, t := range tabs {
		if t.path == m.activePath {
			tabsStr += activeTabStyle.Render(t.label)
		} else {
			tabsStr += inactiveTabStyle.Render(t.label)
		}
	}

	var right string
	if m.statusText != "" {
		if m.isError {
			right += errorTextStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.username != "" {
		right += userStyle.Render(m.username)
	} else {
		right += statusTextStyle.Render("not signed in")
	}

	tabsWidth := lipgloss.Width(tabsStr)
	rightWidth := lipgloss.Width(right)
	gap := m.width - tabsWidth - rightWidth
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}
