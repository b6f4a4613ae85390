package account

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/shopauth/internal/api"
	"github.com/fragmede/shopauth/internal/auth"
	"github.com/fragmede/shopauth/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DB2777")).Bold(true).Padding(1, 0)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Kind selects which landing screen the view renders.
type Kind int

const (
	KindHome Kind = iota
	KindAdmin
)

// Model shows the logged-in user's account.
type Model struct {
	kind       Kind
	profile    *api.Profile
	loading    bool
	refreshing bool // user-requested reload in flight
	err        string

	session *auth.Session
	fetcher auth.ProfileFetcher
	cache   auth.ProfileCache
	ttl     time.Duration
	width   int
	height  int
}

// New creates the view. profile may be nil, in which case Init loads it.
func New(kind Kind, profile *api.Profile, session *auth.Session, fetcher auth.ProfileFetcher, pc auth.ProfileCache, ttl time.Duration) Model {
	return Model{
		kind:    kind,
		profile: profile,
		loading: profile == nil,
		session: session,
		fetcher: fetcher,
		cache:   pc,
		ttl:     ttl,
	}
}

// Init loads the profile if it was not handed over by the login flow.
func (m Model) Init() tea.Cmd {
	if m.profile != nil {
		return nil
	}
	return m.load()
}

func (m Model) load() tea.Cmd {
	return m.fetch(m.session.FetchProfile)
}

// refresh skips the profile cache so server-side changes show up.
func (m Model) refresh() tea.Cmd {
	return m.fetch(m.session.RefreshProfile)
}

type fetchFunc func(context.Context, auth.ProfileFetcher, auth.ProfileCache, time.Duration) (*api.Profile, error)

func (m Model) fetch(fn fetchFunc) tea.Cmd {
	fetcher := m.fetcher
	pc := m.cache
	ttl := m.ttl
	return func() tea.Msg {
		p, err := fn(context.Background(), fetcher, pc, ttl)
		return messages.ProfileLoadedMsg{Profile: p, Err: err}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Kind is the screen variant.
func (m Model) Kind() Kind {
	return m.kind
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.refreshing = true
			m.err = ""
			return m, m.refresh()
		case "ctrl+l":
			return m, func() tea.Msg { return messages.LogoutMsg{} }
		}

	case messages.ProfileLoadedMsg:
		m.loading = false
		refreshed := m.refreshing
		m.refreshing = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.profile = msg.Profile
		if refreshed {
			return m, func() tea.Msg {
				return messages.StatusMsg{Text: "Profile refreshed"}
			}
		}
	}
	return m, nil
}

// View renders the account screen.
func (m Model) View() string {
	title := "Welcome"
	if m.kind == KindAdmin {
		title = "Admin Dashboard"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString("Loading profile...\n")
	case m.err != "":
		sb.WriteString(errorStyle.Render("Error: " + m.err))
		sb.WriteString("\n")
	case m.profile != nil:
		p := m.profile
		if p.FullName != "" {
			sb.WriteString(labelStyle.Render("Name: ") + valueStyle.Render(p.FullName) + "\n")
		}
		sb.WriteString(labelStyle.Render("Email: ") + valueStyle.Render(p.Email) + "\n")
		sb.WriteString(labelStyle.Render("Role: ") + valueStyle.Render(p.Role) + "\n")
		confirmed := "no"
		if p.EmailConfirmed {
			confirmed = "yes"
		}
		sb.WriteString(labelStyle.Render("Email confirmed: ") + valueStyle.Render(confirmed) + "\n")
	}

	if exp := m.session.Claims().ExpiresAt; !exp.IsZero() {
		sb.WriteString(labelStyle.Render("Session expires: ") +
			valueStyle.Render(exp.Local().Format(time.RFC1123)) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("r refresh | ctrl+l log out | q quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
