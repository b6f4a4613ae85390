package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/shopauth/internal/auth"
	"github.com/fragmede/shopauth/internal/authform"
	"github.com/fragmede/shopauth/internal/cache"
	"github.com/fragmede/shopauth/internal/config"
	"github.com/fragmede/shopauth/internal/monitor"
	"github.com/fragmede/shopauth/internal/ui/account"
	"github.com/fragmede/shopauth/internal/ui/authview"
	"github.com/fragmede/shopauth/internal/ui/messages"
	"github.com/fragmede/shopauth/internal/ui/statusbar"
)

// ViewType identifies the active view.
type ViewType int

const (
	ViewRestoring ViewType = iota
	ViewAuth
	ViewHome
	ViewAdmin
)

// App is the root Bubble Tea model. It is also the Router: paths map to views.
type App struct {
	activeView ViewType
	path       string

	// Child models
	authView  authview.Model
	account   account.Model
	statusBar statusbar.Model

	// Shared state
	cfg     config.Config
	client  authform.Client
	cache   *cache.DB
	session *auth.Session
	monitor *monitor.Monitor

	// Command produced by the last Navigate, returned from Update.
	pending tea.Cmd

	width  int
	height int
}

// NewApp creates the root application model.
func NewApp(cfg config.Config, client authform.Client, db *cache.DB, session *auth.Session) *App {
	return &App{
		activeView: ViewRestoring,
		statusBar:  statusbar.New(),
		cfg:        cfg,
		client:     client,
		cache:      db,
		session:    session,
		monitor:    monitor.New(session, cfg.MonitorInterval),
	}
}

// SetProgram starts the session expiry monitor against the running program.
func (a *App) SetProgram(p *tea.Program) {
	a.monitor.Start(p)
}

// Init starts the application by trying to restore a stored session.
func (a *App) Init() tea.Cmd {
	return a.tryRestoreSession()
}

func (a *App) tryRestoreSession() tea.Cmd {
	session := a.session
	client := a.client
	db := a.cache
	ttl := a.cfg.ProfileTTL
	return func() tea.Msg {
		if !session.Load() {
			return messages.RestoreFailedMsg{}
		}
		p, err := session.FetchProfile(context.Background(), client, db, ttl)
		if err != nil {
			return messages.RestoreFailedMsg{Err: err}
		}
		return messages.SessionRestoredMsg{Profile: p}
	}
}

// ActiveView is the view currently shown.
func (a *App) ActiveView() ViewType {
	return a.activeView
}

// Path is the current route.
func (a *App) Path() string {
	return a.path
}

// Navigate switches to the view for path. Paths other than the login screen
// require a stored token.
func (a *App) Navigate(path string) {
	if path != authform.PathLogin && a.session.Token() == "" {
		path = authform.PathLogin
	}
	a.path = path
	a.pending = nil

	switch path {
	case authform.PathLogin:
		a.activeView = ViewAuth
		a.authView = authview.New(authform.Deps{Client: a.client, Sessions: a.session})
		a.authView.SetSize(a.width, a.height-1)
	case authform.PathAdminDashboard:
		a.activeView = ViewAdmin
		a.openAccount(account.KindAdmin)
	default:
		a.path = authform.PathHome
		a.activeView = ViewHome
		a.openAccount(account.KindHome)
	}

	a.statusBar.SetPath(a.path)
	if a.session.Authenticated() {
		a.statusBar.SetUser(a.session.Username())
	} else {
		a.statusBar.SetUser("")
	}
}

func (a *App) openAccount(kind account.Kind) {
	a.account = account.New(kind, a.session.Profile(), a.session, a.client, a.cache, a.cfg.ProfileTTL)
	a.account.SetSize(a.width, a.height-1)
	a.pending = a.account.Init()
}

func (a *App) takePending() tea.Cmd {
	cmd := a.pending
	a.pending = nil
	return cmd
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.statusBar.SetSize(msg.Width)
		switch a.activeView {
		case ViewAuth:
			a.authView.SetSize(msg.Width, contentHeight)
		case ViewHome, ViewAdmin:
			a.account.SetSize(msg.Width, contentHeight)
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, Keys.ForceQuit) {
			a.monitor.Stop()
			return a, tea.Quit
		}
		// The auth view is all text input; only ctrl+c quits there.
		if a.activeView != ViewAuth && key.Matches(msg, Keys.Quit) {
			a.monitor.Stop()
			return a, tea.Quit
		}

	case messages.NavigateMsg:
		if msg.Profile != nil {
			a.session.Authenticate(msg.Profile)
			a.session.CacheProfile(a.cache, msg.Profile)
		}
		a.Navigate(msg.Path)
		return a, a.takePending()

	case messages.SessionRestoredMsg:
		a.session.Authenticate(msg.Profile)
		a.Navigate(authform.NavigationTarget(msg.Profile.Role))
		return a, a.takePending()

	case messages.RestoreFailedMsg:
		if msg.Err != nil {
			log.Printf("restoring session: %v", msg.Err)
			a.statusBar.SetStatus("Session could not be restored, please sign in", true)
		}
		a.Navigate(authform.PathLogin)
		return a, nil

	case messages.LoginFailedMsg:
		a.session.Unauthenticate()
		a.statusBar.SetUser("")
		return a, nil

	case messages.SessionExpiredMsg:
		if a.session.Token() == "" {
			return a, nil
		}
		// A token left over from a failed login: drop it but keep the form.
		if a.activeView == ViewAuth && !a.session.Authenticated() {
			a.clearSession()
			return a, nil
		}
		a.logout()
		a.statusBar.SetStatus("Session expired, please sign in again", true)
		return a, nil

	case messages.LogoutMsg:
		if a.logout() {
			a.statusBar.SetStatus("Logged out", false)
		}
		return a, nil

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
	}

	// Route to active view.
	var cmd tea.Cmd
	switch a.activeView {
	case ViewAuth:
		a.authView, cmd = a.authView.Update(msg)
		cmds = append(cmds, cmd)
	case ViewHome, ViewAdmin:
		a.account, cmd = a.account.Update(msg)
		cmds = append(cmds, cmd)
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// logout drops the stored token and cached profile and shows the login
// screen. It reports whether the token was removed.
func (a *App) logout() bool {
	ok := a.clearSession()
	a.Navigate(authform.PathLogin)
	return ok
}

func (a *App) clearSession() bool {
	ok := true
	if subject := a.session.Claims().Subject; subject != "" {
		if err := a.cache.DeleteProfile(subject); err != nil {
			log.Printf("dropping cached profile: %v", err)
		}
	}
	if err := a.session.Clear(); err != nil {
		log.Printf("clearing session: %v", err)
		a.statusBar.SetStatus("Logout failed: "+err.Error(), true)
		ok = false
	}
	return ok
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewRestoring:
		content = lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			TitleStyle.Render("shopauth")+"\n\n"+DimStyle.Render("Restoring session..."))
	case ViewAuth:
		content = a.authView.View()
	case ViewHome, ViewAdmin:
		content = a.account.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}
