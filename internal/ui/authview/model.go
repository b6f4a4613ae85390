package authview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/shopauth/internal/authform"
	"github.com/fragmede/shopauth/internal/render"
	"github.com/fragmede/shopauth/internal/ui/messages"
)

var (
	accent       = lipgloss.Color("#DB2777")
	focusedStyle = lipgloss.NewStyle().Foreground(accent)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	titleStyle   = lipgloss.NewStyle().Foreground(accent).Bold(true).
			Padding(1, 0)
)

// feedbackWidth is the column at which messages above and below the inputs wrap.
const feedbackWidth = 48

var titles = map[authform.Mode]string{
	authform.ModeLogin:   "Sign in to your account",
	authform.ModeSignup:  "Create a new account",
	authform.ModeConfirm: "Confirm your Email",
}

var buttons = map[authform.Mode]string{
	authform.ModeLogin:   "Sign in",
	authform.ModeSignup:  "Register",
	authform.ModeConfirm: "Confirm",
}

var links = map[authform.Mode]string{
	authform.ModeLogin:   "Don't have an account? Sign Up",
	authform.ModeSignup:  "Already have an account? Sign In",
	authform.ModeConfirm: "Back to Login",
}

// resultMsg carries the outcome of a dispatched request back to Update.
type resultMsg struct {
	Outcome authform.Outcome
}

// recorder is the Router handed to Apply; the app performs the navigation
// once the view returns.
type recorder struct {
	path string
}

func (r *recorder) Navigate(path string) {
	r.path = path
}

// Model is the login / signup / confirm view.
type Model struct {
	form       *authform.Form
	deps       authform.Deps
	inputs     map[authform.Field]*textinput.Model
	focusIndex int
	invalid    string
	submitting bool
	width      int
	height     int
}

// New creates the auth view in login mode.
func New(deps authform.Deps) Model {
	m := Model{
		form:   authform.New(),
		deps:   deps,
		inputs: make(map[authform.Field]*textinput.Model),
	}
	for _, f := range []authform.Field{
		authform.FieldFullName, authform.FieldEmail,
		authform.FieldPassword, authform.FieldConfirmationCode,
	} {
		ti := textinput.New()
		ti.Placeholder = f.Label()
		ti.Width = 36
		if f == authform.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
		}
		m.inputs[f] = &ti
	}
	m.focusFirst()
	return m
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Mode is the form's active mode.
func (m Model) Mode() authform.Mode {
	return m.form.Mode()
}

// Form exposes the underlying state machine.
func (m Model) Form() *authform.Form {
	return m.form
}

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "ctrl+n":
			m.form.SwitchMode(authform.SwitchTarget(m.form.Mode()))
			m.invalid = ""
			m.syncInputs()
			m.focusFirst()
			return m, nil
		case "ctrl+r":
			if m.form.Mode() != authform.ModeConfirm || m.submitting {
				return m, nil
			}
			req := authform.ResendRequest{Email: m.form.Value(authform.FieldEmail)}
			if err := req.Validate(); err != nil {
				m.invalid = err.Error()
				return m, nil
			}
			cmd := m.dispatch(m.form.BeginResend())
			return m, cmd
		case "enter":
			if m.submitting {
				return m, nil
			}
			if err := m.form.Request().Validate(); err != nil {
				m.invalid = err.Error()
				return m, nil
			}
			cmd := m.dispatch(m.form.BeginSubmit())
			return m, cmd
		}

	case resultMsg:
		m.submitting = false
		mode := m.form.Mode()
		var r recorder
		m.form.Apply(msg.Outcome, &r)
		if m.form.Mode() != mode {
			m.syncInputs()
			m.focusFirst()
		}
		if _, ok := msg.Outcome.Request.(authform.LoginRequest); !ok {
			return m, nil
		}
		if r.path != "" {
			profile := msg.Outcome.Profile
			path := r.path
			return m, func() tea.Msg {
				return messages.NavigateMsg{Path: path, Profile: profile}
			}
		}
		err := msg.Outcome.Err
		return m, func() tea.Msg {
			return messages.LoginFailedMsg{Err: err}
		}
	}

	field := m.focused()
	input := m.inputs[field]
	before := input.Value()
	updated, cmd := input.Update(msg)
	*input = updated
	if after := input.Value(); after != before {
		m.form.SetField(field, after)
		m.invalid = ""
	}
	return m, cmd
}

func (m *Model) dispatch(req authform.Request) tea.Cmd {
	m.submitting = true
	m.invalid = ""
	deps := m.deps
	return func() tea.Msg {
		return resultMsg{Outcome: authform.Dispatch(context.Background(), deps, req)}
	}
}

func (m Model) focused() authform.Field {
	fields := authform.VisibleFields(m.form.Mode())
	return fields[m.focusIndex%len(fields)]
}

func (m *Model) moveFocus(delta int) {
	n := len(authform.VisibleFields(m.form.Mode()))
	m.focusIndex = (m.focusIndex + delta + n) % n
	m.applyFocus()
}

func (m *Model) focusFirst() {
	m.focusIndex = 0
	m.applyFocus()
}

func (m *Model) applyFocus() {
	current := m.focused()
	for f, in := range m.inputs {
		if f == current {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// syncInputs copies the form's field values into the text inputs.
func (m *Model) syncInputs() {
	fields := m.form.Fields()
	for f, in := range m.inputs {
		in.SetValue(fields.Get(f))
	}
}

// View renders the form.
func (m Model) View() string {
	mode := m.form.Mode()
	fb := m.form.Feedback()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(titles[mode]))
	sb.WriteString("\n\n")

	if fb.Error != "" {
		sb.WriteString(errorStyle.Render(render.Wrap(fb.Error, feedbackWidth)))
		sb.WriteString("\n\n")
	}
	if fb.Success != "" {
		sb.WriteString(successStyle.Render(render.Wrap(fb.Success, feedbackWidth)))
		sb.WriteString("\n\n")
	}

	for _, f := range authform.VisibleFields(mode) {
		sb.WriteString(labelStyle.Render(f.Label() + ":"))
		sb.WriteString("\n")
		sb.WriteString(m.inputs[f].View())
		sb.WriteString("\n\n")
	}

	if m.invalid != "" {
		sb.WriteString(errorStyle.Render(render.Wrap(m.invalid, feedbackWidth)))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString("Submitting...")
	} else {
		sb.WriteString(focusedStyle.Render("Enter") + " " + buttons[mode])
		if mode == authform.ModeConfirm {
			sb.WriteString(hintStyle.Render(" | ") + focusedStyle.Render("Ctrl+R") + " resend code")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(focusedStyle.Render("Ctrl+N") + " " + hintStyle.Render(links[mode]))

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
