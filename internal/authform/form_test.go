package authform

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/shopauth/internal/api"
)

type fakeClient struct {
	token       string
	loginErr    error
	profile     *api.Profile
	profileErr  error
	registerErr error
	confirmErr  error
	resendErr   error

	calls []string
}

func (c *fakeClient) Login(_ context.Context, email, password string) (string, error) {
	c.calls = append(c.calls, "login:"+email+":"+password)
	return c.token, c.loginErr
}

func (c *fakeClient) Register(_ context.Context, fullName, email, password string) error {
	c.calls = append(c.calls, "register:"+fullName+":"+email+":"+password)
	return c.registerErr
}

func (c *fakeClient) ConfirmEmail(_ context.Context, email, code string) error {
	c.calls = append(c.calls, "confirm:"+email+":"+code)
	return c.confirmErr
}

func (c *fakeClient) ResendConfirmation(_ context.Context, email string) error {
	c.calls = append(c.calls, "resend:"+email)
	return c.resendErr
}

func (c *fakeClient) GetProfile(_ context.Context, token string) (*api.Profile, error) {
	c.calls = append(c.calls, "profile:"+token)
	return c.profile, c.profileErr
}

type fakeStore struct {
	tokens []string
	err    error
}

func (s *fakeStore) Set(token string) error {
	s.tokens = append(s.tokens, token)
	return s.err
}

type fakeRouter struct {
	paths []string
}

func (r *fakeRouter) Navigate(path string) {
	r.paths = append(r.paths, path)
}

func remote(msg string) error {
	return &api.RemoteError{Status: http.StatusUnauthorized, Message: msg, Body: `{"message":"` + msg + `"}`}
}

func fill(f *Form, fields Fields) {
	for _, field := range VisibleFields(f.Mode()) {
		f.SetField(field, fields.Get(field))
	}
}

func assertFeedbackExclusive(t *testing.T, f *Form) {
	t.Helper()
	fb := f.Feedback()
	assert.False(t, fb.Error != "" && fb.Success != "", "both error and success set: %+v", fb)
}

func TestNewFormStartsInLogin(t *testing.T) {
	f := New()
	assert.Equal(t, ModeLogin, f.Mode())
	assert.Equal(t, Fields{}, f.Fields())
	assert.Equal(t, Feedback{}, f.Feedback())
}

func TestVisibleFields(t *testing.T) {
	assert.Equal(t, []Field{FieldEmail, FieldPassword}, VisibleFields(ModeLogin))
	assert.Equal(t, []Field{FieldFullName, FieldEmail, FieldPassword}, VisibleFields(ModeSignup))
	assert.Equal(t, []Field{FieldEmail, FieldConfirmationCode}, VisibleFields(ModeConfirm))

	assert.True(t, Visible(ModeConfirm, FieldConfirmationCode))
	assert.False(t, Visible(ModeLogin, FieldFullName))
}

func TestSwitchModeResetsFieldsAndFeedback(t *testing.T) {
	for _, from := range []Mode{ModeLogin, ModeSignup, ModeConfirm} {
		for _, to := range []Mode{ModeLogin, ModeSignup, ModeConfirm} {
			f := New()
			f.SwitchMode(from)
			f.SetField(FieldFullName, "Ada")
			f.SetField(FieldEmail, "ada@b.com")
			f.SetField(FieldPassword, "pw")
			f.SetField(FieldConfirmationCode, "123")
			f.setError("boom")

			f.SwitchMode(to)
			assert.Equal(t, to, f.Mode())
			assert.Equal(t, Fields{}, f.Fields(), "%s -> %s", from, to)
			assert.Equal(t, Feedback{}, f.Feedback(), "%s -> %s", from, to)
		}
	}
}

func TestSwitchTarget(t *testing.T) {
	assert.Equal(t, ModeSignup, SwitchTarget(ModeLogin))
	assert.Equal(t, ModeLogin, SwitchTarget(ModeSignup))
	assert.Equal(t, ModeLogin, SwitchTarget(ModeConfirm))
}

func TestSetFieldClearsFeedback(t *testing.T) {
	f := New()
	f.setSuccess("yay")
	f.SetField(FieldEmail, "a")
	assert.Equal(t, Feedback{}, f.Feedback())
	assert.Equal(t, "a", f.Value(FieldEmail))
}

func TestRequestCarriesOnlyModeFields(t *testing.T) {
	f := New()
	f.SetField(FieldFullName, "ignored")
	f.SetField(FieldEmail, "a@b.com")
	f.SetField(FieldPassword, "pw")
	f.SetField(FieldConfirmationCode, "ignored")
	assert.Equal(t, LoginRequest{Email: "a@b.com", Password: "pw"}, f.Request())

	f.SwitchMode(ModeConfirm)
	f.SetField(FieldEmail, "a@b.com")
	f.SetField(FieldPassword, "ignored")
	f.SetField(FieldConfirmationCode, "42")
	assert.Equal(t, ConfirmRequest{Email: "a@b.com", Code: "42"}, f.Request())
}

func TestLoginSuccessNavigatesByRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"ADMIN", PathAdminDashboard},
		{"USER", PathHome},
		{"", PathHome},
		{"admin", PathHome},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			client := &fakeClient{token: "tok", profile: &api.Profile{Role: tt.role}}
			store := &fakeStore{}
			router := &fakeRouter{}

			f := New()
			fill(f, Fields{Email: "a@b.com", Password: "pw"})
			out := f.Submit(context.Background(), Deps{Client: client, Sessions: store}, router)

			require.NoError(t, out.Err)
			assert.Equal(t, []string{"tok"}, store.tokens)
			assert.Equal(t, []string{tt.want}, router.paths)
			assert.Equal(t, []string{"login:a@b.com:pw", "profile:tok"}, client.calls)
			assert.Equal(t, MsgLoginSuccess, f.Feedback().Success)
			assertFeedbackExclusive(t, f)
		})
	}
}

func TestLoginDisabledForcesConfirm(t *testing.T) {
	client := &fakeClient{loginErr: remote("Account is disabled")}
	store := &fakeStore{}
	router := &fakeRouter{}

	f := New()
	fill(f, Fields{Email: "a@b.com", Password: "wrong"})
	out := f.Submit(context.Background(), Deps{Client: client, Sessions: store}, router)

	assert.True(t, errors.Is(out.Err, ErrAccountDisabled))
	assert.Equal(t, ModeConfirm, f.Mode())
	assert.Equal(t, MsgAccountDisabled, f.Feedback().Error)
	assert.Empty(t, f.Feedback().Success)
	assert.Equal(t, "a@b.com", f.Value(FieldEmail))
	assert.False(t, Visible(f.Mode(), FieldPassword))
	assert.Empty(t, store.tokens)
	assert.Empty(t, router.paths)
}

func TestLoginDisabledMatchesRawBody(t *testing.T) {
	client := &fakeClient{loginErr: &api.RemoteError{Status: 401, Body: "User is disabled"}}
	f := New()
	f.Submit(context.Background(), Deps{Client: client}, nil)
	assert.Equal(t, ModeConfirm, f.Mode())
}

func TestLoginOtherErrorStaysInLogin(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"structured", remote("Bad credentials"), "Bad credentials"},
		{"raw body", &api.RemoteError{Status: 500, Body: "boom"}, "boom"},
		{"html body", &api.RemoteError{Status: 502, Body: "<html><body><h1>Bad Gateway</h1></body></html>"}, "Bad Gateway"},
		{"empty body", &api.RemoteError{Status: 500}, FallbackLogin},
		{"transport", errors.New("dial tcp: connection refused"), FallbackLogin},
		{"uppercase Disabled", remote("Disabled by admin"), "Disabled by admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			fill(f, Fields{Email: "a@b.com", Password: "pw"})
			router := &fakeRouter{}
			f.Submit(context.Background(), Deps{Client: &fakeClient{loginErr: tt.err}}, router)

			assert.Equal(t, ModeLogin, f.Mode())
			assert.Equal(t, tt.want, f.Feedback().Error)
			assert.Empty(t, router.paths)
			assertFeedbackExclusive(t, f)
		})
	}
}

func TestLoginProfileFailureSurfacesAsLoginError(t *testing.T) {
	client := &fakeClient{token: "tok", profileErr: remote("Token expired")}
	store := &fakeStore{}
	router := &fakeRouter{}

	f := New()
	fill(f, Fields{Email: "a@b.com", Password: "pw"})
	out := f.Submit(context.Background(), Deps{Client: client, Sessions: store}, router)

	require.Error(t, out.Err)
	assert.Equal(t, []string{"tok"}, store.tokens, "token stays persisted")
	assert.Empty(t, router.paths)
	assert.Equal(t, ModeLogin, f.Mode())
	assert.Equal(t, Feedback{Error: "Token expired"}, f.Feedback())
}

func TestLoginProfileDisabledForcesConfirm(t *testing.T) {
	client := &fakeClient{token: "tok", profileErr: remote("User account is disabled")}
	f := New()
	f.Submit(context.Background(), Deps{Client: client, Sessions: &fakeStore{}}, &fakeRouter{})
	assert.Equal(t, ModeConfirm, f.Mode())
}

func TestLoginSessionStoreFailure(t *testing.T) {
	client := &fakeClient{token: "tok", profile: &api.Profile{Role: "USER"}}
	router := &fakeRouter{}
	f := New()
	f.Submit(context.Background(), Deps{Client: client, Sessions: &fakeStore{err: errors.New("disk full")}}, router)

	assert.Equal(t, FallbackLogin, f.Feedback().Error)
	assert.Equal(t, []string{"login::"}, client.calls)
	assert.Empty(t, router.paths)
}

func TestSignupTransitions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := &fakeClient{}
		f := New()
		f.SwitchMode(ModeSignup)
		fill(f, Fields{FullName: "Ada", Email: "ada@b.com", Password: "pw"})
		f.Submit(context.Background(), Deps{Client: client}, nil)

		assert.Equal(t, []string{"register:Ada:ada@b.com:pw"}, client.calls)
		assert.Equal(t, ModeConfirm, f.Mode())
		assert.Equal(t, Feedback{Success: MsgSignupSuccess}, f.Feedback())
		assert.Equal(t, "ada@b.com", f.Value(FieldEmail))
	})
	t.Run("failure", func(t *testing.T) {
		f := New()
		f.SwitchMode(ModeSignup)
		f.Submit(context.Background(), Deps{Client: &fakeClient{registerErr: remote("Error: Email is already in use!")}}, nil)

		assert.Equal(t, ModeSignup, f.Mode())
		assert.Equal(t, Feedback{Error: "Error: Email is already in use!"}, f.Feedback())
	})
	t.Run("failure fallback", func(t *testing.T) {
		f := New()
		f.SwitchMode(ModeSignup)
		f.Submit(context.Background(), Deps{Client: &fakeClient{registerErr: errors.New("timeout")}}, nil)
		assert.Equal(t, FallbackSignup, f.Feedback().Error)
	})
}

func TestConfirmTransitions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := &fakeClient{}
		f := New()
		f.SwitchMode(ModeConfirm)
		fill(f, Fields{Email: "ada@b.com", ConfirmationCode: "123456"})
		f.Submit(context.Background(), Deps{Client: client}, nil)

		assert.Equal(t, []string{"confirm:ada@b.com:123456"}, client.calls)
		assert.Equal(t, ModeLogin, f.Mode())
		assert.Equal(t, Feedback{Success: MsgConfirmSuccess}, f.Feedback())
	})
	t.Run("failure", func(t *testing.T) {
		f := New()
		f.SwitchMode(ModeConfirm)
		f.Submit(context.Background(), Deps{Client: &fakeClient{confirmErr: &api.RemoteError{Status: 400}}}, nil)

		assert.Equal(t, ModeConfirm, f.Mode())
		assert.Equal(t, Feedback{Error: FallbackConfirm}, f.Feedback())
	})
}

func TestResendKeepsConfirmMode(t *testing.T) {
	client := &fakeClient{}
	f := New()
	f.SwitchMode(ModeConfirm)
	f.SetField(FieldEmail, "ada@b.com")

	req := f.BeginResend()
	f.Apply(Dispatch(context.Background(), Deps{Client: client}, req), nil)
	assert.Equal(t, []string{"resend:ada@b.com"}, client.calls)
	assert.Equal(t, ModeConfirm, f.Mode())
	assert.Equal(t, Feedback{Success: MsgResendSuccess}, f.Feedback())

	client.resendErr = remote("User not found")
	f.Apply(Dispatch(context.Background(), Deps{Client: client}, f.BeginResend()), nil)
	assert.Equal(t, ModeConfirm, f.Mode())
	assert.Equal(t, Feedback{Error: "User not found"}, f.Feedback())
}

func TestBeginSubmitClearsFeedback(t *testing.T) {
	f := New()
	f.setError("old")
	req := f.BeginSubmit()
	assert.Equal(t, ModeLogin, req.Mode())
	assert.Equal(t, Feedback{}, f.Feedback())
}

// A result that arrives after the user switched modes is still applied. This
// reproduces the behavior of the form this replaces and is kept on purpose.
func TestLateOutcomeAppliedAfterModeSwitch(t *testing.T) {
	t.Run("signup success lands after switching to login", func(t *testing.T) {
		f := New()
		f.SwitchMode(ModeSignup)
		fill(f, Fields{FullName: "Ada", Email: "ada@b.com", Password: "pw"})
		req := f.BeginSubmit()

		f.SwitchMode(ModeLogin)
		f.Apply(Dispatch(context.Background(), Deps{Client: &fakeClient{}}, req), nil)

		assert.Equal(t, ModeConfirm, f.Mode())
		assert.Equal(t, MsgSignupSuccess, f.Feedback().Success)
	})
	t.Run("login error lands in signup mode", func(t *testing.T) {
		f := New()
		req := f.BeginSubmit()

		f.SwitchMode(ModeSignup)
		f.Apply(Dispatch(context.Background(), Deps{Client: &fakeClient{loginErr: remote("Bad credentials")}}, req), nil)

		assert.Equal(t, ModeSignup, f.Mode())
		assert.Equal(t, "Bad credentials", f.Feedback().Error)
	})
}

func TestUnsupportedRequest(t *testing.T) {
	out := Dispatch(context.Background(), Deps{Client: &fakeClient{}}, nil)
	require.Error(t, out.Err)
}

func TestNavigationTarget(t *testing.T) {
	assert.Equal(t, PathAdminDashboard, NavigationTarget(api.RoleAdmin))
	assert.Equal(t, PathHome, NavigationTarget("USER"))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "login", ModeLogin.String())
	assert.Equal(t, "signup", ModeSignup.String())
	assert.Equal(t, "confirm", ModeConfirm.String())
	assert.Equal(t, "confirmationCode", FieldConfirmationCode.String())
}
