package authform

import (
	"context"
	"fmt"

	"github.com/fragmede/shopauth/internal/api"
)

// Navigation targets.
const (
	PathLogin          = "/login"
	PathHome           = "/"
	PathAdminDashboard = "/admin/dashboard"
)

// Client is the backend the form talks to. *api.Client satisfies it.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, fullName, email, password string) error
	ConfirmEmail(ctx context.Context, email, code string) error
	ResendConfirmation(ctx context.Context, email string) error
	GetProfile(ctx context.Context, token string) (*api.Profile, error)
}

// SessionStore persists the session token, overwriting any prior value.
type SessionStore interface {
	Set(token string) error
}

// Router moves the user to another screen.
type Router interface {
	Navigate(path string)
}

// Deps are the collaborators Dispatch needs.
type Deps struct {
	Client   Client
	Sessions SessionStore
}

// Outcome is the result of dispatching one request.
type Outcome struct {
	Request Request
	Token   string
	Profile *api.Profile
	Err     error
}

// Role is the role from the fetched profile, or "" if none was fetched.
func (o Outcome) Role() string {
	if o.Profile == nil {
		return ""
	}
	return o.Profile.Role
}

// NavigationTarget is where a user with role lands after logging in.
func NavigationTarget(role string) string {
	if role == api.RoleAdmin {
		return PathAdminDashboard
	}
	return PathHome
}

// Dispatch performs the single remote operation selected by req. A successful
// login also persists the token and fetches the profile; the role is needed
// for navigation, so a failed profile fetch fails the login.
func Dispatch(ctx context.Context, deps Deps, req Request) Outcome {
	out := Outcome{Request: req}
	switch r := req.(type) {
	case LoginRequest:
		token, err := deps.Client.Login(ctx, r.Email, r.Password)
		if err != nil {
			out.Err = classifyLogin(err)
			return out
		}
		out.Token = token
		if deps.Sessions != nil {
			if err := deps.Sessions.Set(token); err != nil {
				out.Err = fmt.Errorf("saving session: %w", err)
				return out
			}
		}
		profile, err := deps.Client.GetProfile(ctx, token)
		if err != nil {
			out.Err = classifyLogin(fmt.Errorf("fetching profile: %w", err))
			return out
		}
		out.Profile = profile

	case SignupRequest:
		out.Err = deps.Client.Register(ctx, r.FullName, r.Email, r.Password)

	case ConfirmRequest:
		out.Err = deps.Client.ConfirmEmail(ctx, r.Email, r.Code)

	case ResendRequest:
		out.Err = deps.Client.ResendConfirmation(ctx, r.Email)

	default:
		out.Err = fmt.Errorf("unsupported request %T", req)
	}
	return out
}

func classifyLogin(err error) error {
	msg := Message(err, FallbackLogin)
	if IsAccountDisabled(msg) {
		return &AccountDisabledError{Message: msg, Err: err}
	}
	return err
}
