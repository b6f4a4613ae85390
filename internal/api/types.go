package api

// RoleAdmin is the role the backend assigns to administrators.
const RoleAdmin = "ADMIN"

// Backend endpoint paths, relative to the configured base URL.
const (
	PathLogin              = "/api/auth/login"
	PathRegister           = "/api/auth/register"
	PathConfirmEmail       = "/api/auth/confirm-email"
	PathResendConfirmation = "/api/auth/resend-confirmation-email"
	PathProfile            = "/api/users/profile"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup request body.
type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailConfirmation is the confirm-email request body.
type EmailConfirmation struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmationCode"`
}

type resendRequest struct {
	Email string `json:"email"`
}

// loginResponse mirrors the fields of the backend's login payload we use.
type loginResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

// messageResponse is the backend's generic {"message": "..."} body.
type messageResponse struct {
	Message string `json:"message"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	ID             int64  `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	EmailConfirmed bool   `json:"emailConfirmed"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
