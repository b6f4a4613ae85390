package authform

// Mode is the active form variant. The zero value is ModeLogin.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeSignup:
		return "signup"
	case ModeConfirm:
		return "confirm"
	}
	return "unknown"
}

// SwitchTarget is the mode reached through the user-facing link shown in m.
func SwitchTarget(m Mode) Mode {
	if m == ModeLogin {
		return ModeSignup
	}
	return ModeLogin
}

// Field identifies one input of the form.
type Field int

const (
	FieldFullName Field = iota
	FieldEmail
	FieldPassword
	FieldConfirmationCode
)

func (f Field) String() string {
	switch f {
	case FieldFullName:
		return "fullName"
	case FieldEmail:
		return "email"
	case FieldPassword:
		return "password"
	case FieldConfirmationCode:
		return "confirmationCode"
	}
	return "unknown"
}

// Label is the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldFullName:
		return "Full name"
	case FieldEmail:
		return "Email address"
	case FieldPassword:
		return "Password"
	case FieldConfirmationCode:
		return "Confirmation Code"
	}
	return ""
}

// VisibleFields lists, in display order, the fields shown (and required) in m.
func VisibleFields(m Mode) []Field {
	switch m {
	case ModeSignup:
		return []Field{FieldFullName, FieldEmail, FieldPassword}
	case ModeConfirm:
		return []Field{FieldEmail, FieldConfirmationCode}
	}
	return []Field{FieldEmail, FieldPassword}
}

// Visible reports whether field f is shown in m.
func Visible(m Mode, f Field) bool {
	for _, v := range VisibleFields(m) {
		if v == f {
			return true
		}
	}
	return false
}
