// Package authform implements the login / signup / confirm form as a small
// state machine independent of any UI toolkit.
//
// A submission is split in three steps so the remote call can run off the UI
// goroutine: BeginSubmit snapshots the active mode's request, Dispatch
// performs the remote calls, and Apply moves the form according to the
// outcome. Apply does not check that the form is still in the mode the
// request was made from; a late outcome lands on whatever mode is active.
package authform

import "context"

// Feedback messages shown after a remote call.
const (
	MsgLoginSuccess    = "Login successful! Redirecting..."
	MsgAccountDisabled = "Your account is not enabled. Please confirm your email."
	MsgSignupSuccess   = "Registration successful! Please check your email for a confirmation code, then enter it below."
	MsgConfirmSuccess  = "Email confirmed successfully! You can now log in."
	MsgResendSuccess   = "A new confirmation email has been sent."
)

// Fields holds every input value regardless of mode. Values of fields that are
// not visible in the active mode are kept but never sent.
type Fields struct {
	FullName         string
	Email            string
	Password         string
	ConfirmationCode string
}

// Get returns the value of f.
func (fs Fields) Get(f Field) string {
	switch f {
	case FieldFullName:
		return fs.FullName
	case FieldEmail:
		return fs.Email
	case FieldPassword:
		return fs.Password
	case FieldConfirmationCode:
		return fs.ConfirmationCode
	}
	return ""
}

func (fs *Fields) set(f Field, v string) {
	switch f {
	case FieldFullName:
		fs.FullName = v
	case FieldEmail:
		fs.Email = v
	case FieldPassword:
		fs.Password = v
	case FieldConfirmationCode:
		fs.ConfirmationCode = v
	}
}

// Feedback is the message shown above the form. At most one of Error and
// Success is non-empty.
type Feedback struct {
	Error   string
	Success string
}

// Form is the authentication form state.
type Form struct {
	mode     Mode
	fields   Fields
	feedback Feedback
}

// New returns a form in login mode with empty fields.
func New() *Form {
	return &Form{mode: ModeLogin}
}

func (f *Form) Mode() Mode         { return f.mode }
func (f *Form) Fields() Fields     { return f.fields }
func (f *Form) Feedback() Feedback { return f.feedback }

// Value returns the current value of field.
func (f *Form) Value(field Field) string {
	return f.fields.Get(field)
}

// SetField records an edit. Any feedback is cleared.
func (f *Form) SetField(field Field, value string) {
	f.fields.set(field, value)
	f.feedback = Feedback{}
}

// SwitchMode is the user-initiated mode change: all fields and feedback reset.
func (f *Form) SwitchMode(m Mode) {
	f.mode = m
	f.fields = Fields{}
	f.feedback = Feedback{}
}

// Request snapshots the active mode's request.
func (f *Form) Request() Request {
	switch f.mode {
	case ModeSignup:
		return SignupRequest{
			FullName: f.fields.FullName,
			Email:    f.fields.Email,
			Password: f.fields.Password,
		}
	case ModeConfirm:
		return ConfirmRequest{
			Email: f.fields.Email,
			Code:  f.fields.ConfirmationCode,
		}
	}
	return LoginRequest{
		Email:    f.fields.Email,
		Password: f.fields.Password,
	}
}

// BeginSubmit clears feedback and returns the request to dispatch.
func (f *Form) BeginSubmit() Request {
	f.feedback = Feedback{}
	return f.Request()
}

// BeginResend clears feedback and returns a request for a new confirmation
// code for the current email.
func (f *Form) BeginResend() ResendRequest {
	f.feedback = Feedback{}
	return ResendRequest{Email: f.fields.Email}
}

// Submit dispatches the active mode's request and applies the outcome.
func (f *Form) Submit(ctx context.Context, deps Deps, r Router) Outcome {
	out := Dispatch(ctx, deps, f.BeginSubmit())
	f.Apply(out, r)
	return out
}

// Apply moves the form according to o. Failures never change the mode except
// for a login refused because the account is disabled, which forces confirm.
// Server-driven transitions keep the field values so the email carries over.
func (f *Form) Apply(o Outcome, r Router) {
	switch o.Request.(type) {
	case LoginRequest:
		if o.Err != nil {
			if IsAccountDisabledError(o.Err) {
				f.setError(MsgAccountDisabled)
				f.mode = ModeConfirm
				return
			}
			f.setError(Message(o.Err, FallbackLogin))
			return
		}
		f.setSuccess(MsgLoginSuccess)
		if r != nil {
			r.Navigate(NavigationTarget(o.Role()))
		}

	case SignupRequest:
		if o.Err != nil {
			f.setError(Message(o.Err, FallbackSignup))
			return
		}
		f.setSuccess(MsgSignupSuccess)
		f.mode = ModeConfirm

	case ConfirmRequest:
		if o.Err != nil {
			f.setError(Message(o.Err, FallbackConfirm))
			return
		}
		f.setSuccess(MsgConfirmSuccess)
		f.mode = ModeLogin

	case ResendRequest:
		if o.Err != nil {
			f.setError(Message(o.Err, FallbackResend))
			return
		}
		f.setSuccess(MsgResendSuccess)
	}
}

func (f *Form) setError(msg string) {
	f.feedback = Feedback{Error: msg}
}

func (f *Form) setSuccess(msg string) {
	f.feedback = Feedback{Success: msg}
}
