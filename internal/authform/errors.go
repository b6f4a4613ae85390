package authform

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/fragmede/shopauth/internal/api"
	"github.com/fragmede/shopauth/internal/render"
)

// Fallback messages used when a failed call carries no readable text.
const (
	FallbackLogin   = "An error occurred."
	FallbackSignup  = "Registration failed."
	FallbackConfirm = "Confirmation failed."
	FallbackResend  = "Could not resend the confirmation code."
)

// disabledMarker is matched against the server's wording; the backend has no
// structured code for unconfirmed accounts.
const disabledMarker = "disabled"

// ErrAccountDisabled marks a login refused because the account is not yet
// confirmed.
var ErrAccountDisabled = errors.New("account disabled")

// AccountDisabledError is a remote failure whose message contains "disabled".
type AccountDisabledError struct {
	Message string
	Err     error
}

func (e *AccountDisabledError) Error() string { return e.Message }

func (e *AccountDisabledError) Unwrap() error { return e.Err }

func (e *AccountDisabledError) Is(target error) bool { return target == ErrAccountDisabled }

// IsAccountDisabledError reports whether err marks a disabled account.
func IsAccountDisabledError(err error) bool {
	return errors.Is(err, ErrAccountDisabled)
}

// IsAccountDisabled reports whether a server message says the account is
// disabled. The match is a case-sensitive substring test.
func IsAccountDisabled(msg string) bool {
	return strings.Contains(msg, disabledMarker)
}

// Message extracts display text from a failed call: the structured message
// field, then the raw response body, then fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var remote *api.RemoteError
	if errors.As(err, &remote) {
		if remote.Message != "" {
			return remote.Message
		}
		if body := render.BodyText(remote.Body); body != "" {
			return body
		}
	}
	return fallback
}

// ValidationError lists the fields of a request that are missing or malformed.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Errors.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Errors
}

// Fields returns the names of the offending fields, sorted.
func (e *ValidationError) Fields() []string {
	names := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		return &ValidationError{Errors: errs}
	}
	return err
}
