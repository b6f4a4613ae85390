package authform

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Request is one submission, carrying only the fields its mode uses.
type Request interface {
	// Mode is the form mode the request was made from.
	Mode() Mode
	// Validate checks required fields before anything is sent.
	Validate() error
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (LoginRequest) Mode() Mode { return ModeLogin }

func (r LoginRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	))
}

type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (SignupRequest) Mode() Mode { return ModeSignup }

func (r SignupRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	))
}

type ConfirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"confirmationCode"`
}

func (ConfirmRequest) Mode() Mode { return ModeConfirm }

func (r ConfirmRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required),
	))
}

// ResendRequest asks for a new confirmation code. It is issued from confirm
// mode and never changes the mode.
type ResendRequest struct {
	Email string `json:"email"`
}

func (ResendRequest) Mode() Mode { return ModeConfirm }

func (r ResendRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	))
}
