package api

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Client is the backend capability used by the auth store.
type Client interface {
	Login(ctx context.Context, request *Credentials) (*Response, error)
	Register(ctx context.Context, request *Registration) (*Response, error)
	ResetPassword(ctx context.Context, request *PasswordReset) (*Response, error)
	CreateNewPassword(ctx context.Context, request *NewPassword) (*Response, error)
}

type (
	// Credentials is the login request.
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// Registration is the sign-up request; the password is set later via the emailed link.
	Registration struct {
		Email string `json:"email"`
	}

	// PasswordReset requests a recovery email; PasswordRestorationPagePath is
	// the front end page the backend links to.
	PasswordReset struct {
		Email                       string `json:"email"`
		PasswordRestorationPagePath string `json:"passwordRestorationPagePath"`
	}

	// NewPassword completes password recovery with the emailed token.
	NewPassword struct {
		Token                string `json:"token"`
		Password             string `json:"password"`
		ConfirmationPassword string `json:"password2"`
	}
)

// Validate checks the request before it is submitted.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (r PasswordReset) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (n NewPassword) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Token, validation.Required),
		validation.Field(&n.Password, validation.Required),
		validation.Field(&n.ConfirmationPassword, validation.Required, validation.By(equals(n.Password))),
	)
}

func equals(expect string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expect {
			return errors.New("values must match")
		}
		return nil
	}
}
