package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/viant/tokensale"
	"github.com/viant/tokensale/api"
	"github.com/viant/tokensale/auth"
	"github.com/viant/tokensale/config"
	"github.com/viant/tokensale/internal/logging"
)

// ErrFlowFailed is returned when the backend rejected the command; details are in the printed state.
var ErrFlowFailed = errors.New("request was not successful")

// Service runs commands against one session.
type Service struct {
	options *Options
	config  *config.Config
	session *tokensale.Session
	out     io.Writer
}

// New loads configuration and opens the session; log output goes to logOut.
func New(ctx context.Context, options *Options, out, logOut io.Writer, opts ...tokensale.Option) (*Service, error) {
	cfg, err := config.Load(options.ConfigURL)
	if err != nil {
		return nil, err
	}
	options.apply(cfg)
	logger := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	session, err := tokensale.NewSession(ctx, cfg, append([]tokensale.Option{tokensale.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Service{options: options, config: cfg, session: session, out: out}, nil
}

// Execute runs command and prints the session state.
func (s *Service) Execute(ctx context.Context, command string) error {
	store := s.session.Store
	if requiresBackend(command) {
		if err := s.config.Validate(); err != nil {
			return err
		}
	}
	succeeded := true
	switch command {
	case "login":
		request := api.Credentials{Email: s.options.Login.Email, Password: s.options.Login.Password}
		if err := request.Validate(); err != nil {
			return fmt.Errorf("invalid login: %w", err)
		}
		succeeded = store.Login(ctx, request).Success
	case "register":
		request := api.Registration{Email: s.options.Register.Email}
		if err := request.Validate(); err != nil {
			return fmt.Errorf("invalid registration: %w", err)
		}
		store.ResetRegistrationData()
		store.Register(ctx, request)
		succeeded = store.State().IsRegistered
	case "reset-password":
		request := api.PasswordReset{Email: s.options.ResetPassword.Email}
		if err := request.Validate(); err != nil {
			return fmt.Errorf("invalid password reset: %w", err)
		}
		store.ResetErrors()
		store.ResetPassword(ctx, request)
		succeeded = store.State().IsPasswordReset
	case "new-password":
		cmd := s.options.NewPassword
		request := api.NewPassword{Token: cmd.Token, Password: cmd.Password, ConfirmationPassword: cmd.ConfirmationPassword}
		if err := request.Validate(); err != nil {
			return fmt.Errorf("invalid new password: %w", err)
		}
		store.ResetErrors()
		store.CreateNewPassword(ctx, request)
		succeeded = store.State().IsNewPasswordCreated
	case "logout":
		store.Logout(ctx)
	case "status":
	default:
		return fmt.Errorf("unsupported command: %v", command)
	}
	state := store.State()
	if err := s.print(state); err != nil {
		return err
	}
	if !succeeded {
		return failure(state.Errors)
	}
	return nil
}

// logout and status only touch the stored session
func requiresBackend(command string) bool {
	return command != "logout" && command != "status"
}

func (s *Service) print(state auth.State) error {
	encoder := json.NewEncoder(s.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(state)
}

func failure(errs auth.Errors) error {
	for _, message := range []string{errs.Common, errs.Email, errs.Password, errs.ConfirmationPassword} {
		if message != "" {
			return fmt.Errorf("%w: %v", ErrFlowFailed, message)
		}
	}
	return ErrFlowFailed
}

// Close releases the session.
func (s *Service) Close() error {
	return s.session.Close()
}
