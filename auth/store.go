package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/tokensale/api"
	"github.com/viant/tokensale/storage"
)

// registration field errors may carry several messages, all are shown
const registrationErrorSeparator = "; "

type reaction struct {
	value  func(state *State) string
	effect func(ctx context.Context, value string)
}

// Store coordinates auth requests with the local session state.
type Store struct {
	client          api.Client
	token           *Token
	storage         storage.Storage
	logger          *slog.Logger
	restorationPath string

	// commitMu orders batches with their storage writes; taken before mu.
	commitMu       sync.Mutex
	mu             sync.Mutex
	state          State
	reactions      []reaction
	subscribers    map[int]func(State)
	nextSubscriber int
}

// New creates a Store owning token; email and id are loaded from the token storage.
func New(ctx context.Context, client api.Client, token *Token, opts ...Option) (*Store, error) {
	if client == nil || token == nil {
		return nil, ErrMissingParameters
	}
	options := newOptions(opts)
	ret := &Store{
		client:          client,
		token:           token,
		storage:         token.Storage(),
		logger:          options.logger,
		restorationPath: options.restorationPath,
		subscribers:     map[int]func(State){},
	}
	var err error
	if ret.state.Email, err = ret.load(ctx, storage.KeyEmail); err != nil {
		return nil, err
	}
	if ret.state.ID, err = ret.load(ctx, storage.KeyID); err != nil {
		return nil, err
	}
	ret.reactions = []reaction{
		ret.saveReaction(storage.KeyEmail, func(state *State) string { return state.Email }),
		ret.saveReaction(storage.KeyID, func(state *State) string { return state.ID }),
	}
	return ret, nil
}

func (s *Store) load(ctx context.Context, key string) (string, error) {
	value, _, err := s.storage.GetItem(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to load %v: %w", key, err)
	}
	return value, nil
}

func (s *Store) saveReaction(key string, value func(state *State) string) reaction {
	return reaction{
		value: value,
		effect: func(ctx context.Context, value string) {
			var err error
			if value != "" {
				err = s.storage.SetItem(ctx, key, value)
			} else {
				err = s.storage.RemoveItem(ctx, key)
			}
			if err != nil {
				s.logger.Warn("failed to persist session value", "key", key, "error", err)
			}
		},
	}
}

// tokenChange is a credential change committed with a state batch; a nil value resets it.
type tokenChange struct {
	value *string
}

func setToken(value string) *tokenChange {
	return &tokenChange{value: &value}
}

func resetToken() *tokenChange {
	return &tokenChange{}
}

// update applies mutate as one batch, then runs reactions and notifies subscribers.
func (s *Store) update(ctx context.Context, mutate func(state *State)) {
	s.commit(ctx, nil, mutate)
}

// commit applies the token change and mutate as one batch. Storage writes run
// in commit order; token listeners and subscribers are notified once the
// whole batch is visible.
func (s *Store) commit(ctx context.Context, token *tokenChange, mutate func(state *State)) {
	s.commitMu.Lock()
	if token != nil {
		s.token.commitMu.Lock()
	}
	s.mu.Lock()
	tokenChanged := false
	if token != nil {
		tokenChanged = s.token.swap(token.value)
	}
	prev := s.state
	mutate(&s.state)
	next := s.snapshot(s.state)
	subscribers := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	if token != nil {
		s.token.persist(ctx, token.value)
		s.token.commitMu.Unlock()
	}
	for _, r := range s.reactions {
		if value := r.value(&next); value != r.value(&prev) {
			r.effect(ctx, value)
		}
	}
	s.commitMu.Unlock()

	if tokenChanged {
		s.token.notify(ctx, token.value)
	}
	if len(subscribers) == 0 {
		return
	}
	for _, fn := range subscribers {
		fn(next)
	}
}

// snapshot derives IsAuthenticated, the caller holds mu.
func (s *Store) snapshot(state State) State {
	state.IsAuthenticated = s.IsAuthenticated()
	return state
}

// State returns a snapshot of the session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(s.state)
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.token.Value()
	return ok
}

// Token returns the owned credential.
func (s *Store) Token() *Token {
	return s.token
}

// Subscribe registers fn to receive a snapshot after every state change.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubscriber
	s.nextSubscriber++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// SetID sets the user id.
func (s *Store) SetID(ctx context.Context, id string) {
	s.update(ctx, func(state *State) { state.ID = id })
}

// SetEmail sets the user email.
func (s *Store) SetEmail(ctx context.Context, email string) {
	s.update(ctx, func(state *State) { state.Email = email })
}

// SetToken sets the session credential.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.commit(ctx, setToken(token), func(*State) {})
}

// Login invalidates the current session and authenticates with credentials.
// Failures are reported through State().Errors, never as an error.
func (s *Store) Login(ctx context.Context, credentials api.Credentials) Result {
	s.commit(ctx, resetToken(), func(state *State) {
		state.Errors = Errors{}
		clearSession(state)
		state.IsLoading = true
	})

	resp, err := s.client.Login(ctx, &api.Credentials{Email: credentials.Email, Password: credentials.Password})
	if err != nil {
		payload := api.PayloadOf(err)
		s.logger.Debug("login failed", "email", credentials.Email, "error", err)
		s.update(ctx, func(state *State) {
			state.IsLoading = false
			if payload.HasFieldErrors() {
				state.Errors.Email = payload.Field("username").Last()
				state.Errors.Password = payload.Field("password").Last()
			} else if payload.Reason != "" {
				state.Errors.Common = payload.Reason
			}
		})
		return Result{Success: false}
	}

	data := responseData(resp)
	s.commit(ctx, setToken(data.Token), func(state *State) {
		state.IsLoading = false
		state.Email = credentials.Email
		state.ID = data.ID.String()
	})
	return Result{Success: true}
}

// Register creates an account for registration.Email.
func (s *Store) Register(ctx context.Context, registration api.Registration) {
	s.update(ctx, func(state *State) {
		state.Errors = Errors{}
		state.IsLoading = true
	})

	_, err := s.client.Register(ctx, &api.Registration{Email: registration.Email})
	if err != nil {
		payload := api.PayloadOf(err)
		s.logger.Debug("registration failed", "email", registration.Email, "error", err)
		s.update(ctx, func(state *State) {
			state.IsLoading = false
			if payload.HasFieldErrors() {
				state.Errors.Email = payload.Field("email").Join(registrationErrorSeparator)
			}
		})
		return
	}
	s.update(ctx, func(state *State) {
		state.IsLoading = false
		state.IsRegistered = true
	})
}

// ResetPassword asks the backend to email a password recovery link.
func (s *Store) ResetPassword(ctx context.Context, reset api.PasswordReset) {
	s.update(ctx, func(state *State) { state.IsLoading = true })

	_, err := s.client.ResetPassword(ctx, &api.PasswordReset{
		Email:                       reset.Email,
		PasswordRestorationPagePath: s.restorationPath,
	})
	if err != nil {
		payload := api.PayloadOf(err)
		s.logger.Debug("password reset failed", "email", reset.Email, "error", err)
		s.update(ctx, func(state *State) {
			state.IsLoading = false
			if payload.HasGenericErrors() {
				state.Errors.Common = payload.LastGenericError()
			}
		})
		return
	}
	s.update(ctx, func(state *State) {
		state.IsLoading = false
		state.IsPasswordReset = true
	})
}

// CreateNewPassword sets a new password using a recovery token.
func (s *Store) CreateNewPassword(ctx context.Context, password api.NewPassword) {
	s.update(ctx, func(state *State) {
		state.IsLoading = true
		state.IsPasswordReset = false
	})

	_, err := s.client.CreateNewPassword(ctx, &api.NewPassword{
		Token:                password.Token,
		Password:             password.Password,
		ConfirmationPassword: password.ConfirmationPassword,
	})
	if err != nil {
		payload := api.PayloadOf(err)
		s.logger.Debug("new password creation failed", "error", err)
		s.update(ctx, func(state *State) {
			state.IsLoading = false
			if payload.HasFieldErrors() {
				state.Errors.Password = payload.Field("password").Last()
				state.Errors.ConfirmationPassword = payload.Field("password2").Last()
			} else if payload.Reason != "" {
				state.Errors.Common = payload.Reason
			}
			// generic errors take precedence over reason
			if payload.HasGenericErrors() {
				state.Errors.Common = payload.LastGenericError()
			}
		})
		return
	}
	s.update(ctx, func(state *State) {
		state.IsLoading = false
		state.IsNewPasswordCreated = true
	})
}

// ResetErrors clears all error messages.
func (s *Store) ResetErrors() {
	s.update(context.Background(), func(state *State) { state.Errors = Errors{} })
}

// ResetRegistrationData clears the registration completion flag.
func (s *Store) ResetRegistrationData() {
	s.update(context.Background(), func(state *State) { state.IsRegistered = false })
}

// Logout clears the session identity and credential.
func (s *Store) Logout(ctx context.Context) {
	s.commit(ctx, resetToken(), clearSession)
}

func clearSession(state *State) {
	state.Email = ""
	state.ID = ""
}

func responseData(resp *api.Response) *api.Payload {
	if resp == nil || resp.Data == nil {
		return &api.Payload{}
	}
	return resp.Data
}
