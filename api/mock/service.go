package mock

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ProfilePath is a protected resource requiring a bearer token.
const ProfilePath = "/auth/profile/"

// User is a backend account.
type User struct {
	ID       int
	Email    string
	Password string
}

// Service is the mock backend state plus overridable endpoint handlers.
type Service struct {
	Issuer     string
	SigningKey []byte
	TokenTTL   time.Duration

	LoginHandler             http.HandlerFunc
	RegisterHandler          http.HandlerFunc
	ResetPasswordHandler     http.HandlerFunc
	CreateNewPasswordHandler http.HandlerFunc
	ProfileHandler           http.HandlerFunc

	mu               sync.Mutex
	nextID           int
	users            map[string]*User
	resetTokens      map[string]string
	restorationPaths []string
}

// NewService creates an empty backend.
func NewService() *Service {
	return &Service{
		Issuer:      "tokensale-mock",
		SigningKey:  []byte(uuid.NewString()),
		TokenTTL:    time.Hour,
		users:       map[string]*User{},
		resetTokens: map[string]string{},
	}
}

// AddUser registers an account with a password.
func (s *Service) AddUser(email, password string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(email, password)
}

func (s *Service) addUser(email, password string) *User {
	s.nextID++
	user := &User{ID: s.nextID, Email: email, Password: password}
	s.users[email] = user
	return user
}

// User returns account by email.
func (s *Service) User(email string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	return user, ok
}

// ResetToken returns the pending recovery token issued for email.
func (s *Service) ResetToken(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, owner := range s.resetTokens {
		if owner == email {
			return token, true
		}
	}
	return "", false
}

// RestorationPaths returns the page paths received with reset requests.
func (s *Service) RestorationPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.restorationPaths...)
}

func (s *Service) issueResetToken(email string) string {
	token := uuid.NewString()
	s.resetTokens[token] = email
	return token
}

// createJWT signs a session token for user
func (s *Service) createJWT(user *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   s.Issuer,
		"sub":   strconv.Itoa(user.ID),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.SigningKey)
}

func (s *Service) verifyJWT(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.SigningKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.Issuer))
	return claims, err
}

// NewHTTPTestServer starts an httptest server backed by service.
func NewHTTPTestServer(service *Service) *httptest.Server {
	return httptest.NewServer(&Handler{Service: service})
}
