package mock

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/viant/tokensale/api"
)

const minPasswordLength = 8

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// defaultLoginHandler handles login requests
func (s *Service) defaultLoginHandler(w http.ResponseWriter, r *http.Request) {
	var request api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"reason": "Malformed request"})
		return
	}
	fieldErrors := map[string][]string{}
	if request.Email == "" {
		fieldErrors["username"] = []string{"This field is required."}
	}
	if request.Password == "" {
		fieldErrors["password"] = []string{"This field is required."}
	}
	if len(fieldErrors) > 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"fieldErrors": fieldErrors})
		return
	}
	s.mu.Lock()
	user, ok := s.users[request.Email]
	s.mu.Unlock()
	if !ok || user.Password == "" || user.Password != request.Password {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"reason": "Unable to log in with provided credentials."})
		return
	}
	token, err := s.createJWT(user)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	// ids are numeric on the wire
	WriteJSON(w, http.StatusOK, map[string]any{"token": token, "id": user.ID})
}

// defaultRegisterHandler creates a password-less account and issues a token to set the password
func (s *Service) defaultRegisterHandler(w http.ResponseWriter, r *http.Request) {
	var request api.Registration
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"reason": "Malformed request"})
		return
	}
	if !strings.Contains(request.Email, "@") {
		// single message form
		WriteJSON(w, http.StatusBadRequest, map[string]any{"fieldErrors": map[string]any{"email": "Enter a valid email address."}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[request.Email]; ok {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"fieldErrors": map[string]any{"email": []string{"User with this email already exists."}}})
		return
	}
	s.addUser(request.Email, "")
	s.issueResetToken(request.Email)
	WriteJSON(w, http.StatusCreated, map[string]any{})
}

// defaultResetPasswordHandler issues a recovery token
func (s *Service) defaultResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var request api.PasswordReset
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"reason": "Malformed request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restorationPaths = append(s.restorationPaths, request.PasswordRestorationPagePath)
	if _, ok := s.users[request.Email]; !ok {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"genericErrors": []string{"User with this email does not exist."}})
		return
	}
	s.issueResetToken(request.Email)
	WriteJSON(w, http.StatusOK, map[string]any{})
}

// defaultCreateNewPasswordHandler sets a password for a recovery token
func (s *Service) defaultCreateNewPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var request api.NewPassword
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"reason": "Malformed request"})
		return
	}
	fieldErrors := map[string][]string{}
	if len(request.Password) < minPasswordLength {
		fieldErrors["password"] = []string{"This password is too short."}
	}
	if request.Password != request.ConfirmationPassword {
		fieldErrors["password2"] = []string{"Passwords do not match."}
	}
	if len(fieldErrors) > 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"fieldErrors": fieldErrors})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.resetTokens[request.Token]
	if !ok {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"reason": "Invalid or expired token."})
		return
	}
	delete(s.resetTokens, request.Token)
	s.users[email].Password = request.Password
	WriteJSON(w, http.StatusOK, map[string]any{})
}

// defaultProfileHandler simulates a protected resource
func (s *Service) defaultProfileHandler(w http.ResponseWriter, r *http.Request) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		w.Header().Set("WWW-Authenticate", `Bearer realm="`+s.Issuer+`"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	claims, err := s.verifyJWT(raw)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"id": claims["sub"], "email": claims["email"]})
}
