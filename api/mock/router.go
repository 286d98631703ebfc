package mock

import (
	"net/http"

	"github.com/viant/tokensale/api"
)

// Handler routes HTTP requests to the mock backend endpoints.
type Handler struct {
	Service *Service
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case api.LoginPath:
		h.dispatch(w, r, h.Service.LoginHandler, h.Service.defaultLoginHandler)
	case api.RegisterPath:
		h.dispatch(w, r, h.Service.RegisterHandler, h.Service.defaultRegisterHandler)
	case api.ResetPasswordPath:
		h.dispatch(w, r, h.Service.ResetPasswordHandler, h.Service.defaultResetPasswordHandler)
	case api.CreateNewPasswordPath:
		h.dispatch(w, r, h.Service.CreateNewPasswordHandler, h.Service.defaultCreateNewPasswordHandler)
	case ProfilePath:
		h.dispatch(w, r, h.Service.ProfileHandler, h.Service.defaultProfileHandler)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, custom, fallback http.HandlerFunc) {
	if custom != nil {
		custom(w, r)
		return
	}
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fallback(w, r)
}
