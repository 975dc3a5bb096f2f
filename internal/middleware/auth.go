// Package middleware holds the HTTP middleware: session based access control,
// request logging and panic recovery.
package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/models/dto"
)

// IdentityHandler is a handler that receives the caller's identity explicitly.
type IdentityHandler func(w http.ResponseWriter, r *http.Request, identity models.Identity)

// Auth resolves the session cookie into an identity and gates handlers on it.
type Auth struct {
	Sessions   interfaces.SessionService
	CookieName string
	Logger     interfaces.Logger
}

// NewAuth creates an Auth reading the session token from cookieName.
func NewAuth(sessions interfaces.SessionService, cookieName string, logger interfaces.Logger) *Auth {
	return &Auth{Sessions: sessions, CookieName: cookieName, Logger: logger}
}

// Identify returns the identity behind the request's session cookie, or nil.
// Store failures are logged and treated as anonymous.
func (a *Auth) Identify(r *http.Request) *models.Identity {
	cookie, err := r.Cookie(a.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	identity, err := a.Sessions.Identify(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotAuthenticated) {
			a.Logger.Error("Failed to resolve session", "path", r.URL.Path, "error", err)
		}
		return nil
	}
	return identity
}

// RequireAuth calls next with the caller's identity. Anonymous JSON clients
// get a 401, everyone else is redirected to the login page.
func (a *Auth) RequireAuth(next IdentityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := a.Identify(r)
		if identity == nil {
			if WantsJSON(r) {
				WriteJSON(w, http.StatusUnauthorized, &dto.MessageResponseDTO{Message: apperrors.MsgNotAuthenticated})
				return
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next(w, r, *identity)
	}
}

// RequireGuest lets only anonymous callers through; logged in users are
// redirected home.
func (a *Auth) RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.Identify(r) != nil {
			http.Redirect(w, r, HomePath, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// WantsJSON reports whether the client asked for a JSON answer rather than a page.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get(headerAccept), "json") ||
		r.Header.Get(headerRequestedWith) == xmlHTTPRequest
}

// WriteJSON writes body as JSON with status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
