package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/interfaces/mocks"
	"github.com/haguru/blogd/internal/models"
)

const cookieName = "session_token"

var alice = &models.Identity{UserID: "user-1", Username: "alice"}

func newRequest(token string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/blog/stats", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestAuth_RequireAuth(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		headers      map[string]string
		identity     *models.Identity
		identifyErr  error
		wantStatus   int
		wantLocation string
		wantCalled   bool
	}{
		{
			name:       "valid session reaches the handler",
			token:      "good",
			identity:   alice,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:         "no cookie redirects browsers",
			wantStatus:   http.StatusSeeOther,
			wantLocation: LoginPath,
		},
		{
			name:       "no cookie gives json clients a 401",
			headers:    map[string]string{"Accept": "application/json"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "xhr clients get a 401",
			token:       "bad",
			headers:     map[string]string{"X-Requested-With": "XMLHttpRequest"},
			identifyErr: apperrors.ErrNotAuthenticated,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:         "store failure is treated as anonymous",
			token:        "good",
			identifyErr:  errors.New("db down"),
			wantStatus:   http.StatusSeeOther,
			wantLocation: LoginPath,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewMockSessionService(t)
			if tt.token != "" {
				sessions.On("Identify", mock.Anything, tt.token).Return(tt.identity, tt.identifyErr)
			}
			a := NewAuth(sessions, cookieName, mocks.NewNopLogger())

			called := false
			handler := a.RequireAuth(func(w http.ResponseWriter, r *http.Request, identity models.Identity) {
				called = true
				assert.Equal(t, *alice, identity)
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			handler(rec, newRequest(tt.token, tt.headers))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"Please log in to view this resource"}`, rec.Body.String())
			}
		})
	}
}

func TestAuth_RequireGuest(t *testing.T) {
	t.Run("anonymous passes", func(t *testing.T) {
		sessions := mocks.NewMockSessionService(t)
		a := NewAuth(sessions, cookieName, mocks.NewNopLogger())

		rec := httptest.NewRecorder()
		a.RequireGuest(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})(rec, newRequest("", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("logged in user is sent home", func(t *testing.T) {
		sessions := mocks.NewMockSessionService(t)
		sessions.On("Identify", mock.Anything, "good").Return(alice, nil)
		a := NewAuth(sessions, cookieName, mocks.NewNopLogger())

		rec := httptest.NewRecorder()
		a.RequireGuest(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})(rec, newRequest("good", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, HomePath, rec.Header().Get("Location"))
	})
}

func TestAuth_IdentifyUsesRequestContext(t *testing.T) {
	type ctxKey struct{}
	sessions := mocks.NewMockSessionService(t)
	sessions.On("Identify", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Value(ctxKey{}) == "marker"
	}), "good").Return(alice, nil)
	a := NewAuth(sessions, cookieName, mocks.NewNopLogger())

	req := newRequest("good", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "marker"))

	assert.Equal(t, alice, a.Identify(req))
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "plain browser", headers: map[string]string{"Accept": "text/html"}, want: false},
		{name: "json accept", headers: map[string]string{"Accept": "application/json"}, want: true},
		{name: "vendor json", headers: map[string]string{"Accept": "application/vnd.api+json"}, want: true},
		{name: "xhr", headers: map[string]string{"X-Requested-With": "XMLHttpRequest"}, want: true},
		{name: "nothing", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WantsJSON(newRequest("", tt.headers)))
		})
	}
}
