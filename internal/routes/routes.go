package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/blogd/config"
	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/internal/metrics"
	"github.com/haguru/blogd/internal/middleware"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/models/dto"
	"github.com/haguru/blogd/internal/query"
)

type Route struct {
	Metrics        interfaces.Metrics
	Logger         interfaces.Logger
	UserService    interfaces.UserService
	SessionService interfaces.SessionService
	BlogService    interfaces.BlogService
	Auth           *middleware.Auth
	session        config.SessionConfig
}

// NewRoute creates a new Route instance. metrics may be nil.
func NewRoute(m interfaces.Metrics, logger interfaces.Logger, userService interfaces.UserService,
	sessionService interfaces.SessionService, blogService interfaces.BlogService, session config.SessionConfig,
) *Route {
	return &Route{
		Metrics:        m,
		Logger:         logger,
		UserService:    userService,
		SessionService: sessionService,
		BlogService:    blogService,
		Auth:           middleware.NewAuth(sessionService, session.CookieName, logger),
		session:        session,
	}
}

// Register adds every route to s.
func (r *Route) Register(s interfaces.Server) error {
	routes := []struct {
		path    string
		handler http.HandlerFunc
		method  string
	}{
		{HomeRouteAPI, r.Home, http.MethodGet},
		{RegisterRouteAPI, r.Auth.RequireGuest(r.RegisterForm), http.MethodGet},
		{RegisterRouteAPI, r.RegisterUser, http.MethodPost},
		{LoginRouteAPI, r.Auth.RequireGuest(r.LoginForm), http.MethodGet},
		{LoginRouteAPI, r.Login, http.MethodPost},
		{LogoutRouteAPI, r.Auth.RequireAuth(r.Logout), http.MethodGet},
		{BlogRouteAPI, r.ListPosts, http.MethodGet},
		{CreatePostRouteAPI, r.Auth.RequireAuth(r.CreatePost), http.MethodPost},
		{StatsRouteAPI, r.Auth.RequireAuth(r.Stats), http.MethodGet},
	}
	for _, rt := range routes {
		if err := s.AddRoute(rt.path, rt.handler, rt.method); err != nil {
			return fmt.Errorf("failed to add route %s %s: %w", rt.method, rt.path, err)
		}
	}
	return nil
}

// Home sends visitors to the post listing.
func (r *Route) Home(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, BlogRouteAPI, http.StatusSeeOther)
}

// RegisterForm describes the registration form.
func (r *Route) RegisterForm(w http.ResponseWriter, req *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, &dto.FormDescriptorDTO{Fields: RegisterFormFields})
}

// LoginForm describes the login form.
func (r *Route) LoginForm(w http.ResponseWriter, req *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, &dto.FormDescriptorDTO{Fields: LoginFormFields})
}

// RegisterUser handles user registration requests. It does not log the user in.
func (r *Route) RegisterUser(w http.ResponseWriter, req *http.Request) {
	registerRequest := dto.RegisterRequestDTO{}
	if err := decodeBody(w, req, &registerRequest); err != nil {
		r.badBody(w, err)
		return
	}

	userID, err := r.UserService.Register(req.Context(), registerRequest)
	if err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			middleware.WriteJSON(w, http.StatusBadRequest, dto.NewErrorsResponse(verr.Messages))
			return
		}
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			msg := apperrors.PublicMessage(err, apperrors.MsgUsernameTaken)
			middleware.WriteJSON(w, http.StatusBadRequest, dto.NewErrorsResponse([]string{msg}))
			return
		}
		r.Logger.Error(MsgRegisterFailed, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, &dto.ErrorResponseDTO{Error: MsgRegisterFailed})
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(metrics.UsersRegistered)
	}
	r.Logger.Debug("Registered user", "ID", userID)
	middleware.WriteJSON(w, http.StatusCreated, &dto.MessageResponseDTO{Message: MsgRegistered})
}

// Login verifies credentials and hands out the session cookie.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	loginRequest := dto.LoginRequestDTO{}
	if err := decodeBody(w, req, &loginRequest); err != nil {
		r.badBody(w, err)
		return
	}

	identity, err := r.UserService.Login(req.Context(), loginRequest.Username, loginRequest.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthentication) {
			r.countLogin(metrics.ResultFailure)
			msg := apperrors.PublicMessage(err, apperrors.MsgAuthenticationError)
			middleware.WriteJSON(w, http.StatusUnauthorized, &dto.MessageResponseDTO{Message: msg})
			return
		}
		r.Logger.Error(apperrors.MsgAuthenticationError, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, &dto.MessageResponseDTO{Message: apperrors.MsgAuthenticationError})
		return
	}

	token, expiresAt, err := r.SessionService.Establish(req.Context(), *identity)
	if err != nil {
		r.Logger.Error(ErrFailedToEstablishSession, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, &dto.MessageResponseDTO{Message: apperrors.MsgAuthenticationError})
		return
	}

	r.countLogin(metrics.ResultSuccess)
	http.SetCookie(w, r.sessionCookie(token, expiresAt))
	middleware.WriteJSON(w, http.StatusOK, &dto.MessageResponseDTO{Message: MsgLoginSuccessful})
}

// Logout destroys the caller's session and clears the cookie.
func (r *Route) Logout(w http.ResponseWriter, req *http.Request, identity models.Identity) {
	if cookie, err := req.Cookie(r.session.CookieName); err == nil {
		if err := r.SessionService.Destroy(req.Context(), cookie.Value); err != nil {
			r.Logger.Error(MsgLogoutFailed, "user", identity.Username, "error", err)
			middleware.WriteJSON(w, http.StatusInternalServerError, &dto.ErrorResponseDTO{Error: MsgLogoutFailed})
			return
		}
	}

	expired := r.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	http.Redirect(w, req, LoginRouteAPI, http.StatusSeeOther)
}

// ListPosts lists posts filtered by ?search= and ordered by ?sort=field,dir.
func (r *Route) ListPosts(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	opts := query.ParseListOptions(q.Get(SearchParam), q.Get(SortParam))

	posts, err := r.BlogService.List(req.Context(), opts)
	if err != nil {
		r.Logger.Error(MsgListFailed, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, &dto.ErrorResponseDTO{Error: MsgListFailed})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, &dto.PostsResponseDTO{Posts: posts})
}

// CreatePost stores a post owned by the caller.
func (r *Route) CreatePost(w http.ResponseWriter, req *http.Request, identity models.Identity) {
	createRequest := dto.CreatePostRequestDTO{}
	if err := decodeBody(w, req, &createRequest); err != nil {
		r.badBody(w, err)
		return
	}

	post, err := r.BlogService.Create(req.Context(), identity, createRequest)
	if err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			middleware.WriteJSON(w, http.StatusBadRequest, dto.NewErrorsResponse(verr.Messages))
			return
		}
		r.Logger.Error(MsgCreatePostFailed, "user", identity.Username, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, &dto.ErrorResponseDTO{Error: MsgCreatePostFailed})
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, &dto.PostResponseDTO{Post: post})
}

// Stats reports post counts for the caller.
func (r *Route) Stats(w http.ResponseWriter, req *http.Request, identity models.Identity) {
	stats, err := r.BlogService.Stats(req.Context(), identity)
	if err != nil {
		r.Logger.Error(MsgStatsFailed, "user", identity.Username, "error", err)
		middleware.WriteJSON(w, http.StatusInternalServerError, &dto.ErrorResponseDTO{Error: MsgStatsFailed})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, stats)
}

func (r *Route) badBody(w http.ResponseWriter, err error) {
	msg := MsgInvalidBody
	if errors.Is(err, errUnsupportedMediaType) {
		msg = MsgUnsupportedBody
	}
	r.Logger.Debug("Rejected request body", "error", err)
	middleware.WriteJSON(w, http.StatusBadRequest, dto.NewErrorsResponse([]string{msg}))
}

func (r *Route) countLogin(result string) {
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(metrics.LoginAttempts, result)
	}
}

func (r *Route) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     r.session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   r.session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
