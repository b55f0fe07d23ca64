package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/middleware"
	"github.com/vasapolrittideah/account-api/shared/utilities"
	"github.com/vasapolrittideah/account-api/shared/validation"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	AccountUsecase usecase.AccountUsecase
	TokenVerifier  auth.TokenVerifier
	Validator      *validation.Validator
	Logger         *zerolog.Logger
	AllowedOrigins []string
}

// NewRouter builds the HTTP routes of the account service.
func NewRouter(cfg RouterConfig) http.Handler {
	h := newAccountHTTPHandler(cfg.AccountUsecase, cfg.Validator, cfg.Logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(cfg.Logger)...)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utilities.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.TokenVerifier))
		r.Get("/profile", h.Profile)
		r.Get("/dashboard", h.Dashboard)
	})

	return r
}
