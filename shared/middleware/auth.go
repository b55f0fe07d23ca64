package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/utilities"
)

type contextKey struct{}

var subjectKey = contextKey{}

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidAuthorization = errors.New("invalid authorization header format")
)

// SubjectFromContext returns the verified token subject stored by Authenticate.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}

// ContextWithSubject returns a copy of ctx carrying subject.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// Authenticate rejects requests without a valid bearer token and stores the
// token subject in the request context.
func Authenticate(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				unauthorized(w, "Not authenticated")
				return
			}

			subject, err := verifier.Verify(token)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("rejected access token")
				unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingAuthorization
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errInvalidAuthorization
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errInvalidAuthorization
	}

	return token, nil
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utilities.WriteError(w, http.StatusUnauthorized, detail)
}
