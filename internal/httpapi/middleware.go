package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"usersdata/backend/internal/auth"
	"usersdata/backend/internal/model"
	"usersdata/backend/internal/store"
)

const requestIDHeader = "X-Request-Id"

type contextKey string

const ctxUser contextKey = "user"

// currentUser returns the account the Access Gate resolved for this request.
func currentUser(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxUser).(model.User)
	return u, ok
}

// requestIDMiddleware tags every request with an ID, minting one when the
// caller did not supply its own, and echoes it on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			var b [12]byte
			_, _ = rand.Read(b[:])
			id = hex.EncodeToString(b[:])
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get(requestIDHeader)).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func recoverMiddleware(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Any("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("handler panicked")
				writeError(w, http.StatusInternalServerError, "panic", "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth is the access gate in front of every user-resource handler:
// extract the bearer token, validate signature and expiry, resolve the
// subject to a live account, and hand that account to the next handler via
// the request context. Any failing step denies the request with 401 and the
// gate never mutates anything, so re-running it for the same token gives the
// same outcome.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.authenticate(r)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				writeError(w, http.StatusUnauthorized, "missing_token", "missing or malformed authorization header")
			case errors.Is(err, auth.ErrInvalidToken):
				writeError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
			case errors.Is(err, auth.ErrUnknownAccount):
				writeError(w, http.StatusUnauthorized, "unknown_account", "token subject no longer exists")
			default:
				s.log.Error().Err(err).Msg("access gate store lookup failed")
				writeError(w, http.StatusInternalServerError, "internal", "internal server error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, *user)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) authenticate(r *http.Request) (*model.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, auth.ErrMissingToken
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, auth.ErrMissingToken
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if tokenStr == "" {
		return nil, auth.ErrMissingToken
	}

	subject, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	user, err := s.store.GetUserByID(r.Context(), subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.ErrUnknownAccount
		}
		return nil, err
	}
	return user, nil
}
