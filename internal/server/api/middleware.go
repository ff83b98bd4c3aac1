package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

func userIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", common.AuthorizationHeaderName, common.RequestIDHeaderName},
		ExposedHeaders: []string{common.RequestIDHeaderName},
		MaxAge:         86400,
	})
	return c.Handler
}

// rateLimit rejects requests above rps with 429. rps <= 0 disables the
// limiter.
func rateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), max(burst, 1))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				respondWithError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogging tags every request with an id (the client's X-Request-ID,
// or a new UUID), echoes it in the response and logs the outcome.
func requestLogging(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(common.RequestIDHeaderName)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(common.RequestIDHeaderName, requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Info(ctx, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// authenticate requires a valid bearer token and stores the user id in the
// request context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := h.users.Authenticate(r.Context(), token)
		if err != nil {
			status, msg := statusFor(err)
			if status == http.StatusInternalServerError {
				h.logger.Error(r.Context(), "authentication failed", "error", err)
			}
			respondWithError(w, status, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}
