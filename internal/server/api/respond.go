package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
)

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, models.ErrorPayload{Message: message})
}

// statusFor maps service errors to an HTTP status and the message shown to
// the client. Unknown errors are reported as 500 without detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, common.ErrorInvalidLoginPassword):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
