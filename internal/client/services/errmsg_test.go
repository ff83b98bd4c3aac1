package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "payload message",
			err:  fmt.Errorf("login: %w", &client.APIError{Status: http.StatusUnauthorized, Message: "invalid credentials"}),
			want: "invalid credentials",
		},
		{
			name: "api error without payload",
			err:  &client.APIError{Status: http.StatusBadGateway},
			want: "request failed with status code 502",
		},
		{
			name: "api error without payload behind prefixes",
			err:  fmt.Errorf("login: fetch profile: %w", &client.APIError{Status: http.StatusInternalServerError}),
			want: "request failed with status code 500",
		},
		{
			name: "transport",
			err:  fmt.Errorf("GET /cart: %w", fmt.Errorf("%w: dial tcp: connection refused", client.ErrUnavailable)),
			want: "server unavailable",
		},
		{name: "plain", err: errors.New("disk full"), want: "disk full"},
		{name: "wrapped plain", err: fmt.Errorf("register: %w", fmt.Errorf("login: %w", errors.New("boom"))), want: "boom"},
		{name: "empty text", err: errors.New(""), want: "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err, "fallback"))
		})
	}
}
