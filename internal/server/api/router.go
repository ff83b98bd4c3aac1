package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
}

// NewRouter mounts the API on a gorilla/mux router wrapped in CORS. Matched
// routes pass request logging and the rate limiter; /auth/me and the cart
// routes also require a bearer token.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := mux.NewRouter()

	r.Use(requestLogging(h.logger))
	r.Use(rateLimit(opts.RateLimit, opts.RateBurst))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.Handle("/me", h.authenticate(http.HandlerFunc(h.Me))).Methods(http.MethodGet)

	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.GetProduct).Methods(http.MethodGet)

	cart := r.PathPrefix("/cart").Subrouter()
	cart.Use(h.authenticate)
	cart.HandleFunc("", h.GetCart).Methods(http.MethodGet)
	cart.HandleFunc("/items", h.AddCartItem).Methods(http.MethodPost)
	cart.HandleFunc("/items/{itemId}", h.UpdateCartItem).Methods(http.MethodPatch)
	cart.HandleFunc("/items/{itemId}", h.RemoveCartItem).Methods(http.MethodDelete)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return corsMiddleware(opts.AllowedOrigins)(r)
}
