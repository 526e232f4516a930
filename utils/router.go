package utils

import (
	"net/http"

	"github.com/gorilla/mux"
)

// The web UI is served from a different origin during development, so the
// API answers preflights itself. Content-Type is the only non-simple header
// the frontend sends; JSON bodies on POST and PUT trigger the preflight.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter constructs the base mux router with the CORS middleware and the
// liveness endpoint the deploy probe hits.
func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	// mux only runs middleware on matched routes, so preflights need a
	// route of their own; the middleware answers before this handler runs.
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"flipsniper"}`))
	}).Methods(http.MethodGet)
	return r
}
