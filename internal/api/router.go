package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter creates and configures a router with all API endpoints.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/predict", h.Predict).Methods("POST")

	return r
}

// NewServer wraps the router in an http.Server with sane timeouts.
func NewServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
