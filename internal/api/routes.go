package api

import (
	"net/http"

	"CaptionComposer/internal/metrics"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes. m and staticDir are optional.
func SetupRoutes(handler *Handler, m *metrics.Metrics, staticDir string) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/caption", handler.QueryCaption).Methods(http.MethodGet)
	api.HandleFunc("/caption/", handler.QueryCaption).Methods(http.MethodGet)
	api.HandleFunc("/caption/{ticker}", handler.GetCaption).Methods(http.MethodGet)

	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
		r.Use(metricsMiddleware(m))
	}
	r.Use(accessLogMiddleware)

	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}

	return recoveryMiddleware(requestIDMiddleware(corsMiddleware(r)))
}
