package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"CaptionComposer/internal/analyzer"
	"CaptionComposer/internal/collector"
	"CaptionComposer/internal/model"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	serviceName    = "Caption Composer API"
	serviceVersion = "2.1"

	invalidTickerMessage = "Please provide a valid ticker symbol (1-10 characters)"
	internalErrorMessage = "Internal server error while fetching stock data"
)

// Analyzer produces an analysis for a ticker.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*model.Intelligence, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer Analyzer
}

// NewHandler creates a new Handler
func NewHandler(a Analyzer) *Handler {
	return &Handler{analyzer: a}
}

// HealthCheck handles GET /api/health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// GetCaption handles GET /api/caption/{ticker}
func (h *Handler) GetCaption(w http.ResponseWriter, r *http.Request) {
	h.caption(w, r, mux.Vars(r)["ticker"])
}

// QueryCaption handles GET /api/caption?ticker=
func (h *Handler) QueryCaption(w http.ResponseWriter, r *http.Request) {
	h.caption(w, r, r.URL.Query().Get("ticker"))
}

func (h *Handler) caption(w http.ResponseWriter, r *http.Request, raw string) {
	ticker, err := analyzer.NormalizeTicker(raw)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid ticker symbol",
			Message: invalidTickerMessage,
		})
		return
	}

	intel, err := h.analyzer.Analyze(r.Context(), ticker)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, NewCaptionResponse(intel))
	case errors.Is(err, collector.ErrTickerNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("Unable to fetch data for %s", ticker),
		})
	default:
		log.Error().Err(err).Str("ticker", ticker).Str("request_id", RequestID(r.Context())).Msg("analysis failed")
		respondInternalError(w, err)
	}
}

func respondInternalError(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   err.Error(),
		Type:    errorType(err),
		Message: internalErrorMessage,
	})
}

// errorType names the innermost wrapped error's dynamic type.
func errorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}
