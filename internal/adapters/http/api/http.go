// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/lcboard/internal/adapters/leetcode"
	service "github.com/okian/lcboard/internal/app"
	"github.com/okian/lcboard/internal/domain/model"
	"github.com/okian/lcboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// BuildReport runs one full aggregation for the given handles.
	BuildReport(ctx context.Context, usernames []string) (types.Report, error)

	// Single-user read operations.
	RecentSubmissions(ctx context.Context, username string, limit int) ([]types.SubmissionRow, error)
	AttendedContests(ctx context.Context, username string) ([]model.AttendedContest, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	reportHandler *ReportHandler
	usersHandler  *UsersHandler
	relayHandler  *RelayHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, relay *RelayHandler) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		reportHandler: NewReportHandler(deps),
		usersHandler:  NewUsersHandler(deps),
		relayHandler:  relay,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleBuildReport, "report"))
	mux.HandleFunc("/users/", MetricsMiddleware(s.usersHandler.HandleGetUser, "users"))
	mux.HandleFunc("/api/graphql", MetricsMiddleware(s.relayHandler.HandleRelay, "relay"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates client/service error kinds to HTTP statuses
// so upstream failure categories stay visible at the API boundary.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leetcode.ErrEmptyUsername):
		writeError(w, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, service.ErrTooManyUsers):
		writeError(w, http.StatusBadRequest, "too_many_users", err)
	case errors.Is(err, leetcode.ErrBlocked):
		writeError(w, http.StatusBadGateway, "upstream_blocked", err)
	case errors.Is(err, leetcode.ErrMalformed):
		writeError(w, http.StatusBadGateway, "malformed_response", err)
	case errors.Is(err, leetcode.ErrUpstream):
		writeError(w, http.StatusBadGateway, "upstream_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
