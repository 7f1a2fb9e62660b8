// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/lcboard/internal/domain/model"
	"github.com/okian/lcboard/internal/domain/types"
)

// UsersDependencies defines the interface for single-user reads.
type UsersDependencies interface {
	RecentSubmissions(ctx context.Context, username string, limit int) ([]types.SubmissionRow, error)
	AttendedContests(ctx context.Context, username string) ([]model.AttendedContest, error)
}

// UsersHandler handles per-user read requests.
type UsersHandler struct {
	deps UsersDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UsersDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleGetUser handles GET /users/{username}/submissions and
// GET /users/{username}/contests requests.
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_user"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /users/
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	username := parts[0]

	switch parts[1] {
	case "submissions":
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
				return
			}
			limit = n
		}
		rows, err := h.deps.RecentSubmissions(r.Context(), username, limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	case "contests":
		contests, err := h.deps.AttendedContests(r.Context(), username)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, contests)
	default:
		http.NotFound(w, r)
	}
}
