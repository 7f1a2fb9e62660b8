// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/lcboard/internal/domain/types"
)

// ReportDependencies defines the interface for report building.
type ReportDependencies interface {
	BuildReport(ctx context.Context, usernames []string) (types.Report, error)
}

// ReportHandler handles aggregation-run requests.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// reportRequest mirrors the OpenAPI schema for POST /report.
type reportRequest struct {
	Usernames []string `json:"usernames"`
}

func (r reportRequest) validate() error {
	for _, u := range r.Usernames {
		if strings.TrimSpace(u) != "" {
			return nil
		}
	}
	return NewKind("api.build_report", ErrBadRequest)
}

// HandleBuildReport handles POST /report requests.
func (h *ReportHandler) HandleBuildReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.build_report"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	report, err := h.deps.BuildReport(r.Context(), req.Usernames)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
