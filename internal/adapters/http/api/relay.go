// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/lcboard/pkg/metrics"
)

// relayTimeout bounds one forwarded round trip.
const relayTimeout = 20 * time.Second

// RelayHandler forwards GraphQL requests from the embedded front-end to
// the upstream endpoint. The body travels verbatim in both directions and
// the upstream status code is preserved, including 403: the front-end
// distinguishes access denial from other failures by status alone.
type RelayHandler struct {
	upstreamURL string
	referer     string
	httpClient  *http.Client
}

// NewRelayHandler creates a relay against the given upstream endpoint.
func NewRelayHandler(upstreamURL, referer string) *RelayHandler {
	return &RelayHandler{
		upstreamURL: upstreamURL,
		referer:     referer,
		httpClient:  &http.Client{Timeout: relayTimeout},
	}
}

// HandleRelay handles POST /api/graphql requests.
func (h *RelayHandler) HandleRelay(w http.ResponseWriter, r *http.Request) {
	const op = "api.relay"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrBadRequest))
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.upstreamURL, r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "relay_error", WrapKind(op, ErrRelay, err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-requested-with", "XMLHttpRequest")
	req.Header.Set("Referer", h.referer)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		metrics.RecordRelayRequest("transport_error")
		writeError(w, http.StatusBadGateway, "relay_error", WrapKind(op, ErrRelay, err))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordRelayRequest(strconv.Itoa(resp.StatusCode))

	// Preserve any non-JSON error body exactly as the upstream sent it.
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
