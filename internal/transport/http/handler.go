// Package httptransport adapts plain HTTP requests into gateway-shaped
// history events and writes the dispatcher's envelope back out. It should
// delegate to the dispatcher without embedding business logic so transport
// concerns remain isolated.
package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chronicle/internal/history"
)

// Dispatcher is the slice of the history service the transport needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev *history.Event) events.APIGatewayProxyResponse
}

// Handler is the thin HTTP layer over the dispatcher.
type Handler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewHandler constructs the transport handler.
func NewHandler(dispatcher Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, logger: logger}
}

// NewRouter mounts the history catch-all plus the operational endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))
	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/*", h.HandleHistory)
	return r
}

// HandleHistory translates the request into a gateway event and relays the
// envelope. Method routing, validation, and error shaping all live in the
// dispatcher; the transport stays shape-only.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("read request body", "error", err)
		writeEnvelope(w, events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"message":"Internal server error","success":false}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
		})
		return
	}

	path := r.URL.Path
	ev := &history.Event{
		Path:        &path,
		HTTPMethod:  r.Method,
		QueryParams: flattenQuery(r),
	}
	if len(body) > 0 {
		ev.Body = json.RawMessage(body)
	}

	writeEnvelope(w, h.dispatcher.Dispatch(r.Context(), ev))
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// flattenQuery keeps the first value per key, matching the single-valued
// queryStringParameters shape of the gateway event.
func flattenQuery(r *http.Request) map[string]string {
	values := r.URL.Query()
	if len(values) == 0 {
		return nil
	}
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

func writeEnvelope(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}
