// Package service implements the history dispatcher: it maps an inbound
// event (gateway or resolver shape) onto the create or read operation and
// shapes every outcome into the response envelope.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"chronicle/internal/history"
	"chronicle/internal/history/metrics"
	"chronicle/internal/history/ports"
)

const (
	// DefaultPollInterval is the pause between search status polls.
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultSearchTimeout bounds the poll loop. The loop also respects the
	// caller's context, whichever ends first.
	DefaultSearchTimeout = 30 * time.Second
)

// Service dispatches history events against injected collaborators.
type Service struct {
	config  ports.ConfigProvider
	store   ports.LogStore
	logger  *slog.Logger
	metrics *metrics.Metrics

	now           func() time.Time
	pollInterval  time.Duration
	searchTimeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPollInterval overrides the search poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) { s.pollInterval = d }
}

// WithSearchTimeout overrides the search poll deadline.
func WithSearchTimeout(d time.Duration) Option {
	return func(s *Service) { s.searchTimeout = d }
}

// New constructs the dispatcher. Both collaborators are required.
func New(config ports.ConfigProvider, store ports.LogStore, opts ...Option) (*Service, error) {
	if config == nil {
		return nil, fmt.Errorf("config provider is required")
	}
	if store == nil {
		return nil, fmt.Errorf("log store is required")
	}
	s := &Service{
		config:        config,
		store:         store,
		logger:        slog.Default(),
		now:           time.Now,
		pollInterval:  DefaultPollInterval,
		searchTimeout: DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handle processes one raw inbound event to completion and always returns a
// response envelope with Content-Type: application/json.
func (s *Service) Handle(ctx context.Context, raw []byte) events.APIGatewayProxyResponse {
	ev, err := history.ParseEvent(raw)
	if err != nil {
		return s.finish("parse", s.errorResponse(err))
	}
	return s.Dispatch(ctx, ev)
}

// Dispatch routes an already-parsed event. The transport layer uses this
// directly when it builds the gateway shape itself.
func (s *Service) Dispatch(ctx context.Context, ev *history.Event) events.APIGatewayProxyResponse {
	method := ev.Method()
	s.logger.InfoContext(ctx, "event received",
		"method", method,
		"gateway", ev.IsGateway(),
		"resolver", ev.IsResolver(),
	)

	switch method {
	case http.MethodPost, http.MethodPut:
		resp, err := s.handleCreate(ctx, ev)
		if err != nil {
			return s.finish("create", s.errorResponse(err))
		}
		return s.finish("create", resp)
	case http.MethodGet:
		resp, err := s.handleRead(ctx, ev)
		if err != nil {
			return s.finish("read", s.errorResponse(err))
		}
		return s.finish("read", resp)
	case http.MethodDelete, http.MethodPatch:
		return s.finish("unsupported", respond(http.StatusMethodNotAllowed, errorBody{
			Message: "Method not allowed. Update and Delete operations are not supported.",
		}))
	default:
		return s.finish("unsupported", respond(http.StatusBadRequest, errorBody{
			Message: fmt.Sprintf("Unsupported method: %s", method),
		}))
	}
}

func (s *Service) handleCreate(ctx context.Context, ev *history.Event) (events.APIGatewayProxyResponse, error) {
	id, rawPayload, err := ev.CreateInput()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	payload, err := history.ValidateCreate(rawPayload)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	target, err := s.config.StorageTarget(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := s.writeRecord(ctx, target, id, payload); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	s.metrics.IncRecordsWritten()
	return respond(http.StatusOK, createBody{
		Message: "Data successfully recorded",
		ID:      id,
		Success: true,
	}), nil
}

func (s *Service) handleRead(ctx context.Context, ev *history.Event) (events.APIGatewayProxyResponse, error) {
	id, params, err := ev.ReadInput()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	window, err := history.ValidateRead(params, id, s.now())
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	target, err := s.config.StorageTarget(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	records, err := s.queryRecords(ctx, target, id, window)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	s.metrics.AddRecordsReturned(len(records))
	return respond(http.StatusOK, readBody{
		ID:        id,
		StartTime: window.Start.Format(time.RFC3339),
		EndTime:   window.End.Format(time.RFC3339),
		Count:     len(records),
		Records:   records,
	}), nil
}

// writeRecord appends one immutable record: the partition is ensured, a
// fresh "{id}/{epochMillis}" sub-partition names the entry, and the payload
// is stored with id and timestamp merged in.
func (s *Service) writeRecord(ctx context.Context, target, id string, payload map[string]any) error {
	if err := s.store.EnsurePartition(ctx, target); err != nil {
		return history.WrapValidation("ensure partition", err)
	}

	timestamp := s.now().UnixMilli()
	subpartition := fmt.Sprintf("%s/%d", id, timestamp)

	record := make(map[string]any, len(payload)+2)
	record["id"] = id
	record["timestamp"] = timestamp
	for k, v := range payload {
		record[k] = v
	}
	message, err := json.Marshal(record)
	if err != nil {
		return history.WrapValidation("serialize record", err)
	}

	if err := s.store.AppendRecord(ctx, target, subpartition, timestamp, message); err != nil {
		return history.WrapValidation("append record", err)
	}

	s.logger.InfoContext(ctx, "record written",
		"partition", target,
		"subpartition", subpartition,
	)
	return nil
}

// queryRecords runs the store-side search and polls the handle until it
// completes, the deadline passes, or the context is cancelled.
func (s *Service) queryRecords(ctx context.Context, target, id string, window history.TimeRange) ([]any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	handle, err := s.store.StartSearch(ctx, history.SearchQuery{
		Partition:   target,
		Filter:      id,
		StartMillis: window.StartMillis(),
		EndMillis:   window.EndMillis(),
	})
	if err != nil {
		return nil, history.WrapValidation("start search", err)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.metrics.IncSearchTimeouts()
			return nil, &history.ValidationError{
				Message:    "Search timed out before completion",
				StatusCode: http.StatusGatewayTimeout,
			}
		case <-ticker.C:
			page, err := s.store.SearchResults(ctx, handle)
			if err != nil {
				return nil, history.WrapValidation("poll search", err)
			}
			switch page.Status {
			case history.SearchStatusComplete:
				return history.DecodeSearchRows(page.Rows), nil
			case history.SearchStatusFailed, history.SearchStatusCancelled:
				return nil, history.NewValidationErrorf("search ended with status %s", page.Status)
			}
		}
	}
}

// errorResponse renders a ValidationError with its carried status and
// anything else as an opaque 500.
func (s *Service) errorResponse(err error) events.APIGatewayProxyResponse {
	if v, ok := history.AsValidation(err); ok {
		return respond(v.StatusCode, errorBody{Message: v.Message})
	}
	s.logger.Error("unhandled dispatch failure", "error", err)
	return respond(http.StatusInternalServerError, errorBody{Message: "Internal server error"})
}

func (s *Service) finish(operation string, resp events.APIGatewayProxyResponse) events.APIGatewayProxyResponse {
	s.metrics.ObserveRequest(operation, resp.StatusCode)
	return resp
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		// The body types here are all marshalable; this is unreachable in
		// practice but keeps the envelope contract intact.
		encoded = []byte(`{"message":"Internal server error","success":false}`)
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(encoded),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}
