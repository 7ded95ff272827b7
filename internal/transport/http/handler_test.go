package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"chronicle/internal/history/configsource/static"
	"chronicle/internal/history/service"
	"chronicle/internal/history/store/memory"
)

// HandlerSuite runs the transport against the real dispatcher with the
// in-memory store, so tests cover HTTP adaptation end to end.
type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(
		static.New("history-group"),
		memory.New(),
		service.WithLogger(logger),
		service.WithPollInterval(time.Millisecond),
	)
	require.NoError(s.T(), err)

	s.router = NewRouter(NewHandler(svc, logger))
}

func (s *HandlerSuite) do(method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func (s *HandlerSuite) TestCreateThenRead() {
	rec := s.do(http.MethodPost, "/service/abc", []byte(`{"message":"m"}`))
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(s.T(), "application/json", rec.Header().Get("Content-Type"))
	created := s.decode(rec)
	assert.Equal(s.T(), true, created["success"])
	assert.Equal(s.T(), "abc", created["id"])

	rec = s.do(http.MethodGet, "/service/abc", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	read := s.decode(rec)
	assert.Equal(s.T(), "abc", read["id"])
	assert.Equal(s.T(), float64(1), read["count"])
}

func (s *HandlerSuite) TestReadWithExplicitWindow() {
	rec := s.do(http.MethodPost, "/service/abc", []byte(`{"message":"m"}`))
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())

	// Window predates the write, so it matches nothing.
	rec = s.do(http.MethodGet, "/service/abc?start=2023-01-01T00:00:00Z&end=2023-01-02T00:00:00Z", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	read := s.decode(rec)
	assert.Equal(s.T(), "2023-01-01T00:00:00Z", read["startTime"])
	assert.Equal(s.T(), float64(0), read["count"])
}

func (s *HandlerSuite) TestReadWithBadWindow() {
	rec := s.do(http.MethodGet, "/service/abc?start=notatime", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), false, s.decode(rec)["success"])
}

func (s *HandlerSuite) TestDeleteNotAllowed() {
	rec := s.do(http.MethodDelete, "/service/abc", nil)
	assert.Equal(s.T(), http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(s.T(), false, s.decode(rec)["success"])
}

func (s *HandlerSuite) TestInvalidBody() {
	rec := s.do(http.MethodPost, "/service/abc", []byte(`not json`))
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Invalid JSON in request body", s.decode(rec)["message"])
}

func (s *HandlerSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestMetricsEndpoint() {
	rec := s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}
